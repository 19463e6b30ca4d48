package web

import (
	"errors"
	"net/http"

	"github.com/indian-sparrow/storefront/internal/domain/account"
)

type sessionPayload struct {
	LoggedIn bool          `json:"loggedIn"`
	User     *account.User `json:"user,omitempty"`
}

func (h *Handler) sessionResponse() sessionPayload {
	u := h.accountService.Current()
	return sessionPayload{LoggedIn: u != nil, User: u}
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.sessionResponse())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.accountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrMissingCredentials) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.respondJSON(w, http.StatusOK, sessionPayload{LoggedIn: true, User: u})
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.accountService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, account.ErrMissingCredentials) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	h.respondJSON(w, http.StatusOK, sessionPayload{LoggedIn: true, User: u})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.accountService.Logout(r.Context())
	h.respondJSON(w, http.StatusOK, sessionPayload{LoggedIn: false})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch account.Patch
	if err := decodeJSON(r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.accountService.LoggedIn() {
		// The store treats this as a silent no-op; the API names it.
		h.respondError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	h.accountService.Update(r.Context(), patch)
	h.respondJSON(w, http.StatusOK, h.sessionResponse())
}
