package web

import (
	"errors"
	"net/http"

	"github.com/indian-sparrow/storefront/internal/domain/account"
	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/internal/domain/catalog"
	"github.com/indian-sparrow/storefront/pkg/money"
)

// pageData is the view model shared by every page: the nav needs the cart
// badge and session, the footer needs the version.
type pageData struct {
	Title     string
	CartCount int
	User      *account.User
	Version   string
}

func (h *Handler) pageData(title string) pageData {
	return pageData{
		Title:     title,
		CartCount: h.cartService.Count(),
		User:      h.accountService.Current(),
		Version:   h.version,
	}
}

// render executes the named page template; failures surface as 500s
// rather than half-written pages.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		LoggerFromContext(r.Context()).Error("failed to render page", "template", name, "error", err)
	}
}

type homeData struct {
	pageData
	Featured []catalog.Product
	Error    bool
}

func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	data := homeData{pageData: h.pageData("The Indian Sparrow")}

	snap, err := h.catalogService.Snapshot(r.Context())
	if err != nil {
		// The home page still renders without the catalog.
		LoggerFromContext(r.Context()).Warn("catalog unavailable for home page", "error", err)
		data.Error = true
	} else {
		featured := snap.Products
		if len(featured) > 4 {
			featured = featured[:4]
		}
		data.Featured = featured
	}

	h.render(w, r, http.StatusOK, "home", data)
}

type shopData struct {
	pageData
	Products   []catalog.Product
	Bounds     catalog.Bounds
	Selection  catalog.Selection
	PriceRange string
	Query      string
	Error      bool
}

func (h *Handler) shopPage(w http.ResponseWriter, r *http.Request) {
	data := shopData{pageData: h.pageData("Shop")}

	snap, err := h.catalogService.Snapshot(r.Context())
	if err != nil {
		LoggerFromContext(r.Context()).Warn("catalog unavailable for shop page", "error", err)
		data.Error = true
		h.render(w, r, http.StatusOK, "shop", data)
		return
	}

	sel := catalog.SelectionFromQuery(r.URL.Query(), snap.Bounds)
	products, bounds, _ := h.catalogService.Filtered(r.Context(), sel)

	data.Products = products
	data.Bounds = bounds
	data.Selection = sel
	data.PriceRange = formatRange(bounds)
	data.Query = sel.QueryString(bounds)
	h.render(w, r, http.StatusOK, "shop", data)
}

type productData struct {
	pageData
	Product *catalog.Product
}

func (h *Handler) productPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	p, err := h.catalogService.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.render(w, r, http.StatusNotFound, "not_found", h.pageData("Not Found"))
			return
		}
		LoggerFromContext(r.Context()).Error("product page failed", "slug", slug, "error", err)
		h.render(w, r, http.StatusBadGateway, "not_found", h.pageData("Unavailable"))
		return
	}

	h.render(w, r, http.StatusOK, "product", productData{
		pageData: h.pageData(p.Name),
		Product:  p,
	})
}

type cartData struct {
	pageData
	Lines    []cart.Line
	Subtotal string
}

func (h *Handler) cartPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "cart", cartData{
		pageData: h.pageData("Your Cart"),
		Lines:    h.cartService.Lines(),
		Subtotal: money.Format(h.cartService.Subtotal()),
	})
}

func (h *Handler) checkoutPage(w http.ResponseWriter, r *http.Request) {
	lines := h.cartService.Lines()
	if len(lines) == 0 {
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, "checkout", cartData{
		pageData: h.pageData("Checkout"),
		Lines:    lines,
		Subtotal: money.Format(h.cartService.Subtotal()),
	})
}

func (h *Handler) accountPage(w http.ResponseWriter, r *http.Request) {
	if !h.accountService.LoggedIn() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "account", h.pageData("My Account"))
}

func (h *Handler) ordersPage(w http.ResponseWriter, r *http.Request) {
	if !h.accountService.LoggedIn() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	// Order history lives with the commerce platform; the page is an
	// intentional placeholder.
	h.render(w, r, http.StatusOK, "orders", h.pageData("My Orders"))
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if h.accountService.LoggedIn() {
		http.Redirect(w, r, "/account", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", h.pageData("Sign In"))
}

func (h *Handler) storyPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "story", h.pageData("Our Story"))
}

func (h *Handler) craftPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "craft", h.pageData("The Craft"))
}

func (h *Handler) thankYouPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "thank_you", h.pageData("Thank You"))
}
