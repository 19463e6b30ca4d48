package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers storefront-specific validation rules.
// Must be called before validating Config.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("storage_backend", validateStorageBackend); err != nil {
		return fmt.Errorf("failed to register storage_backend validator: %w", err)
	}
	return nil
}

// validateStorageBackend validates the storage backend field.
// Valid values: "file" or "sqlite".
func validateStorageBackend(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "file", "sqlite":
		return true
	}
	return false
}

// Validate validates the Config using struct tags and custom cross-field
// rules. Returns an error with actionable messages if validation fails.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := RegisterCustomValidators(v); err != nil {
		return err
	}

	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	// Duration fields are strings in YAML; parse them up front so a typo
	// fails at startup rather than at first use.
	for _, d := range []struct {
		field string
		value string
	}{
		{"commerce.timeout", c.Commerce.Timeout},
		{"newsletter.timeout", c.Newsletter.Timeout},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("%s: invalid duration %q", d.field, d.value)
		}
	}

	return nil
}

// CommerceTimeout returns the parsed commerce request timeout.
// Call after Validate; an unparseable value falls back to 15s.
func (c *Config) CommerceTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Commerce.Timeout); err == nil {
		return d
	}
	return 15 * time.Second
}

// NewsletterTimeout returns the parsed newsletter request timeout.
// Call after Validate; an unparseable value falls back to 10s.
func (c *Config) NewsletterTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Newsletter.Timeout); err == nil {
		return d
	}
	return 10 * time.Second
}

// formatValidationErrors converts validator.ValidationErrors to
// user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, formatSingleValidationError(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

// formatSingleValidationError creates a user-friendly message for a single
// validation error.
func formatSingleValidationError(e validator.FieldError) string {
	field := e.Namespace()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a valid host:port", field)
	case "storage_backend":
		return fmt.Sprintf("%s must be 'file' or 'sqlite'", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
