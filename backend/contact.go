package backend

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/core"
)

const (
	contactNameMin    = 2
	contactNameMax    = 100
	contactEmailMax   = 150
	contactMessageMin = 10
	contactMessageMax = 5000
)

// honeypotField is a hidden form field real users never fill in; a non-empty
// value marks the submission as bot traffic.
const honeypotField = "website_hp"

// ValidateContact enforces the backend's contact rules client-side so an
// obviously bad submission fails before spending any transport attempts.
func ValidateContact(payload map[string]any) error {
	if len(payload) == 0 {
		return contactFieldError("payload", "contact payload is required")
	}
	if strings.TrimSpace(stringField(payload, honeypotField)) != "" {
		return contactFieldError(honeypotField, "bot detected")
	}

	name := strings.TrimSpace(stringField(payload, "name"))
	if len(name) < contactNameMin {
		return contactFieldError("name", fmt.Sprintf("name must be at least %d characters", contactNameMin))
	}
	if len(name) > contactNameMax {
		return contactFieldError("name", "name too long")
	}

	email := strings.TrimSpace(stringField(payload, "email"))
	if email == "" || !strings.Contains(email, "@") {
		return contactFieldError("email", "valid email required")
	}
	if len(email) > contactEmailMax {
		return contactFieldError("email", "email too long")
	}

	message := strings.TrimSpace(stringField(payload, "message"))
	if len(message) < contactMessageMin {
		return contactFieldError("message", fmt.Sprintf("message must be at least %d characters", contactMessageMin))
	}
	if len(message) > contactMessageMax {
		return contactFieldError("message", "message too long")
	}
	return nil
}

func stringField(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok || value == nil {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return text
}

func contactFieldError(field string, message string) error {
	return goerrors.NewValidation("backend: contact validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.BridgeErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}
