package router

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/core"
)

func routerAccessDenied(origin string) error {
	return goerrors.New(
		fmt.Sprintf("router: origin %q not allowed", strings.TrimSpace(origin)),
		goerrors.CategoryAuth,
	).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.BridgeErrorAccessDenied).
		WithMetadata(map[string]any{"origin": strings.TrimSpace(origin)})
}

func routerMalformedEnvelope() error {
	return goerrors.New(
		"router: envelope requires both action and id",
		goerrors.CategoryBadInput,
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.BridgeErrorBadInput)
}

func routerUnknownAction(action string) error {
	return goerrors.New(
		fmt.Sprintf("Unknown action: %s", strings.TrimSpace(action)),
		goerrors.CategoryBadInput,
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.BridgeErrorUnknownAction).
		WithMetadata(map[string]any{"action": strings.TrimSpace(action)})
}

func routerInternal(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.BridgeErrorInternal)
}
