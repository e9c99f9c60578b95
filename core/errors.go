package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	BridgeErrorBadInput         = "BRIDGE_BAD_INPUT"
	BridgeErrorAccessDenied     = "BRIDGE_ACCESS_DENIED"
	BridgeErrorUnknownAction    = "BRIDGE_UNKNOWN_ACTION"
	BridgeErrorDuplicateRequest = "BRIDGE_DUPLICATE_REQUEST"
	BridgeErrorTransportFailure = "BRIDGE_TRANSPORT_FAILURE"
	BridgeErrorRetriesExhausted = "BRIDGE_RETRIES_EXHAUSTED"
	BridgeErrorInternal         = "BRIDGE_INTERNAL_ERROR"
)

func BridgeErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureBridgeErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "origin") && strings.Contains(msg, "not allowed"):
		return newBridgeError(err.Error(), goerrors.CategoryAuth, BridgeErrorAccessDenied)
	case strings.Contains(msg, "unknown action"):
		return newBridgeError(err.Error(), goerrors.CategoryBadInput, BridgeErrorUnknownAction)
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "duplicate"):
		return newBridgeError(err.Error(), goerrors.CategoryConflict, BridgeErrorDuplicateRequest)
	case strings.Contains(msg, "attempts exhausted"), strings.Contains(msg, "retries exhausted"):
		return newBridgeError(err.Error(), goerrors.CategoryExternal, BridgeErrorRetriesExhausted)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "malformed"):
		return newBridgeError(err.Error(), goerrors.CategoryBadInput, BridgeErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureBridgeErrorEnvelope(mapped)
}

func newBridgeError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureBridgeErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureBridgeErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = bridgeHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultBridgeTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultBridgeTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return BridgeErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return BridgeErrorAccessDenied
	case goerrors.CategoryConflict:
		return BridgeErrorDuplicateRequest
	case goerrors.CategoryExternal:
		return BridgeErrorTransportFailure
	default:
		return BridgeErrorInternal
	}
}

func bridgeHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
