package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yoku/guildmaster/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// StatusForKind maps the error taxonomy onto HTTP status codes.
func StatusForKind(kind serrors.Kind) int {
	switch kind {
	case serrors.KindNotFound:
		return http.StatusNotFound
	case serrors.KindInvalidArgument:
		return http.StatusBadRequest
	case serrors.KindPermissionDenied:
		return http.StatusForbidden
	case serrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError renders a coded error, falling back to a plain 500.
func WriteDomainError(w http.ResponseWriter, err error) error {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		return WriteError(w, StatusForKind(base.Kind()), base.Code, base.Message, base.TemplateData)
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
