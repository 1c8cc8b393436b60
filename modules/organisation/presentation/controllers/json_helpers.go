package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	_ = httpapi.WriteJSON(w, status, payload)
}

func writeError(w http.ResponseWriter, err error) {
	_ = httpapi.WriteDomainError(w, err)
}

func writeInvalidJSON(w http.ResponseWriter) {
	_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid json", nil)
}

func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", errs)
}

// parseStatusFilter reads the optional ?status= query parameter; writes a 400
// and returns false when the value is not a known status.
func parseStatusFilter(w http.ResponseWriter, r *http.Request) (invitation.Status, bool) {
	raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if raw == "" {
		return "", true
	}
	status := invitation.Status(raw)
	if !status.IsValid() {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_STATUS", "unknown invitation status", nil)
		return "", false
	}
	return status, true
}

// pathUUID parses the named route variable as a UUID; writes a 400 and
// returns false when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "malformed "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
