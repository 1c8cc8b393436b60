package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yoku/guildmaster/modules/organisation/presentation/controllers/dtos"
	"github.com/yoku/guildmaster/modules/organisation/presentation/mappers"
	"github.com/yoku/guildmaster/modules/organisation/services"
	"github.com/yoku/guildmaster/pkg/application"
)

type InvitationController struct {
	app         application.Application
	invitations *services.InvitationService
	basePath    string
}

func NewInvitationController(app application.Application) application.Controller {
	return &InvitationController{
		app:         app,
		invitations: app.Service(services.InvitationService{}).(*services.InvitationService),
		basePath:    "/api/v1/invitations",
	}
}

func (c *InvitationController) Key() string {
	return c.basePath
}

func (c *InvitationController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.Revoke).Methods(http.MethodDelete).
		Queries("organisationId", "{organisationId}", "email", "{email}")
	router.HandleFunc("/user/{userId}", c.ListForUser).Methods(http.MethodGet)
	router.HandleFunc("/{token}/accept", c.Accept).Methods(http.MethodPost)
	router.HandleFunc("/{token}/reject", c.Reject).Methods(http.MethodPost)
}

func (c *InvitationController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateInvitationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	created, err := c.invitations.Create(r.Context(), dto.OrganisationID, dto.Email, dto.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.InvitationToView(created.Invitation, created.User))
}

func (c *InvitationController) Accept(w http.ResponseWriter, r *http.Request) {
	var dto dtos.SettleInvitationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	added, err := c.invitations.Accept(r.Context(), mux.Vars(r)["token"], dto.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.MemberToView(added, nil))
}

func (c *InvitationController) Reject(w http.ResponseWriter, r *http.Request) {
	var dto dtos.SettleInvitationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	if err := c.invitations.Reject(r.Context(), mux.Vars(r)["token"], dto.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *InvitationController) Revoke(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "organisationId")
	if !ok {
		return
	}
	if err := c.invitations.Revoke(r.Context(), orgID, mux.Vars(r)["email"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *InvitationController) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	status, ok := parseStatusFilter(w, r)
	if !ok {
		return
	}
	invs, err := c.invitations.GetByUserID(r.Context(), userID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.InvitationsWithProfilesToViews(invs))
}
