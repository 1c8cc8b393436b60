package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yoku/guildmaster/modules/organisation/presentation/controllers/dtos"
	"github.com/yoku/guildmaster/modules/organisation/presentation/mappers"
	"github.com/yoku/guildmaster/modules/organisation/services"
	"github.com/yoku/guildmaster/pkg/application"
	"github.com/yoku/guildmaster/pkg/composables"
)

type OrganisationController struct {
	app         application.Application
	orgs        *services.OrganisationService
	positions   *services.PositionService
	members     *services.MemberService
	invitations *services.InvitationService
	basePath    string
}

func NewOrganisationController(app application.Application) application.Controller {
	return &OrganisationController{
		app:         app,
		orgs:        app.Service(services.OrganisationService{}).(*services.OrganisationService),
		positions:   app.Service(services.PositionService{}).(*services.PositionService),
		members:     app.Service(services.MemberService{}).(*services.MemberService),
		invitations: app.Service(services.InvitationService{}).(*services.InvitationService),
		basePath:    "/api/v1/organisations",
	}
}

func (c *OrganisationController) Key() string {
	return c.basePath
}

func (c *OrganisationController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.GetByName).Methods(http.MethodGet).Queries("name", "{name}")
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/positions", c.ListPositions).Methods(http.MethodGet)
	router.HandleFunc("/{id}/members", c.ListMembers).Methods(http.MethodGet)
	router.HandleFunc("/{id}/members/{userId}", c.RemoveMember).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/invitations", c.ListInvitations).Methods(http.MethodGet)
}

func (c *OrganisationController) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := composables.UseUserID(r.Context())
	if !ok {
		writeError(w, composables.ErrForbidden)
		return
	}

	var dto dtos.CreateOrganisationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	created, err := c.orgs.Create(r.Context(), dto.ToEntity(creatorID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.OrganisationToView(created))
}

func (c *OrganisationController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	org, err := c.orgs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.OrganisationToView(org))
}

func (c *OrganisationController) GetByName(w http.ResponseWriter, r *http.Request) {
	org, err := c.orgs.GetByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.OrganisationToView(org))
}

func (c *OrganisationController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var dto dtos.UpdateOrganisationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	org, err := c.orgs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := c.orgs.Update(r.Context(), dto.Apply(org))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.OrganisationToView(updated))
}

func (c *OrganisationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.orgs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *OrganisationController) ListPositions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	positions, err := c.positions.GetByOrganisationID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.PositionsToViews(positions))
}

func (c *OrganisationController) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	members, err := c.members.GetByOrganisationID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.MembersWithProfilesToViews(members))
}

func (c *OrganisationController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	if err := c.members.Remove(r.Context(), orgID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *OrganisationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	status, ok := parseStatusFilter(w, r)
	if !ok {
		return
	}
	invs, err := c.invitations.GetByOrganisationID(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.InvitationsWithProfilesToViews(invs))
}
