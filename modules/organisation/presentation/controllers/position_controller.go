package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yoku/guildmaster/modules/organisation/presentation/controllers/dtos"
	"github.com/yoku/guildmaster/modules/organisation/presentation/mappers"
	"github.com/yoku/guildmaster/modules/organisation/services"
	"github.com/yoku/guildmaster/pkg/application"
	"github.com/yoku/guildmaster/pkg/httpapi"
)

type PositionController struct {
	app       application.Application
	positions *services.PositionService
	members   *services.MemberService
	basePath  string
}

func NewPositionController(app application.Application) application.Controller {
	return &PositionController{
		app:       app,
		positions: app.Service(services.PositionService{}).(*services.PositionService),
		members:   app.Service(services.MemberService{}).(*services.MemberService),
		basePath:  "/api/v1/positions",
	}
}

func (c *PositionController) Key() string {
	return c.basePath
}

func (c *PositionController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Remove).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/members", c.ListMembers).Methods(http.MethodGet)
}

func (c *PositionController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreatePositionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	data, err := dto.ToEntity()
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := c.positions.Create(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.PositionToView(created))
}

func (c *PositionController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	pos, err := c.positions.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.PositionToView(pos))
}

func (c *PositionController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var dto dtos.UpdatePositionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	perms, err := dtos.ResolvePermissions(dto.Permissions)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := c.positions.Update(r.Context(), id, dto.Name, dto.Rank, dto.IsDefault, perms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.PositionToView(updated))
}

func (c *PositionController) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	replacementID, err := uuid.Parse(r.URL.Query().Get("replacementId"))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "malformed replacementId", nil)
		return
	}
	if err := c.positions.Remove(r.Context(), id, replacementID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *PositionController) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	members, err := c.members.GetByPositionID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.MembersWithProfilesToViews(members))
}
