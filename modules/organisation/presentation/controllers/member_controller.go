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

type MemberController struct {
	app      application.Application
	members  *services.MemberService
	basePath string
}

func NewMemberController(app application.Application) application.Controller {
	return &MemberController{
		app:      app,
		members:  app.Service(services.MemberService{}).(*services.MemberService),
		basePath: "/api/v1/members",
	}
}

func (c *MemberController) Key() string {
	return c.basePath
}

func (c *MemberController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/user/{userId}", c.ListForUser).Methods(http.MethodGet)
	router.HandleFunc("/move", c.Move).Methods(http.MethodPost)
}

// ListForUser returns every membership the user holds across organisations.
func (c *MemberController) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	members, err := c.members.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]mappers.MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, mappers.MemberToView(m, nil))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *MemberController) Move(w http.ResponseWriter, r *http.Request) {
	var dto dtos.MoveMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}

	if err := c.members.MoveToPosition(r.Context(), dto.UserID, dto.FromPositionID, dto.ToPositionID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
