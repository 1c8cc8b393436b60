package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/pkg/application"
)

// AuditEventsHandler writes a structured audit line for every domain event
// published by the module.
type AuditEventsHandler struct {
	logger *logrus.Logger
}

func RegisterAuditEventHandlers(app application.Application) {
	handler := &AuditEventsHandler{
		logger: app.Logger(),
	}
	bus := app.EventPublisher()
	bus.Subscribe(handler.onOrganisationCreated)
	bus.Subscribe(handler.onOrganisationUpdated)
	bus.Subscribe(handler.onOrganisationDeleted)
	bus.Subscribe(handler.onPositionCreated)
	bus.Subscribe(handler.onPositionUpdated)
	bus.Subscribe(handler.onPositionDeleted)
	bus.Subscribe(handler.onMemberAdded)
	bus.Subscribe(handler.onMemberPositionChanged)
	bus.Subscribe(handler.onMemberRemoved)
	bus.Subscribe(handler.onInvitationCreated)
	bus.Subscribe(handler.onInvitationSettled)
}

func (h *AuditEventsHandler) onOrganisationCreated(event organisation.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.ID(),
		"creator_id":      event.Result.CreatorID(),
		"name":            event.Result.Name(),
	}).Info("organisation created")
}

func (h *AuditEventsHandler) onOrganisationUpdated(event organisation.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.ID(),
		"name":            event.Result.Name(),
	}).Info("organisation updated")
}

func (h *AuditEventsHandler) onOrganisationDeleted(event organisation.DeletedEvent) {
	h.logger.WithField("organisation_id", event.ID).Info("organisation deleted")
}

func (h *AuditEventsHandler) onPositionCreated(event position.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.OrganisationID(),
		"position_id":     event.Result.ID(),
		"name":            event.Result.Name(),
		"rank":            event.Result.Rank(),
	}).Info("position created")
}

func (h *AuditEventsHandler) onPositionUpdated(event position.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.OrganisationID(),
		"position_id":     event.Result.ID(),
		"name":            event.Result.Name(),
		"rank":            event.Result.Rank(),
	}).Info("position updated")
}

func (h *AuditEventsHandler) onPositionDeleted(event position.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"position_id":    event.ID,
		"replacement_id": event.ReplacementID,
	}).Info("position deleted")
}

func (h *AuditEventsHandler) onMemberAdded(event member.AddedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.OrganisationID(),
		"user_id":         event.Result.UserID(),
		"position_id":     event.Result.PositionID(),
	}).Info("member added")
}

func (h *AuditEventsHandler) onMemberPositionChanged(event member.PositionChangedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.OrganisationID(),
		"user_id":         event.Result.UserID(),
		"position_id":     event.Result.PositionID(),
	}).Info("member position changed")
}

func (h *AuditEventsHandler) onMemberRemoved(event member.RemovedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.OrganisationID,
		"user_id":         event.UserID,
	}).Info("member removed")
}

func (h *AuditEventsHandler) onInvitationCreated(event invitation.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.OrganisationID(),
		"invitation_id":   event.Result.ID(),
		"email":           event.Result.Email(),
	}).Info("invitation created")
}

func (h *AuditEventsHandler) onInvitationSettled(event invitation.SettledEvent) {
	h.logger.WithFields(logrus.Fields{
		"organisation_id": event.Result.OrganisationID(),
		"invitation_id":   event.Result.ID(),
		"status":          event.Result.Status(),
	}).Info("invitation settled")
}
