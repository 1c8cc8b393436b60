package handlers_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/handlers"
	"github.com/yoku/guildmaster/pkg/application"
	"github.com/yoku/guildmaster/pkg/eventbus"
)

func setupAuditTest(t *testing.T) (application.Application, *logrustest.Hook) {
	t.Helper()

	logger, hook := logrustest.NewNullLogger()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	handlers.RegisterAuditEventHandlers(app)
	return app, hook
}

func TestAuditEventsHandler_OrganisationCreated(t *testing.T) {
	t.Parallel()
	app, hook := setupAuditTest(t)

	org := organisation.New(uuid.New(), "Acme", "", "hq@acme.test")
	app.EventPublisher().Publish(organisation.CreatedEvent{Result: org})

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "organisation created", entry.Message)
	assert.Equal(t, org.ID(), entry.Data["organisation_id"])
	assert.Equal(t, org.CreatorID(), entry.Data["creator_id"])
}

func TestAuditEventsHandler_MemberLifecycle(t *testing.T) {
	t.Parallel()
	app, hook := setupAuditTest(t)

	orgID, userID, posID := uuid.New(), uuid.New(), uuid.New()
	app.EventPublisher().Publish(member.AddedEvent{Result: member.New(orgID, userID, posID)})
	app.EventPublisher().Publish(member.RemovedEvent{OrganisationID: orgID, UserID: userID})

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, "member added", hook.Entries[0].Message)
	assert.Equal(t, "member removed", hook.Entries[1].Message)
	assert.Equal(t, userID, hook.Entries[1].Data["user_id"])
}

func TestAuditEventsHandler_InvitationSettled(t *testing.T) {
	t.Parallel()
	app, hook := setupAuditTest(t)

	inv := invitation.New(uuid.New(), "guest@acme.test", time.Hour)
	app.EventPublisher().Publish(invitation.SettledEvent{Result: inv.Settled(invitation.StatusAccepted)})

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "invitation settled", entry.Message)
	assert.Equal(t, invitation.StatusAccepted, entry.Data["status"])
}
