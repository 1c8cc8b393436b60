package organisation

import (
	"embed"

	"github.com/yoku/guildmaster/modules/organisation/handlers"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/userdir"
	"github.com/yoku/guildmaster/modules/organisation/presentation/controllers"
	"github.com/yoku/guildmaster/modules/organisation/services"
	"github.com/yoku/guildmaster/pkg/application"
	"github.com/yoku/guildmaster/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	app.RegisterMigrations(&migrationFiles)

	orgRepo := persistence.NewOrganisationRepository()
	positionRepo := persistence.NewPositionRepository()
	memberRepo := persistence.NewMemberRepository()
	invitationRepo := persistence.NewInvitationRepository()
	directory := userdir.NewClient(conf.UserDirectory.BaseURL, conf.UserDirectory.Timeout)

	cacheService := services.NewPositionCacheService(positionRepo, app.Cache(), conf.PositionCacheTTL)
	permissionService := services.NewPermissionService(cacheService)
	organisationService := services.NewOrganisationService(
		orgRepo,
		positionRepo,
		memberRepo,
		permissionService,
		app.EventPublisher(),
	)
	positionService := services.NewPositionService(
		positionRepo,
		memberRepo,
		permissionService,
		cacheService,
		app.EventPublisher(),
	)
	memberService := services.NewMemberService(
		memberRepo,
		orgRepo,
		positionRepo,
		cacheService,
		permissionService,
		directory,
		app.EventPublisher(),
	)
	invitationService := services.NewInvitationService(
		invitationRepo,
		orgRepo,
		memberService,
		permissionService,
		directory,
		app.EventPublisher(),
		conf.Invitation.Validity,
	)

	app.RegisterServices(
		cacheService,
		permissionService,
		organisationService,
		positionService,
		memberService,
		invitationService,
	)

	handlers.RegisterAuditEventHandlers(app)

	app.RegisterControllers(
		controllers.NewOrganisationController(app),
		controllers.NewPositionController(app),
		controllers.NewMemberController(app),
		controllers.NewInvitationController(app),
		controllers.NewHealthController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "organisation"
}
