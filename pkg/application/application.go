package application

import (
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/yoku/guildmaster/pkg/cache"
	"github.com/yoku/guildmaster/pkg/eventbus"
)

// Controller registers a group of routes on the router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires repositories, services and controllers into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the composition root shared by modules and the server.
type Application interface {
	Pool() *pgxpool.Pool
	Cache() cache.Store
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger

	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Middleware() []mux.MiddlewareFunc

	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}

	// RegisterMigrations collects module-embedded schema filesystems; the
	// server runs them through goose on startup.
	RegisterMigrations(fs *embed.FS)
	Migrations() []*embed.FS
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	Cache    cache.Store
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		cache:    opts.Cache,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		services: map[reflect.Type]interface{}{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	cache       cache.Store
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	controllers []Controller
	middleware  []mux.MiddlewareFunc
	services    map[reflect.Type]interface{}
	migrations  []*embed.FS
}

func (a *application) Pool() *pgxpool.Pool              { return a.pool }
func (a *application) Cache() cache.Store               { return a.cache }
func (a *application) EventPublisher() eventbus.EventBus { return a.eventBus }
func (a *application) Logger() *logrus.Logger           { return a.logger }

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}

// RegisterServices indexes services by their concrete type for lookup from
// controllers.
func (a *application) RegisterServices(services ...interface{}) {
	for _, svc := range services {
		a.services[reflect.TypeOf(svc).Elem()] = svc
	}
}

func (a *application) RegisterMigrations(fs *embed.FS) {
	a.migrations = append(a.migrations, fs)
}

func (a *application) Migrations() []*embed.FS {
	return a.migrations
}

// Service returns the registered service with the same concrete type as the
// given prototype, e.g. app.Service(services.PositionService{}).
func (a *application) Service(service interface{}) interface{} {
	svc, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic("service not found: " + reflect.TypeOf(service).String())
	}
	return svc
}
