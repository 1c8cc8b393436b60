package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yoku/guildmaster/modules/organisation"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence"
	"github.com/yoku/guildmaster/modules/organisation/services"
	"github.com/yoku/guildmaster/pkg/application"
	"github.com/yoku/guildmaster/pkg/cache"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/configuration"
	"github.com/yoku/guildmaster/pkg/eventbus"
	"github.com/yoku/guildmaster/pkg/metrics"
	"github.com/yoku/guildmaster/pkg/middleware"
	"github.com/yoku/guildmaster/pkg/server"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.URL,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Error("failed to close redis client")
		}
	}()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		Cache:    cache.NewRedisStore(redisClient),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})

	for _, module := range []application.Module{organisation.NewModule()} {
		if err := module.Register(app); err != nil {
			logger.WithError(err).WithField("module", module.Name()).Fatal("failed to register module")
		}
	}

	if conf.MigrationsEnabled {
		if err := runMigrations(app, conf); err != nil {
			logger.WithError(err).Fatal("failed to run migrations")
		}
	}

	poolCtx := composables.WithPool(ctx, pool)
	if err := composables.InTx(poolCtx, persistence.SyncPermissionCatalog); err != nil {
		logger.WithError(err).Fatal("failed to sync permission catalog")
	}

	app.RegisterMiddleware(
		middleware.WithPool(pool),
		middleware.RequestID(conf.RequestIDHeader),
		middleware.ProvideUser(conf.UserIDHeader),
		middleware.Logging(logger),
	)
	if conf.Prometheus.Enabled {
		app.RegisterMiddleware(metrics.Middleware())
		app.RegisterControllers(&metrics.Controller{Path: conf.Prometheus.Path})
	}

	invitations := app.Service(services.InvitationService{}).(*services.InvitationService)
	go sweepExpiredInvitations(pool, logger, invitations, conf.Invitation.SweepInterval)

	srv := server.NewHTTPServer(app, conf.Origin)
	logger.WithField("address", conf.SocketAddress).Info("server listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

// runMigrations applies every module-contributed schema through goose over a
// database/sql handle; pgx pools cannot drive goose directly.
func runMigrations(app application.Application, conf *configuration.Configuration) error {
	db, err := sql.Open("postgres", conf.Database.Opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	for _, fs := range app.Migrations() {
		goose.SetBaseFS(fs)
		if err := goose.Up(db, "infrastructure/persistence/schema"); err != nil {
			return err
		}
	}
	goose.SetBaseFS(nil)
	return nil
}

func sweepExpiredInvitations(pool *pgxpool.Pool, logger *logrus.Logger, invitations *services.InvitationService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx := composables.WithPool(context.Background(), pool)
		if _, err := invitations.ExpireStalePending(ctx); err != nil {
			logger.WithError(err).Error("invitation expiry sweep failed")
		}
	}
}
