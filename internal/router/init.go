package router

import (
	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/internal/container"
	pginfra "github.com/adiwinata/eventdesk/internal/infrastructure/postgres"
	handlers "github.com/adiwinata/eventdesk/internal/interface/http"
	"github.com/adiwinata/eventdesk/internal/router/modules"
	"github.com/adiwinata/eventdesk/pkg/helpers"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	eventRepo := pginfra.NewEventRepository(pool)
	participantRepo := pginfra.NewParticipantRepository(pool)

	// Keep the interface nil when no publisher was configured.
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	userSvc := application.NewUserService(userRepo, container.GetJWT(), container.GetRedis(), logger, cfg.SessionTTL, pub, cfg.AppName)
	eventSvc := application.NewEventService(eventRepo, participantRepo, logger, container.GetES(), cfg.ESEventsIndex, cfg.StrictCapacityUpdate)
	regSvc := application.NewRegistrationService(eventRepo, participantRepo, pub, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, cookies, logger), container.GetJWT()))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), container.GetJWT()))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, logger), container.GetJWT()))
	r.Add(modules.NewParticipantModule(handlers.NewParticipantHandler(regSvc, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
