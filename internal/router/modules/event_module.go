package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/adiwinata/eventdesk/internal/container"
	handlers "github.com/adiwinata/eventdesk/internal/interface/http"
	"github.com/adiwinata/eventdesk/internal/interface/middleware"
	"github.com/adiwinata/eventdesk/pkg/helpers"
)

// EventModule wires the event routes.
// Public: GET /api/events, GET /api/events/:id.
// Authenticated: GET /api/events/search.
// Admin only: POST, PUT, DELETE.
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rg.GET("/events", m.Handler.List)
	rg.GET("/events/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("/events/search", m.Handler.Search)

		admin := auth.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/events", m.Handler.Create)
			admin.PUT("/events/:id", m.Handler.Update)
			admin.DELETE("/events/:id", m.Handler.Delete)
		}
	}
}
