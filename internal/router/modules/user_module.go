package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/adiwinata/eventdesk/internal/container"
	handlers "github.com/adiwinata/eventdesk/internal/interface/http"
	"github.com/adiwinata/eventdesk/internal/interface/middleware"
	"github.com/adiwinata/eventdesk/pkg/helpers"
)

// UserModule wires the account routes.
// Authenticated: GET /api/users (projection depends on the caller's role).
// Admin only: PUT /api/users/:id, PUT /api/users/:id/role, DELETE /api/users/:id.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("/users", m.Handler.List)

		admin := auth.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PUT("/users/:id", m.Handler.Update)
			admin.PUT("/users/:id/role", m.Handler.UpdateRole)
			admin.DELETE("/users/:id", m.Handler.Delete)
		}
	}
}
