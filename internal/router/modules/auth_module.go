package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/adiwinata/eventdesk/internal/container"
	handlers "github.com/adiwinata/eventdesk/internal/interface/http"
	"github.com/adiwinata/eventdesk/internal/interface/middleware"
	"github.com/adiwinata/eventdesk/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", m.Handler.SignUp)
	rg.POST("/auth/signin", m.Handler.SignIn)
	rg.POST("/auth/refresh", m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
