package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/adiwinata/eventdesk/internal/interface/http"
)

// ParticipantModule wires the public registration routes. Joining an event
// needs no account; the dashboard's public landing page drives these.
type ParticipantModule struct {
	Handler *handlers.ParticipantHandler
}

func NewParticipantModule(h *handlers.ParticipantHandler) *ParticipantModule {
	return &ParticipantModule{Handler: h}
}

func (m *ParticipantModule) Register(rg *gin.RouterGroup) {
	rg.POST("/participants", m.Handler.Join)
	rg.GET("/participants", m.Handler.List)
}
