package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/pkg/response"
	"github.com/adiwinata/eventdesk/pkg/validation"
)

type ParticipantHandler struct {
	Reg    *application.RegistrationService
	Logger *logrus.Logger
}

func NewParticipantHandler(reg *application.RegistrationService, logger *logrus.Logger) *ParticipantHandler {
	return &ParticipantHandler{Reg: reg, Logger: logger}
}

type joinRequest struct {
	EventID string `json:"eventId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Role    string `json:"role" binding:"required"`
}

// Join POST /api/participants registers an email for an event. The checks
// run inside one row-locked transaction, so a 201 here means the capacity
// invariant still holds.
func (h *ParticipantHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	p, err := h.Reg.Join(c.Request.Context(), application.JoinInput{
		EventID: req.EventID,
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, toParticipantView(p), "registered", nil))
}

// List GET /api/participants?event_id=
func (h *ParticipantHandler) List(c *gin.Context) {
	parts, err := h.Reg.ListParticipants(c.Request.Context(), c.Query("event_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]participantView, 0, len(parts))
	for i := range parts {
		out = append(out, toParticipantView(&parts[i]))
	}
	response.JSON(c, response.Success(c, http.StatusOK, out, "participants", nil))
}
