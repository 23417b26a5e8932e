package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/pkg/response"
	"github.com/adiwinata/eventdesk/pkg/validation"
)

type EventHandler struct {
	Events *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(events *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Events: events, Logger: logger}
}

type eventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Description string    `json:"description" binding:"omitempty"`
	Capacity    int       `json:"capacity" binding:"required,gt=0"`
}

func (r eventRequest) toInput() application.EventInput {
	return application.EventInput{
		Name:        r.Name,
		Date:        r.Date,
		Location:    r.Location,
		Description: r.Description,
		Capacity:    r.Capacity,
	}
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]eventView, 0, len(events))
	for i := range events {
		out = append(out, toEventView(&events[i]))
	}
	response.JSON(c, response.Success(c, http.StatusOK, out, "events", nil))
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, toEventView(e), "event", nil))
}

// Search GET /api/events/search?q=&size=
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Events.Search(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, hits, "search results", nil))
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	e, err := h.Events.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, toEventView(e), "event created", nil))
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	e, err := h.Events.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, toEventView(e), "event updated", nil))
}

// Delete DELETE /api/events/:id removes the event and every registration
// bound to it.
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
