package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/internal/domain/repository"
	"github.com/adiwinata/eventdesk/pkg/response"
)

// writeError maps service and repository sentinels to HTTP statuses and
// writes the envelope. Anything unrecognized is a 500 with no internal
// detail leaked to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, err.Error(), nil))
	case errors.Is(err, application.ErrInvalidCredentials):
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil))
	case errors.Is(err, application.ErrUserNotFound):
		response.JSON(c, response.Error[any](c, http.StatusNotFound, "user not found", nil))
	case errors.Is(err, application.ErrCapacityBelowCount):
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "capacity is below the current participant count", nil))
	case errors.Is(err, repository.ErrNotFound):
		response.JSON(c, response.Error[any](c, http.StatusNotFound, "not found", nil))
	case errors.Is(err, repository.ErrAlreadyJoined):
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "already registered for this event", nil))
	case errors.Is(err, repository.ErrEventFull):
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "event capacity exceeded", nil))
	case errors.Is(err, repository.ErrEmailTaken):
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "email already registered", nil))
	default:
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal server error", nil))
	}
}
