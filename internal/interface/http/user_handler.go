package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/internal/domain/entity"
	"github.com/adiwinata/eventdesk/internal/interface/middleware"
	"github.com/adiwinata/eventdesk/pkg/response"
	"github.com/adiwinata/eventdesk/pkg/validation"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// List GET /api/users
// Admins see every field minus the password hash; everyone else gets the
// id/createdAt projection. The role comes from the caller's session, not
// from the request.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	admin := c.GetString(middleware.CtxUserRole) == entity.RoleAdmin
	out := make([]userView, 0, len(users))
	for i := range users {
		if admin {
			out = append(out, toUserView(&users[i]))
		} else {
			out = append(out, toUserIDView(&users[i]))
		}
	}
	response.JSON(c, response.Success(c, http.StatusOK, out, "users", nil))
}

type updateUserRequest struct {
	FullName    string `json:"fullName" binding:"omitempty"`
	Email       string `json:"email" binding:"omitempty,email"`
	Role1       string `json:"role1" binding:"omitempty"`
	Role2       string `json:"role2" binding:"omitempty"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty"`
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	u, err := h.Users.UpdateUser(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Role1:       req.Role1,
		Role2:       req.Role2,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, toUserView(u), "user updated", nil))
}

type updateRoleRequest struct {
	Role2 string `json:"role2" binding:"required"`
}

// UpdateRole PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	u, err := h.Users.UpdateRole(c.Request.Context(), c.Param("id"), req.Role2)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, toUserView(u), "role updated", nil))
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
