package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/internal/interface/middleware"
	"github.com/adiwinata/eventdesk/pkg/helpers"
	"github.com/adiwinata/eventdesk/pkg/response"
	"github.com/adiwinata/eventdesk/pkg/validation"
)

type AuthHandler struct {
	Users   *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(users *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Cookies: cookies, Logger: logger}
}

type signUpRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty"`
	Role1       string `json:"role1" binding:"omitempty"`
	Role2       string `json:"role2" binding:"omitempty"`
}

// SignUp POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	u, err := h.Users.SignUp(c.Request.Context(), application.SignUpInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role1:       req.Role1,
		Role2:       req.Role2,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, toUserView(u), "account created", nil))
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn POST /api/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err)))
		return
	}
	u, pair, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.JSON(c, response.Success(c, http.StatusOK, toUserView(u), "signed in", nil))
}

// Refresh POST /api/auth/refresh rotates the session and both cookies.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil))
		return
	}
	pair, err := h.Users.Refresh(c.Request.Context(), token)
	if err != nil {
		h.Cookies.Clear(c)
		writeError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.JSON(c, response.Success[any](c, http.StatusOK, nil, "token refreshed", nil))
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Users.Logout(c.Request.Context(), c.GetString(middleware.CtxUserID))
	h.Cookies.Clear(c)
	response.JSON(c, response.Success[any](c, http.StatusOK, nil, "signed out", nil))
}
