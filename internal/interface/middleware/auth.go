package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	"github.com/adiwinata/eventdesk/pkg/helpers"
	"github.com/adiwinata/eventdesk/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// Auth validates the access token cookie and checks the server-side session
// in Redis. The sid claim must match the active session, so a rotated or
// dropped session invalidates every token issued before it. The caller's
// role is read from the session hash, never from the request.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		data, err := rdb.HGetAll(c.Request.Context(), helpers.SessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 {
			abort(c, http.StatusUnauthorized, "session not found", nil)
			return
		}
		if data["sid"] != claims.SessionID {
			abort(c, http.StatusUnauthorized, "session expired", nil)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, data["role"])
		c.Next()
	}
}

// RequireAdmin gates a route group to sessions whose stored role is ADMIN.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != entity.RoleAdmin {
			abort(c, http.StatusForbidden, "admin role required", nil)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, msg string, detail interface{}) {
	resp := response.Error[any](c, status, msg, detail)
	c.AbortWithStatusJSON(resp.Status, resp)
}
