package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"parkspot/internal/domain/auth"
	"parkspot/internal/domain/user"
	"parkspot/internal/handler/httperr"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase"
)

const (
	ctxScopeKey    = "auth_scope"
	ctxCallerIDKey = "caller_id"
	ctxRoleKey     = "caller_role"
)

type AuthMiddleware struct {
	users usecase.UserUseCase
}

func NewAuthMiddleware(users usecase.UserUseCase) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// RequireAuth resolves the opaque bearer credential to a user and
// computes the authorization scope once for the request. Everything
// downstream reads the scope instead of re-checking roles.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrInvalidToken, "Access token required", nil)
			return
		}

		caller, err := m.users.ResolveToken(c.Request.Context(), token)
		if err != nil {
			slog.Warn("token resolution failed", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrInvalidToken, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxScopeKey, auth.ScopeFor(caller))
		c.Set(ctxCallerIDKey, caller.ID())
		c.Set(ctxRoleKey, caller.Role())
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := GetScope(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
			return
		}

		if !scope.IsAdmin() {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrPermissionDenied, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

// extractToken accepts either a bare credential in the Authorization
// header or the conventional "Bearer <token>" form.
func extractToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return header
}

func GetScope(c *gin.Context) (auth.Scope, bool) {
	v, exists := c.Get(ctxScopeKey)
	if !exists {
		return auth.Scope{}, false
	}

	scope, ok := v.(auth.Scope)
	return scope, ok
}

func GetCallerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxCallerIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetCallerRole(c *gin.Context) (user.Role, bool) {
	v, exists := c.Get(ctxRoleKey)
	if !exists {
		return "", false
	}

	role, ok := v.(user.Role)
	return role, ok
}
