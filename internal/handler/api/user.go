package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/handler/httperr"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase"
)

type UserHandler struct {
	users usecase.UserUseCase
}

func NewUserHandler(users usecase.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// @Summary List users
// @Description List all active users. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), scope)
	if err != nil {
		if errors.Is(err, errs.ErrPermissionDenied) {
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUsers(users))
}
