package controller

import (
	"errors"
	"net/http"
	"training_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleError maps service errors to HTTP responses in one place so every
// controller reports the same way.
func handleError(c *gin.Context, err error) {
	switch {
	case util.IsNotFound(err):
		util.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrValidation):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrSessionConflict):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrInvalidTransition):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrModuleLocked),
		errors.Is(err, util.ErrContentLocked),
		errors.Is(err, util.ErrQuizNotPassed):
		util.Error(c, http.StatusForbidden, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
