package handlers

import (
	"context"
	"errors"
	"net/http"

	"hotelsa/database/repository"
	"hotelsa/services/booking"
	"hotelsa/services/identity"
	"hotelsa/services/review"
	"hotelsa/services/session"
	"hotelsa/services/user"
	"hotelsa/utils"

	"github.com/gin-gonic/gin"
)

// authStatus maps identity error codes to HTTP statuses.
var authStatus = map[identity.ErrorCode]int{
	identity.CodeInvalidCredentials: http.StatusUnauthorized,
	identity.CodeNetwork:            http.StatusServiceUnavailable,
	identity.CodeEmailInUse:         http.StatusConflict,
	identity.CodeWeakPassword:       http.StatusBadRequest,
	identity.CodeInvalidEmail:       http.StatusBadRequest,
	identity.CodeUserNotFound:       http.StatusNotFound,
	identity.CodeDemoDisabled:       http.StatusForbidden,
	identity.CodeNotSignedIn:        http.StatusUnauthorized,
}

// writeError maps a service error to a status and standard error body.
func writeError(c *gin.Context, err error) {
	switch {
	case identity.CodeOf(err) != "":
		code := identity.CodeOf(err)
		status, ok := authStatus[code]
		if !ok {
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, string(code), err.Error())
	case booking.IsValidation(err), review.IsValidation(err), user.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, booking.ErrSignInRequired), errors.Is(err, review.ErrSignInRequired), errors.Is(err, user.ErrNotSignedIn):
		utils.JSONError(c, http.StatusUnauthorized, "sign in required", err.Error())
	case repository.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	default:
		sessionError(c, err)
	}
}

// sessionError handles failures of the session loop itself.
func sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrClosed):
		utils.JSONError(c, http.StatusGone, "session closed", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusRequestTimeout, "request cancelled", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
