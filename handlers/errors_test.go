package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelsa/database/repository"
	"hotelsa/services/booking"
	"hotelsa/services/identity"
	"hotelsa/services/review"
	"hotelsa/services/session"

	"github.com/gin-gonic/gin"
)

func TestWriteErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad password", &identity.AuthError{Code: identity.CodeInvalidCredentials}, http.StatusUnauthorized},
		{"wrapped email in use", fmt.Errorf("sign up: %w", &identity.AuthError{Code: identity.CodeEmailInUse}), http.StatusConflict},
		{"provider offline", &identity.AuthError{Code: identity.CodeNetwork}, http.StatusServiceUnavailable},
		{"demo disabled", &identity.AuthError{Code: identity.CodeDemoDisabled}, http.StatusForbidden},
		{"booking validation", &booking.ValidationError{Field: "guests", Message: "must be at least 1"}, http.StatusBadRequest},
		{"review validation", &review.ValidationError{Field: "rating", Message: "out of range"}, http.StatusBadRequest},
		{"booking signed out", booking.ErrSignInRequired, http.StatusUnauthorized},
		{"missing hotel", fmt.Errorf("quote: %w", repository.ErrNotFound), http.StatusNotFound},
		{"closed session", session.ErrClosed, http.StatusGone},
		{"client went away", context.Canceled, http.StatusRequestTimeout},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			writeError(c, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
