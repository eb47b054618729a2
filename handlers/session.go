package handlers

import (
	"net/http"

	"hotelsa/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartSessionHandler opens an app session for the calling device and
// returns its token with the first frame.
func (hb *HandlerBundle) StartSessionHandler(c *gin.Context) {
	device, ok := middleware.DeviceFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device not found in context"})
		return
	}

	s, err := hb.Sessions.Start(c.Request.Context(), device)
	if err != nil {
		getLogger(c).Error("StartSession: failed", zap.String("deviceID", device.DeviceID), zap.Error(err))
		sessionError(c, err)
		return
	}
	token, expires, err := hb.Tokens.Issue(s.ID, device.DeviceID)
	if err != nil {
		hb.Sessions.End(s.ID)
		getLogger(c).Error("StartSession: failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	hb.respondSnapshot(c, s, http.StatusCreated, gin.H{
		"token":     token,
		"expiresAt": expires,
	})
}

// CurrentSessionHandler returns the session's current frame.
func (hb *HandlerBundle) CurrentSessionHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	hb.respondSnapshot(c, s, http.StatusOK, nil)
}

// EndSessionHandler closes the session and detaches it from the identity provider.
func (hb *HandlerBundle) EndSessionHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	hb.Sessions.End(s.ID)
	c.Status(http.StatusNoContent)
}
