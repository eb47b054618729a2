package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateProfileHandler renames the signed-in user.
func (hb *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	profile, err := hb.Users.UpdateName(c.Request.Context(), s.Provider, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	hb.respondSnapshot(c, s, http.StatusOK, gin.H{
		"profile": profile,
		"message": "Profile updated successfully",
	})
}

// UpdatePushTokenHandler stores the device's FCM token for booking confirmations.
func (hb *HandlerBundle) UpdatePushTokenHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := hb.Users.RegisterPushToken(c.Request.Context(), s.Identity(), req.Token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}
