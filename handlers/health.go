package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check and live session count.
func (hb *HandlerBundle) HealthHandler(c *gin.Context) {
	status := hb.Health.Status()
	status.Sessions = hb.Sessions.Len()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm HotelSA"})
}
