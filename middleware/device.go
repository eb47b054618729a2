package middleware

import (
	"net/http"

	"hotelsa/models"

	"github.com/gin-gonic/gin"
)

// Device header names.
const (
	HeaderDeviceID   = "X-Device-ID"
	HeaderDeviceName = "X-Device-Name"
)

// DeviceDetailsMiddleware requires X-Device-ID and records the device in the
// context. X-Device-Name is optional.
func DeviceDetailsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(HeaderDeviceID)
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing required device details: X-Device-ID",
			})
			return
		}

		c.Set("device", models.Device{
			DeviceID:   deviceID,
			DeviceName: c.GetHeader(HeaderDeviceName),
			IP:         getClientIP(c),
		})
		c.Set("deviceID", deviceID)
		c.Next()
	}
}

// DeviceFrom returns the device recorded by DeviceDetailsMiddleware.
func DeviceFrom(c *gin.Context) (models.Device, bool) {
	v, ok := c.Get("device")
	if !ok {
		return models.Device{}, false
	}
	d, ok := v.(models.Device)
	return d, ok
}
