package middleware

import (
	"net/http"
	"strings"

	"hotelsa/services/session"
	"hotelsa/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware resolves the app session named by the bearer token.
// The token must have been issued to the device sending X-Device-ID.
func SessionAuthMiddleware(tokens *utils.SessionTokens, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if c.GetHeader(HeaderDeviceID) != claims.Device {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token was issued to another device"})
			return
		}

		s, ok := sessions.Get(claims.Subject)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		c.Set("session", s)
		c.Set("sessionID", s.ID)
		c.Set("deviceID", claims.Device)
		c.Next()
	}
}

// SessionFrom returns the session resolved by SessionAuthMiddleware.
func SessionFrom(c *gin.Context) (*session.AppSession, bool) {
	v, ok := c.Get("session")
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.AppSession)
	return s, ok
}
