package handlers

import (
	"hotelsa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request logger set by RequestLogger, tagged with the
// app session once SessionAuthMiddleware resolved one.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, ok := c.Get("logger"); ok {
		if rl, ok := l.(*zap.Logger); ok {
			logger = rl
		}
	}
	if id := c.GetString("sessionID"); id != "" {
		logger = logger.With(zap.String("sessionID", id))
	}
	return logger
}
