package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/wealth-sync/utils"
)

// RequestLogger logs each request through the masking logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(c.Request.Method, c.FullPath(), GetUserID(c), c.Writer.Status(), time.Since(start).String())
	}
}
