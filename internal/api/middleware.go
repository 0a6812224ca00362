package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsMiddleware mirrors the teacher's pkg/api/middleware.CORSMiddleware,
// narrowed to the read-only surface this daemon exposes (spec §6).
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
