package middleware

import (
	"net/http"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in any handler into a 500 JSON response so one
// faulty request never takes the process down.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Recovered from panic",
			"request_id", response.RequestID(c),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		if !c.Writer.Written() {
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		c.Abort()
	})
}
