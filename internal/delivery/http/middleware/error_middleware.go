package middleware

import (
	"errors"
	"net/http"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		// Log the cause server-side; the client only gets the AppError message
		attrs := []any{"request_id", response.RequestID(c), "status", appErr.Code, "path", c.FullPath()}
		if appErr.Err != nil {
			attrs = append(attrs, "error", appErr.Err.Error())
		}
		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error(appErr.Message, attrs...)
		} else {
			logger.Log.Warn(appErr.Message, attrs...)
		}

		response.Error(c, appErr.Code, appErr.Message)
	}
}
