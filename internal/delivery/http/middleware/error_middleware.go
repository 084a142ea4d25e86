package middleware

import (
	"errors"
	"net/http"

	"peer-backend/internal/delivery/http/response"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into JSON
// responses. Internal details are logged server-side and never exposed.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					logger.Log.Error("request failed",
						"path", c.FullPath(),
						"error", appErr.Err,
					)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}

			logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
