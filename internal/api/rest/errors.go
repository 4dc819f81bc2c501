package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkhub/loyalty/internal/apperr"
)

// writeError converts a domain error to the REST error shape. Unrecognized
// errors are reported as a generic unknown error with internal detail hidden.
func writeError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code.HTTPStatus(), gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}

	slog.Error("unhandled error", "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown error", "code": apperr.CodeUnknown})
}
