package apperrors

import (
	"conectacg_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape for every failed request:
// {"success": false, "error": {...}}.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *AppError `json:"error"`
}

// Debug controls whether internal error causes leak into responses.
// Set once at boot from the server environment.
var Debug = false

// HandleError writes an AppError (or a wrapped unknown error) to the gin
// response. Unclassified failures are logged in full server-side and
// surfaced as a generic internal error unless Debug is on.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		logger.CtxWithError(c.Request.Context(), "unclassified error", err, "path", c.Request.URL.Path)
		appErr = InternalError(err)
		if !Debug {
			appErr = New(CodeInternalError, "Internal server error", appErr.HTTPCode)
		}
	} else if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr, "path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Success: false, Error: appErr})
}
