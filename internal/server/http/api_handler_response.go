package http

import (
	"github.com/gin-gonic/gin"

	"launchpad/internal/logging"
)

type apiErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var responseLogger = logging.NewComponentLogger("HTTP")

// abortWithError logs and writes a JSON error body, then stops the chain.
func abortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		responseLogger.Error("HTTP %d - %s: %v", status, message, err)
		_ = c.Error(err)
	} else {
		responseLogger.Warn("HTTP %d - %s", status, message)
	}

	resp := apiErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}
