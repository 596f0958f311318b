// README: Base handler utilities (JSON helpers, error mapping, client identity).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roteiro/internal/modules/aiusage"
	"roteiro/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Generator is the part of the trip planner the handlers need.
type Generator interface {
	Generate(ctx context.Context, userMessage string) (string, error)
	ModelName() string
}

// Quota meters generations per client. Nil disables metering.
type Quota interface {
	UseToken(ctx context.Context, uid string) error
}

// isValidSessionID accepts the UUIDs handed out by the chat store.
func isValidSessionID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil && len(v) == 36
}

// clientID identifies the caller for quota purposes.
func clientID(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, aiusage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "generation timed out")
	default:
		writeError(c, http.StatusInternalServerError, "failed to generate response")
	}
}
