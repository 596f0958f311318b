// README: Itinerary generation endpoints (/generate_response and /status).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	gen   Generator
	quota Quota
}

func NewAIHandler(gen Generator, quota Quota) *AIHandler {
	return &AIHandler{gen: gen, quota: quota}
}

type generateReq struct {
	UserInput *string `json:"user_input"`
}

// Generate handles POST /generate_response: {"user_input": ...} -> {"response": ...}.
func (h *AIHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserInput == nil {
		writeError(c, http.StatusBadRequest, "Invalid input. 'user_input' is required.")
		return
	}
	if h.gen == nil {
		writeError(c, http.StatusInternalServerError, "Model not loaded. Please check server logs.")
		return
	}
	if strings.TrimSpace(*req.UserInput) == "" {
		writeError(c, http.StatusBadRequest, "Invalid input. 'user_input' is required.")
		return
	}

	if h.quota != nil {
		if err := h.quota.UseToken(c.Request.Context(), clientID(c)); err != nil {
			writeGenerationError(c, err)
			return
		}
	}

	text, err := h.gen.Generate(c.Request.Context(), *req.UserInput)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"response": text})
}

// Status handles GET /status.
func (h *AIHandler) Status(c *gin.Context) {
	if h.gen == nil {
		writeJSON(c, http.StatusInternalServerError, gin.H{"status": "Model not loaded. Please check server logs."})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"status": "Model loaded and server is running.",
		"model":  h.gen.ModelName(),
	})
}
