// README: JSON chat endpoints backed by the in-memory conversation store.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roteiro/internal/modules/chat"
	"roteiro/internal/service"
)

type ChatHandler struct {
	chat *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chat: svc}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Send handles POST /api/chat. The bot reply is returned even when generation
// failed, since it carries the message the user should see.
func (h *ChatHandler) Send(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID != "" && !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ex, err := h.chat.Send(c.Request.Context(), req.SessionID, clientID(c), req.Message)
	if errors.Is(err, service.ErrEmptyMessage) {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if err != nil {
		c.Error(err)
	}
	writeJSON(c, http.StatusOK, ex)
}

// Messages handles GET /api/chat/:session_id/messages.
func (h *ChatHandler) Messages(c *gin.Context) {
	id := c.Param("session_id")
	if !isValidSessionID(id) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}
	msgs, ok := h.chat.History(id)
	if !ok {
		writeError(c, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"session_id": id, "messages": msgs})
}
