// README: Server-rendered chat page; the session id travels in a cookie.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roteiro/internal/modules/chat"
	"roteiro/internal/service"
)

const (
	SessionCookie    = "roteiro_session"
	sessionCookieAge = 7 * 24 * 60 * 60
)

type WebHandler struct {
	chat *chat.Service
}

func NewWebHandler(svc *chat.Service) *WebHandler {
	return &WebHandler{chat: svc}
}

// Index handles GET /.
func (h *WebHandler) Index(c *gin.Context) {
	id := h.session(c)
	msgs, _ := h.chat.History(id)
	c.HTML(http.StatusOK, "index.html", gin.H{"Messages": msgs})
}

// Send handles POST / and redirects back to the page.
func (h *WebHandler) Send(c *gin.Context) {
	id := h.session(c)
	ex, err := h.chat.Send(c.Request.Context(), id, clientID(c), c.PostForm("message"))
	if err != nil && !errors.Is(err, service.ErrEmptyMessage) {
		c.Error(err)
	}
	if ex.SessionID != "" && ex.SessionID != id {
		h.setCookie(c, ex.SessionID)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// session returns the live session named by the cookie, starting one when
// the cookie is missing or stale.
func (h *WebHandler) session(c *gin.Context) string {
	id, err := c.Cookie(SessionCookie)
	if err == nil && isValidSessionID(id) {
		if _, ok := h.chat.History(id); ok {
			return id
		}
	}
	id = h.chat.Start()
	h.setCookie(c, id)
	return id
}

func (h *WebHandler) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionCookieAge, "/", "", false, true)
}
