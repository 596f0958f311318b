// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roteiro/internal/http/handlers"
	"roteiro/internal/http/middleware"
	"roteiro/internal/http/web"
	"roteiro/internal/modules/chat"
)

type ServerDeps struct {
	Generator  handlers.Generator
	Quota      handlers.Quota
	Chat       *chat.Service
	RatePerMin int
}

type Server struct {
	engine *gin.Engine
}

func NewServer(deps ServerDeps) *Server {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())
	if deps.RatePerMin > 0 {
		r.Use(middleware.NewRateLimiter(deps.RatePerMin).Middleware())
	}
	r.SetHTMLTemplate(web.Templates())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	aiHandler := handlers.NewAIHandler(deps.Generator, deps.Quota)
	r.POST("/generate_response", aiHandler.Generate)
	r.GET("/status", aiHandler.Status)

	r.POST("/api/itinerary/parse", handlers.ParseItinerary)

	if deps.Chat != nil {
		chatHandler := handlers.NewChatHandler(deps.Chat)
		r.POST("/api/chat", chatHandler.Send)
		r.GET("/api/chat/:session_id/messages", chatHandler.Messages)

		webHandler := handlers.NewWebHandler(deps.Chat)
		r.GET("/", webHandler.Index)
		r.POST("/", webHandler.Send)
	}

	return &Server{engine: r}
}

func (s *Server) Routes() http.Handler {
	return s.engine
}
