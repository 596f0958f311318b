// README: Entry point; loads config, wires services, starts HTTP server and background janitors.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"roteiro/internal/ai"
	"roteiro/internal/config"
	httptransport "roteiro/internal/http"
	"roteiro/internal/infra"
	"roteiro/internal/modules/aiusage"
	"roteiro/internal/modules/chat"
	"roteiro/internal/service"
)

const (
	sessionTTL      = 24 * time.Hour
	janitorInterval = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := newProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai init: %v", err)
	}
	defer closeProvider()

	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()
		provider = ai.NewCachedProvider(provider, redisClient, cfg.Redis.CacheTTL)
		log.Printf("response cache enabled (%s, ttl %s)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	deps := httptransport.ServerDeps{RatePerMin: cfg.HTTP.RatePerMin}
	var quota chat.Quota
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		usage := aiusage.NewService(aiusage.NewStore(dbPool), cfg.DB.MonthlyQuota)
		quota, deps.Quota = usage, usage
		log.Printf("monthly quota enabled (%d generations per client)", cfg.DB.MonthlyQuota)
	}

	planner := service.NewTripPlanner(provider, cfg.AI.Timeout)
	store := chat.NewStore()
	deps.Generator = planner
	deps.Chat = chat.NewService(store, planner, quota)

	handler := httptransport.NewServer(deps)
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           c.Handler(handler.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go store.RunJanitor(ctx, janitorInterval, sessionTTL)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("roteiro-api listening on %s (model %s)", cfg.HTTP.Addr, provider.Model())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg config.AIConfig) (ai.LLMProvider, func(), error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return ai.NewChatGPTProvider(cfg.OpenAIKey, cfg.Model), func() {}, nil
	default:
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	}
}
