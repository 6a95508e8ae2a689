package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shutterfest/notify/internal/api"
	"github.com/shutterfest/notify/internal/config"
	"github.com/shutterfest/notify/internal/confirmlink"
	"github.com/shutterfest/notify/internal/email"
	"github.com/shutterfest/notify/internal/ratelimit"
	"github.com/shutterfest/notify/internal/render"
	"github.com/shutterfest/notify/internal/repository/postgres"
	"github.com/shutterfest/notify/internal/service/dispatch"
	"github.com/shutterfest/notify/internal/service/subscriber"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database
	db, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	subscriberSvc := subscriber.NewService(postgres.NewSubscriberRepo(db))

	// Outbound transport: SES when enabled, SMTP otherwise
	var transport email.Transport
	switch {
	case cfg.SES.Enabled:
		transport, err = email.NewSESTransport(cfg.SES)
		if err != nil {
			log.Fatalf("Failed to initialize SES transport: %v", err)
		}
	case cfg.SMTP.Enabled:
		transport = email.NewSMTPTransport(cfg.SMTP)
	default:
		log.Fatal("No email transport enabled: set ses.enabled or smtp.enabled")
	}
	log.Printf("Email transport: %s", transport.Name())

	// Redis-backed send rate limiting (optional)
	var limiter dispatch.Limiter
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		rl, err := ratelimit.NewLimiterFromURL(cfg.Redis.URL, ratelimit.Limits{
			PerSecond: cfg.Dispatch.RatePerSecond,
			PerMinute: cfg.Dispatch.RatePerMinute,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rl.Close()
		limiter = rl
		redisClient = rl.Client()
		log.Println("Send rate limiting enabled")
	}

	issuer := confirmlink.NewIssuer(cfg.Confirm.Secret, cfg.Confirm.BaseURL, cfg.Confirm.TTL())
	dispatcher := dispatch.NewService(subscriberSvc, transport, render.NewRenderer(), issuer, limiter, cfg.Sender, cfg.Dispatch)

	health := api.NewHealthChecker(db, redisClient)
	handlers := api.NewHandlers(subscriberSvc, dispatcher, issuer, health)
	server := api.NewServer(cfg.Server, handlers)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
