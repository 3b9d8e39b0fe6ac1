package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/config"
	"github.com/kikoi/portfolio-backend/internal/document"
	"github.com/kikoi/portfolio-backend/internal/handler"
	"github.com/kikoi/portfolio-backend/internal/logging"
	"github.com/kikoi/portfolio-backend/internal/mailer"
	"github.com/kikoi/portfolio-backend/internal/repository"
	"github.com/kikoi/portfolio-backend/internal/service"
	"github.com/kikoi/portfolio-backend/internal/storage"
	"github.com/kikoi/portfolio-backend/pkg/auth"
	"github.com/kikoi/portfolio-backend/pkg/genai"
	"github.com/kikoi/portfolio-backend/pkg/rates"
)

// requestSlack covers the non-mail work of the slowest request: PDF
// rendering, database writes and the archive upload.
const requestSlack = 30 * time.Second

// writeTimeout fits a proposal request, which sends two emails in turn,
// each under the full retry policy.
func writeTimeout(retry mailer.RetryPolicy, smtpTimeout time.Duration) time.Duration {
	return 2*retry.MaxDuration(smtpTimeout) + requestSlack
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(false)
		var ce *apperr.ConfigurationError
		if errors.As(err, &ce) {
			logging.Fatal("missing required configuration", "missing", ce.Missing)
		}
		logging.Fatal("failed to load configuration", "error", err)
	}
	logging.Setup(cfg.IsDevelopment())

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DSN())
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	proposalRepo := repository.NewPgProposalRepository(pool)
	conversationRepo := repository.NewPgConversationRepository(pool)

	gateway, err := mailer.NewSMTPGateway(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		Timeout:  cfg.SMTPTimeout,
	})
	if err != nil {
		logging.Fatal("failed to configure SMTP", "error", err)
	}
	retry := mailer.RetryPolicy{
		Attempts: cfg.MailRetryAttempts,
		Backoff:  cfg.MailRetryBackoff,
	}
	dispatcher := mailer.NewDispatcher(gateway, mailer.DispatcherConfig{
		SenderAddress:   cfg.EmailUser,
		OperatorAddress: cfg.OperatorEmail,
		OwnerName:       cfg.OwnerName,
		Retry:           retry,
	})

	ai, err := genai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logging.Fatal("failed to configure AI client", "error", err)
	}

	rateClient, err := rates.New(cfg.RatesAPIURL)
	if err != nil {
		logging.Fatal("failed to configure rates client", "error", err)
	}

	// A nil interface, not a typed nil, disables archiving.
	var archive storage.Storage
	if cfg.ArchiveEnabled() {
		s3, err := storage.NewS3Storage(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logging.Fatal("failed to configure S3 archive", "error", err)
		}
		archive = s3
	}

	var windows handler.WindowStore = handler.NewMemoryWindowStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logging.Fatal("invalid REDIS_URL", "error", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		windows = handler.NewRedisWindowStore(rdb, "ratelimit:")
	}

	contactService := service.NewContactService(contactRepo, dispatcher)
	proposalService := service.NewProposalService(proposalRepo, document.NewProposalRenderer(cfg.OwnerName), dispatcher, archive)
	conversationLog := service.NewConversationLog(conversationRepo)
	chatbotService := service.NewChatbotService(conversationLog, ai, dispatcher)
	ratesService := service.NewRatesService(rateClient)

	resp := handler.NewResponder(cfg.IsDevelopment())
	routes := handler.Routes{
		Health:         handler.NewHealthHandler(pool),
		Rates:          handler.NewRatesHandler(ratesService, resp),
		Contact:        handler.NewContactHandler(contactService, resp),
		Proposal:       handler.NewProposalHandler(proposalService, resp),
		Chatbot:        handler.NewChatbotHandler(chatbotService, conversationLog, resp),
		RateLimiter:    handler.NewRateLimiter(windows, cfg.RateLimitMax, cfg.RateLimitWindow, cfg.TrustedProxyCount),
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.OperatorTokenSecret != "" {
		routes.RequireOperator = auth.RequireOperator([]byte(cfg.OperatorTokenSecret))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout(retry, cfg.SMTPTimeout),
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
