package main

import (
	"context"
	"log"
	"net/http"

	webAdapter "quotegen/internal/adapters/web"
	"quotegen/internal/ai"
	"quotegen/internal/app"
	"quotegen/internal/config"
	"quotegen/internal/core"
	"quotegen/internal/db"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	companies := core.NewCompanyService(pool)
	clients := core.NewClientService(pool)
	quotes := core.NewQuoteService(pool)
	memberships := core.NewMembershipService(pool)

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; text generation will fail")
	}
	gateway := ai.NewGateway(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	narrative := ai.NewNarrativeService(app.NarrativeStore(companies, clients, quotes), gateway, logger)

	svc := app.NewAppService(companies, clients, quotes, memberships, narrative)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret, logger)

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
