package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AksChougule/lairn/internal/api"
	"github.com/AksChougule/lairn/internal/generator"
	"github.com/AksChougule/lairn/internal/grader"
	"github.com/AksChougule/lairn/internal/infrastructure/config"
	"github.com/AksChougule/lairn/internal/llm"
	"github.com/AksChougule/lairn/internal/service"
	"github.com/AksChougule/lairn/internal/store"

	_ "github.com/AksChougule/lairn/docs" // swagger docs
)

// @title           lairn API
// @version         1.0
// @description     Generates quiz sessions on technical topics with a local model and grades the answers.

// @host      localhost:8000
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	// ── Dependencies ────────────────────────────────────────────────
	driver, err := store.ParseDriver(cfg.DatabaseDriver)
	if err != nil {
		logger.Error("invalid database driver", "error", err)
		os.Exit(1)
	}
	openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := store.Open(openCtx, driver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("failed to open database", "driver", driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var gatewayOpts []llm.Option
	if cfg.LLMBackend == config.BackendLangchain {
		completer, err := llm.NewLangchainCompleter(cfg.OllamaBaseURL, cfg.OllamaModel)
		if err != nil {
			logger.Error("failed to create langchain completer", "error", err)
			os.Exit(1)
		}
		gatewayOpts = append(gatewayOpts, llm.WithCompleter(completer))
	}
	gateway := llm.NewGateway(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout, logger, gatewayOpts...)

	genOpts := []generator.Option{
		generator.WithAvoidLimit(cfg.DedupAvoidLimit),
		generator.WithRetries(cfg.OllamaMaxRetries),
	}
	if cfg.QuizBankPath != "" {
		bank, err := generator.LoadBankFile(cfg.QuizBankPath)
		if err != nil {
			logger.Error("failed to load question bank", "path", cfg.QuizBankPath, "error", err)
			os.Exit(1)
		}
		genOpts = append(genOpts, generator.WithBank(bank))
	}
	gen := generator.New(gateway, logger, genOpts...)
	judge := grader.NewShortAnswerJudge(gateway, logger, grader.WithRetries(cfg.OllamaMaxRetries))

	quizSvc := service.NewQuizService(db, gen, judge, gateway, logger)
	handler := api.NewHandler(quizSvc, logger)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"database", driver,
		"model", gateway.Model(),
		"backend", cfg.LLMBackend,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
