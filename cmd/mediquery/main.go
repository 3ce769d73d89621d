package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/mediquery/mediquery/internal/config"
	"github.com/mediquery/mediquery/internal/domain"
	logpkg "github.com/mediquery/mediquery/internal/logger"
	"github.com/mediquery/mediquery/internal/metrics"
	"github.com/mediquery/mediquery/internal/repository/embcache"
	enginerepo "github.com/mediquery/mediquery/internal/repository/engine"
	"github.com/mediquery/mediquery/internal/taxonomy"
	chiTransport "github.com/mediquery/mediquery/internal/transport/chi"
	"github.com/mediquery/mediquery/internal/transport/elastic"
	openaiEmb "github.com/mediquery/mediquery/internal/transport/openai"
	healthuc "github.com/mediquery/mediquery/internal/usecase/health"
	"github.com/mediquery/mediquery/internal/usecase/queryproc"
	"github.com/mediquery/mediquery/internal/usecase/retrieval"
	"github.com/mediquery/mediquery/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mediquery API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_url", cfg.Engine.BaseURL),
	)

	metrics.Register()

	// Engine client
	engineClient := elastic.NewClient(elastic.Config{
		BaseURL: cfg.Engine.BaseURL,
		APIKey:  cfg.Engine.APIKey,
		Timeout: time.Duration(cfg.Engine.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Vector search stays off until an embedding provider is configured.
	var embedder domain.Embedder = domain.UnavailableEmbedder{}
	var embeddingCheck healthuc.EmbeddingChecker
	if cfg.Embedding.Provider == "openai" {
		provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		embedder = provider
		embeddingCheck = provider
		logger.Info("Embedding provider enabled", zap.String("model", cfg.Embedding.Model))
	}

	var cacheCheck healthuc.CachePinger
	if len(cfg.Cache.Addrs) > 0 && cfg.Embedding.Provider != "" {
		cacheClient, cerr := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: cfg.Cache.Addrs,
			Password:    cfg.Cache.Password,
		})
		if cerr != nil {
			logger.Fatal("Failed to create cache client", zap.Error(cerr))
		}
		defer cacheClient.Close()

		cached := embcache.New(
			embedder, cacheClient,
			time.Duration(cfg.Cache.TTLHours)*time.Hour, logger,
		)
		embedder = cached
		cacheCheck = cached
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Usecases
	processor := queryproc.New(taxonomy.Default())
	repo := enginerepo.New(engineClient, cfg.Engine.Indices, logger)
	retrievalSvc := retrieval.New(processor, repo, embedder)
	healthSvc := healthuc.New(engineClient, embeddingCheck, cacheCheck)

	// HTTP server
	server := chiTransport.NewServer(retrievalSvc, processor, healthSvc, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(serveErr))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
