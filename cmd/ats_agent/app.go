package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/keyphrases"
	"github.com/jonathan/ats-scorer/internal/llm"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/review"
	"github.com/jonathan/ats-scorer/internal/rewriting"
	"github.com/jonathan/ats-scorer/internal/scoring"
)

// app holds the collaborators shared by every command. Generative and
// embedding services are optional: without an API key the analyzer runs in
// degraded mode.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	client     llm.Client
	breaker    *llm.BreakerClient
	embeddings *embedding.Service
	store      db.Store
}

// loadConfig resolves the configuration: built-in defaults, then the JSON
// config file, then environment variables, then flags.
func loadConfig() (config.Config, error) {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.Defaults())
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	cfg.Verbose = cfg.Verbose || verbose
	cfg.LogJSON = cfg.LogJSON || logJSON

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp builds the shared collaborators. History is opened only when
// withHistory is set.
func newApp(ctx context.Context, withHistory bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log}

	if cfg.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set; semantic scoring, review and optimization are disabled")
	} else {
		client, err := llm.NewClient(ctx, llm.DefaultConfig().WithOverrides(cfg.Models), cfg.APIKey)
		if err != nil {
			log.Warn("generative service unavailable", zap.Error(err))
		} else {
			a.breaker = llm.NewBreakerClient(client, cfg.Breaker(), logger.Component(log, "llm"))
			a.client = a.breaker
		}
		a.embeddings = embedding.NewService(
			embedding.GeminiFactory(cfg.APIKey, cfg.EmbeddingModel),
			cfg.Breaker(),
			logger.Component(log, "embedding"),
		)
	}

	if withHistory {
		driver, dsn := cfg.History()
		store, err := db.Open(ctx, driver, dsn)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open %s history: %w", driver, err)
		}
		log.Debug("history opened", zap.String("driver", driver))
		a.store = store
	}

	return a, nil
}

// analyzer wires the pipeline. Optional collaborators stay nil interfaces
// when their service is missing.
func (a *app) analyzer() *pipeline.Analyzer {
	semantic := &scoring.SemanticScorer{Logger: logger.Component(a.logger, "semantic")}
	if a.embeddings != nil {
		semantic.Embedder = a.embeddings
	}

	p := &pipeline.Analyzer{
		Semantic:  semantic,
		Reviewer:  &review.Analyzer{Client: a.client, Logger: logger.Component(a.logger, "review")},
		Optimizer: &rewriting.Optimizer{Client: a.client, Logger: logger.Component(a.logger, "optimizer")},
		Logger:    logger.Component(a.logger, "pipeline"),
	}
	if a.client != nil {
		p.Phrases = &keyphrases.Scorer{Client: a.client, Logger: logger.Component(a.logger, "keyphrases")}
	}
	if a.store != nil {
		p.Store = a.store
	}
	if a.cfg.Verbose {
		p.OnProgress = func(e pipeline.ProgressEvent) {
			a.logger.Debug(e.Message, zap.String("step", e.Step), zap.String(logger.FieldAnalysisID, e.AnalysisID))
		}
	}
	return p
}

// health reports the optional backends for the health endpoint.
func (a *app) health() map[string]string {
	status := map[string]string{
		"generative": "unavailable",
		"embedding":  a.embeddings.Status(),
	}
	if a.breaker != nil {
		status["generative"] = a.breaker.State()
	}
	return status
}

// Close releases the services and the history store.
func (a *app) Close() {
	var errs []error
	if a.client != nil {
		errs = append(errs, a.client.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("failed to release resources", zap.Error(err))
	}
	_ = a.logger.Sync()
}
