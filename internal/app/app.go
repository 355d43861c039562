package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"RegRadar/internal/config"
	"RegRadar/internal/infrastructure/llm"
	"RegRadar/internal/infrastructure/sources"
	"RegRadar/internal/infrastructure/storage"
	"RegRadar/internal/infrastructure/web"
	"RegRadar/internal/logging"
	"RegRadar/internal/ports"
	"RegRadar/internal/source"
	"RegRadar/internal/usecase"
)

// Application wires configuration to the pipeline, the enrichment pass and
// the browse server.
type Application struct {
	cfg        config.Config
	db         *sql.DB
	aggregator *usecase.Aggregator
	briefs     *usecase.BriefRun
	web        *web.Server
}

// New opens the store and builds every component. Close must be called when
// the caller is done.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Database.Path, err)
	}

	sink := logging.EventSink(baseLogger.With("component", "pipeline"))
	repo := storage.NewSQLiteRepository(db, sink)

	// Safe on every process start; a no-op when the tables already exist.
	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	registry := source.NewRegistry()
	registry.Register(sources.NewFederalSource(cfg.Sources.Federal, nil))
	registry.Register(sources.NewStateSource(cfg.Sources.State, nil))
	registry.Register(sources.NewLocalSource(cfg.Sources.Local, nil))

	aggregator := usecase.NewAggregator(usecase.AggregatorDeps{
		Registry: registry,
		Store:    repo,
		Sink:     sink,
		Logger:   baseLogger.With("component", "aggregator"),
		Defaults: usecase.RunOptions{
			DaysBack: cfg.Fetch.DaysBack,
			PageSize: cfg.Fetch.PageSize,
			Keywords: cfg.Fetch.Keywords,
		},
	})

	var generator ports.BriefGenerator
	if cfg.Anthropic.APIKey != "" {
		generator = llm.NewClaudeClient(cfg.Anthropic)
	}
	briefs := usecase.NewBriefRun(usecase.BriefRunDeps{
		Repository: repo,
		Generator:  generator,
		Logger:     baseLogger.With("component", "briefs"),
	})

	webServer := web.NewServer(repo, aggregator, cfg.Web.PageSize, baseLogger.With("component", "web"))

	return &Application{
		cfg:        cfg,
		db:         db,
		aggregator: aggregator,
		briefs:     briefs,
		web:        webServer,
	}, nil
}

// Aggregate performs one ingestion run.
func (a *Application) Aggregate(ctx context.Context, opts usecase.RunOptions) (usecase.RunSummary, error) {
	return a.aggregator.Run(ctx, opts)
}

// GenerateBriefs runs the enrichment pass over records lacking a brief.
func (a *Application) GenerateBriefs(ctx context.Context) (int, error) {
	return a.briefs.Run(ctx)
}

// Serve blocks on the browse server.
func (a *Application) Serve(addr string) error {
	if addr == "" {
		addr = a.cfg.Web.Addr
	}
	return http.ListenAndServe(addr, a.web.Handler())
}

// Close releases the store connection.
func (a *Application) Close() error {
	return a.db.Close()
}
