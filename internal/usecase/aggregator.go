package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"RegRadar/internal/domain"
	"RegRadar/internal/normalize"
	"RegRadar/internal/ports"
	"RegRadar/internal/source"
)

// RunOptions selects sources and bounds the fetch window for one run.
type RunOptions struct {
	Sources  []string
	DaysBack int
	PageSize int
	Keywords []string
}

// SourceResult reports one source's contribution to a run.
type SourceResult struct {
	Source  string
	Fetched int
	Stored  bool
}

// RunSummary aggregates per-source reporting for the caller.
type RunSummary struct {
	Results []SourceResult
}

// AggregatorDeps wires adapters, the store and reporting into the run loop.
type AggregatorDeps struct {
	Registry *source.Registry
	Store    ports.RegulationStore
	Sink     domain.EventSink
	Logger   *slog.Logger
	Defaults RunOptions
}

// Aggregator drives one full aggregation run: for each selected source in
// registration order, fetch, normalize, upsert. Sources are processed fully
// sequentially; one source's transport failure never aborts the others.
type Aggregator struct {
	registry *source.Registry
	store    ports.RegulationStore
	sink     domain.EventSink
	logger   *slog.Logger
	defaults RunOptions
}

var _ ports.AggregateRunner = (*Aggregator)(nil)

// NewAggregator constructs the orchestration component.
func NewAggregator(deps AggregatorDeps) *Aggregator {
	return &Aggregator{
		registry: deps.Registry,
		store:    deps.Store,
		sink:     deps.Sink,
		logger:   deps.Logger,
		defaults: deps.Defaults,
	}
}

// Run executes one aggregation pass. A missing credential or failed fetch
// only empties that source's contribution; store failures are fatal.
func (a *Aggregator) Run(ctx context.Context, opts RunOptions) (RunSummary, error) {
	var summary RunSummary

	if a.registry == nil || a.store == nil {
		return summary, fmt.Errorf("aggregator is not configured")
	}

	if err := a.store.EnsureSchema(ctx); err != nil {
		return summary, fmt.Errorf("ensure schema: %w", err)
	}

	names := opts.Sources
	if len(names) == 0 {
		names = a.registry.Names()
	}
	if opts.DaysBack <= 0 {
		opts.DaysBack = a.defaults.DaysBack
	}
	if opts.PageSize <= 0 {
		opts.PageSize = a.defaults.PageSize
	}
	if len(opts.Keywords) == 0 {
		opts.Keywords = a.defaults.Keywords
	}

	for _, name := range names {
		src, err := a.registry.Resolve(name)
		if err != nil {
			return summary, fmt.Errorf("select source: %w", err)
		}

		if !src.Enabled() {
			a.sink.Emit(domain.Event{Kind: domain.EventSourceSkipped, Source: name})
			summary.Results = append(summary.Results, SourceResult{Source: name})
			continue
		}

		a.debug("fetching source", "source", name)
		raw, err := src.Fetch(ctx, source.Request{
			DaysBack: opts.DaysBack,
			PageSize: opts.PageSize,
			Keywords: opts.Keywords,
		})
		if err != nil {
			a.sink.Emit(domain.Event{Kind: domain.EventFetchFailed, Source: name, Err: err})
			summary.Results = append(summary.Results, SourceResult{Source: name})
			continue
		}

		norm, ok := normalize.ForSource(name)
		if !ok {
			return summary, fmt.Errorf("no normalizer registered for source %s", name)
		}

		records := norm(raw)
		if err := a.store.UpsertBatch(ctx, src.Level(), records, src.Endpoint()); err != nil {
			return summary, fmt.Errorf("store %s batch: %w", name, err)
		}

		a.debug("source processed", "source", name, "fetched", len(raw))
		summary.Results = append(summary.Results, SourceResult{
			Source:  name,
			Fetched: len(raw),
			Stored:  true,
		})
	}

	return summary, nil
}

// RunAll performs a run with configured defaults (web fetch trigger).
func (a *Aggregator) RunAll(ctx context.Context) error {
	_, err := a.Run(ctx, a.defaults)
	return err
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
