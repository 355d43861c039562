package ports

import (
	"context"

	"RegRadar/internal/domain"
)

// RegulationStore owns the canonical schema and the staleness-aware upsert.
type RegulationStore interface {
	EnsureSchema(ctx context.Context) error
	UpsertBatch(ctx context.Context, level domain.Level, records []domain.SourceRecord, sourceURL string) error
}

// ListFilter narrows the browse query.
type ListFilter struct {
	Level  string
	Query  string
	Limit  int
	Offset int
}

// RegulationReader serves the read-only presentation layer.
type RegulationReader interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Regulation, error)
	Get(ctx context.Context, id string) (*domain.Regulation, error)
}

// BriefRepository persists enrichment briefs and finds records lacking one.
type BriefRepository interface {
	WithoutBriefs(ctx context.Context) ([]domain.Regulation, error)
	SaveBrief(ctx context.Context, brief domain.Brief) error
}

// BriefGenerator derives a compliance brief from one stored regulation.
type BriefGenerator interface {
	Generate(ctx context.Context, reg domain.Regulation) (domain.Brief, error)
}

// AggregateRunner triggers a full default aggregation run (used by the web
// layer's fetch endpoint).
type AggregateRunner interface {
	RunAll(ctx context.Context) error
}
