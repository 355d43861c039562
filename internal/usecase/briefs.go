package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"RegRadar/internal/ports"
)

// BriefRunDeps wires the repository and the generator into the enrichment pass.
type BriefRunDeps struct {
	Repository ports.BriefRepository
	Generator  ports.BriefGenerator
	Logger     *slog.Logger
}

// BriefRun generates one brief for every stored regulation lacking one.
// The ingestion pipeline is unaffected by its presence or absence.
type BriefRun struct {
	repository ports.BriefRepository
	generator  ports.BriefGenerator
	logger     *slog.Logger
	now        func() time.Time
}

// NewBriefRun constructs the enrichment component.
func NewBriefRun(deps BriefRunDeps) *BriefRun {
	return &BriefRun{
		repository: deps.Repository,
		generator:  deps.Generator,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Run returns the number of briefs generated. A nil generator (no API key)
// makes the run a no-op; a per-record generation failure logs and continues.
func (b *BriefRun) Run(ctx context.Context) (int, error) {
	if b.generator == nil {
		if b.logger != nil {
			b.logger.Info("skipping brief generation, no API key configured")
		}
		return 0, nil
	}

	regs, err := b.repository.WithoutBriefs(ctx)
	if err != nil {
		return 0, fmt.Errorf("load regulations without briefs: %w", err)
	}

	count := 0
	for _, reg := range regs {
		brief, err := b.generator.Generate(ctx, reg)
		if err != nil {
			if b.logger != nil {
				b.logger.Warn("brief generation failed", "id", reg.ID, "error", err)
			}
			continue
		}

		brief.GeneratedAt = b.now().Format(time.RFC3339)
		if err := b.repository.SaveBrief(ctx, brief); err != nil {
			return count, fmt.Errorf("save brief for %s: %w", reg.ID, err)
		}
		count++
	}

	return count, nil
}
