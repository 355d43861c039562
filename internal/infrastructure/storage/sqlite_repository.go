package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"RegRadar/internal/domain"
	"RegRadar/internal/ports"
)

const regulationColumns = `id, level, title, description, published_date,
	full_text, source_url, source_last_modified, last_updated`

// Open opens the local SQLite database with WAL mode enabled.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	return db, nil
}

// SQLiteRepository persists canonical regulations and their briefs into a
// single local SQLite file. It owns the staleness-aware upsert policy.
type SQLiteRepository struct {
	db   *sql.DB
	sink domain.EventSink
	now  func() time.Time
}

var _ ports.RegulationStore = (*SQLiteRepository)(nil)
var _ ports.RegulationReader = (*SQLiteRepository)(nil)
var _ ports.BriefRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository wires a sql.DB plus an event sink for write/skip audit.
func NewSQLiteRepository(db *sql.DB, sink domain.EventSink) *SQLiteRepository {
	return &SQLiteRepository{db: db, sink: sink, now: time.Now}
}

// EnsureSchema idempotently creates both tables. No migration is attempted:
// calling it against an existing database is a no-op.
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	const regulations = `
		CREATE TABLE IF NOT EXISTS regulations (
			id TEXT PRIMARY KEY,
			level TEXT,
			title TEXT,
			description TEXT,
			published_date TEXT,
			full_text TEXT,
			source_url TEXT,
			source_last_modified TEXT,
			last_updated TEXT
		)`

	const briefs = `
		CREATE TABLE IF NOT EXISTS briefs (
			regulation_id TEXT PRIMARY KEY,
			business_impact TEXT,
			action_required TEXT,
			penalty TEXT,
			generated_at TEXT,
			FOREIGN KEY (regulation_id) REFERENCES regulations(id)
		)`

	if _, err := r.db.ExecContext(ctx, regulations); err != nil {
		return fmt.Errorf("create regulations table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, briefs); err != nil {
		return fmt.Errorf("create briefs table: %w", err)
	}
	return nil
}

// UpsertBatch applies the staleness policy to each record in input order.
// A record without an id is dropped; a record whose stored marker is fresh
// (stored and incoming both non-empty, stored >= incoming) is skipped;
// everything else is written as a full-row INSERT OR REPLACE. Each record is
// its own atomic unit, no transaction spans the batch. Only storage errors
// propagate.
func (r *SQLiteRepository) UpsertBatch(ctx context.Context, level domain.Level, records []domain.SourceRecord, sourceURL string) error {
	now := r.now().Format(time.RFC3339)

	for _, rec := range records {
		if rec.ID == "" {
			r.sink.Emit(domain.Event{Kind: domain.EventDroppedNoID, Source: string(level), Title: rec.Title})
			continue
		}

		var stored string
		err := r.db.QueryRowContext(ctx,
			`SELECT source_last_modified FROM regulations WHERE id = ?`, rec.ID,
		).Scan(&stored)

		exists := true
		if errors.Is(err, sql.ErrNoRows) {
			exists = false
		} else if err != nil {
			return fmt.Errorf("lookup %s: %w", rec.ID, err)
		}

		// Ambiguous freshness (either marker empty) defaults to applying
		// the update. Markers are compared as strings; formats are uniform
		// within a source.
		if exists && stored != "" && rec.SourceLastModified != "" && stored >= rec.SourceLastModified {
			r.sink.Emit(domain.Event{Kind: domain.EventSkippedStale, Source: string(level), RecordID: rec.ID, Title: rec.Title})
			continue
		}

		_, err = r.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO regulations
				(id, level, title, description, published_date,
				 full_text, source_url, source_last_modified, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID,
			string(level),
			rec.Title,
			rec.Description,
			rec.PublishedDate,
			rec.FullText,
			sourceURL,
			rec.SourceLastModified,
			now,
		)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", rec.ID, err)
		}

		r.sink.Emit(domain.Event{Kind: domain.EventStored, Source: string(level), RecordID: rec.ID, Title: rec.Title})
	}

	return nil
}

// List serves the browse layer: optional level filter, substring match on
// title/description, newest published first.
func (r *SQLiteRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Regulation, error) {
	builder := sq.Select(regulationColumns).From("regulations")

	if filter.Level != "" {
		builder = builder.Where(sq.Eq{"level": filter.Level})
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"title": like},
			sq.Like{"description": like},
		})
	}

	builder = builder.OrderBy("published_date DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list regulations: %w", err)
	}
	defer rows.Close()

	return collectRegulations(rows)
}

// Get returns one regulation by id, or nil when absent.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Regulation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+regulationColumns+` FROM regulations WHERE id = ?`, id)

	reg, err := scanRegulation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get regulation %s: %w", id, err)
	}
	return &reg, nil
}

// WithoutBriefs returns regulations that have no enrichment brief yet.
func (r *SQLiteRepository) WithoutBriefs(ctx context.Context) ([]domain.Regulation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.level, r.title, r.description, r.published_date,
		       r.full_text, r.source_url, r.source_last_modified, r.last_updated
		FROM regulations r
		LEFT JOIN briefs b ON r.id = b.regulation_id
		WHERE b.regulation_id IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("query regulations without briefs: %w", err)
	}
	defer rows.Close()

	return collectRegulations(rows)
}

// SaveBrief writes one brief row, replacing any previous one for the record.
func (r *SQLiteRepository) SaveBrief(ctx context.Context, brief domain.Brief) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO briefs
			(regulation_id, business_impact, action_required, penalty, generated_at)
		VALUES (?, ?, ?, ?, ?)`,
		brief.RegulationID,
		brief.BusinessImpact,
		brief.ActionRequired,
		brief.Penalty,
		brief.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("save brief for %s: %w", brief.RegulationID, err)
	}
	return nil
}

func scanRegulation(scanner interface{ Scan(dest ...any) error }) (domain.Regulation, error) {
	var reg domain.Regulation
	var level string
	err := scanner.Scan(
		&reg.ID, &level, &reg.Title, &reg.Description, &reg.PublishedDate,
		&reg.FullText, &reg.SourceURL, &reg.SourceLastModified, &reg.LastUpdated,
	)
	reg.Level = domain.Level(level)
	return reg, err
}

func collectRegulations(rows *sql.Rows) ([]domain.Regulation, error) {
	var regs []domain.Regulation
	for rows.Next() {
		reg, err := scanRegulation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan regulation: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return regs, nil
}
