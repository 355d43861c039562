package usecase

import (
	"context"
	"errors"
	"testing"

	"RegRadar/internal/domain"
	"RegRadar/internal/ports"
	"RegRadar/internal/source"
)

type fakeSource struct {
	name    string
	level   domain.Level
	enabled bool
	items   []map[string]any
	err     error
	calls   int
}

func (f *fakeSource) Name() string        { return f.name }
func (f *fakeSource) Level() domain.Level { return f.level }
func (f *fakeSource) Endpoint() string    { return "https://" + f.name + ".example" }
func (f *fakeSource) Enabled() bool       { return f.enabled }

func (f *fakeSource) Fetch(ctx context.Context, req source.Request) ([]map[string]any, error) {
	f.calls++
	return f.items, f.err
}

type storedBatch struct {
	level     domain.Level
	records   []domain.SourceRecord
	sourceURL string
}

type fakeStore struct {
	schemaCalls int
	schemaErr   error
	upsertErr   error
	batches     []storedBatch
}

func (f *fakeStore) EnsureSchema(ctx context.Context) error {
	f.schemaCalls++
	return f.schemaErr
}

func (f *fakeStore) UpsertBatch(ctx context.Context, level domain.Level, records []domain.SourceRecord, sourceURL string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.batches = append(f.batches, storedBatch{level: level, records: records, sourceURL: sourceURL})
	return nil
}

var _ ports.RegulationStore = (*fakeStore)(nil)

func newTestAggregator(store ports.RegulationStore, sink domain.EventSink, srcs ...*fakeSource) *Aggregator {
	registry := source.NewRegistry()
	for _, src := range srcs {
		registry.Register(src)
	}
	return NewAggregator(AggregatorDeps{
		Registry: registry,
		Store:    store,
		Sink:     sink,
		Defaults: RunOptions{DaysBack: 7, PageSize: 10, Keywords: []string{"food"}},
	})
}

func TestRunProcessesSourcesSequentially(t *testing.T) {
	t.Parallel()

	federal := &fakeSource{
		name:    "federal",
		level:   domain.LevelFederal,
		enabled: true,
		items: []map[string]any{{
			"id":         "FED-001",
			"attributes": map[string]any{"documentId": "FED-001-0001", "title": "Rule X"},
		}},
	}
	state := &fakeSource{name: "state", level: domain.LevelState, enabled: true}

	store := &fakeStore{}
	agg := newTestAggregator(store, nil, federal, state)

	summary, err := agg.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if store.schemaCalls != 1 {
		t.Fatalf("expected one EnsureSchema call, got %d", store.schemaCalls)
	}
	if len(store.batches) != 2 {
		t.Fatalf("expected 2 stored batches, got %d", len(store.batches))
	}

	first := store.batches[0]
	if first.level != domain.LevelFederal || first.sourceURL != "https://federal.example" {
		t.Fatalf("unexpected first batch: %+v", first)
	}
	if len(first.records) != 1 || first.records[0].ID != "FED-001-0001" {
		t.Fatalf("raw items were not normalized: %+v", first.records)
	}

	if len(summary.Results) != 2 || summary.Results[0].Source != "federal" || !summary.Results[0].Stored {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunSkipsSourceWithoutCredential(t *testing.T) {
	t.Parallel()

	disabled := &fakeSource{name: "federal", level: domain.LevelFederal, enabled: false}
	active := &fakeSource{name: "state", level: domain.LevelState, enabled: true}

	var events []domain.Event
	store := &fakeStore{}
	agg := newTestAggregator(store, func(e domain.Event) { events = append(events, e) }, disabled, active)

	_, err := agg.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if disabled.calls != 0 {
		t.Fatal("disabled source must not be fetched")
	}
	if active.calls != 1 {
		t.Fatal("run must continue past a disabled source")
	}
	if len(events) != 1 || events[0].Kind != domain.EventSourceSkipped || events[0].Source != "federal" {
		t.Fatalf("expected one source-skipped event, got %+v", events)
	}
}

func TestRunContinuesAfterFetchFailure(t *testing.T) {
	t.Parallel()

	failing := &fakeSource{name: "federal", level: domain.LevelFederal, enabled: true, err: errors.New("timeout")}
	healthy := &fakeSource{
		name:    "state",
		level:   domain.LevelState,
		enabled: true,
		items:   []map[string]any{{"result": map[string]any{"basePrintNo": "S1", "session": float64(2026)}}},
	}

	var events []domain.Event
	store := &fakeStore{}
	agg := newTestAggregator(store, func(e domain.Event) { events = append(events, e) }, failing, healthy)

	summary, err := agg.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("fetch failure must not abort the run: %v", err)
	}

	if len(store.batches) != 1 || store.batches[0].level != domain.LevelState {
		t.Fatalf("healthy source was not stored: %+v", store.batches)
	}
	if len(events) != 1 || events[0].Kind != domain.EventFetchFailed || events[0].Err == nil {
		t.Fatalf("expected one fetch-failed event, got %+v", events)
	}
	if summary.Results[0].Stored {
		t.Fatal("failed source must report nothing stored")
	}
}

func TestRunStoreFailureIsFatal(t *testing.T) {
	t.Parallel()

	src := &fakeSource{name: "federal", level: domain.LevelFederal, enabled: true}
	store := &fakeStore{upsertErr: errors.New("disk full")}
	agg := newTestAggregator(store, nil, src)

	_, err := agg.Run(context.Background(), RunOptions{})
	if err == nil {
		t.Fatal("expected store failure to propagate")
	}
}

func TestRunSelectsSubset(t *testing.T) {
	t.Parallel()

	federal := &fakeSource{name: "federal", level: domain.LevelFederal, enabled: true}
	state := &fakeSource{name: "state", level: domain.LevelState, enabled: true}

	store := &fakeStore{}
	agg := newTestAggregator(store, nil, federal, state)

	_, err := agg.Run(context.Background(), RunOptions{Sources: []string{"state"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if federal.calls != 0 || state.calls != 1 {
		t.Fatalf("subset selection fetched the wrong sources: federal=%d state=%d", federal.calls, state.calls)
	}
}

func TestRunRejectsUnknownSource(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	agg := newTestAggregator(store, nil, &fakeSource{name: "federal", level: domain.LevelFederal, enabled: true})

	_, err := agg.Run(context.Background(), RunOptions{Sources: []string{"tribal"}})
	if err == nil {
		t.Fatal("expected error for unknown source name")
	}
}
