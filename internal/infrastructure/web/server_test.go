package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"RegRadar/internal/domain"
	"RegRadar/internal/infrastructure/storage"
)

type fakeRunner struct {
	calls int
	err   error
}

func (f *fakeRunner) RunAll(ctx context.Context) error {
	f.calls++
	return f.err
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeRunner) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := storage.NewSQLiteRepository(db, nil)
	ctx := context.Background()
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	federal := []domain.SourceRecord{
		{ID: "f1", Title: "Dairy labeling rule", Description: "milk", PublishedDate: "2026-01-03", FullText: "{}", SourceLastModified: "2026-01-03"},
	}
	if err := repo.UpsertBatch(ctx, domain.LevelFederal, federal, "https://fed.example"); err != nil {
		t.Fatalf("seed federal: %v", err)
	}
	state := []domain.SourceRecord{
		{ID: "s1", Title: "S1: Alcohol sales", Description: "bars", PublishedDate: "2026-01-02", FullText: "{}", SourceLastModified: "2026-01-02"},
	}
	if err := repo.UpsertBatch(ctx, domain.LevelState, state, "https://state.example"); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	runner := &fakeRunner{}
	server := httptest.NewServer(NewServer(repo, runner, 25, nil).Handler())
	t.Cleanup(server.Close)
	return server, runner
}

func fetchDocument(t *testing.T, url string) *goquery.Document {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status for %s: %s", url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func TestIndexListsRecordsNewestFirst(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	doc := fetchDocument(t, server.URL+"/")

	rows := doc.Find("table tr").FilterFunction(func(i int, s *goquery.Selection) bool {
		return s.Find("td").Length() > 0
	})
	if rows.Length() != 2 {
		t.Fatalf("expected 2 data rows, got %d", rows.Length())
	}

	firstTitle := strings.TrimSpace(rows.First().Find("a").Text())
	if firstTitle != "Dairy labeling rule" {
		t.Fatalf("expected newest record first, got %q", firstTitle)
	}
}

func TestIndexFiltersByLevel(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	doc := fetchDocument(t, server.URL+"/?level=state")

	badges := doc.Find(".badge-state")
	if badges.Length() != 1 {
		t.Fatalf("expected 1 state badge, got %d", badges.Length())
	}
	if doc.Find(".badge-federal").Length() != 0 {
		t.Fatal("federal records leaked into state filter")
	}
}

func TestIndexSearchMatchesDescription(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	doc := fetchDocument(t, server.URL+"/?q=bars")

	links := doc.Find("table a")
	if links.Length() != 1 || !strings.Contains(links.Text(), "Alcohol") {
		t.Fatalf("expected only the alcohol record, got %q", links.Text())
	}
}

func TestDetailPage(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	doc := fetchDocument(t, server.URL+"/record/f1")

	if h2 := strings.TrimSpace(doc.Find("h2").Text()); h2 != "Dairy labeling rule" {
		t.Fatalf("unexpected heading: %q", h2)
	}
	if !strings.Contains(doc.Find("table").Text(), "https://fed.example") {
		t.Fatal("detail page missing source url")
	}
}

func TestDetailUnknownRecordIs404(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/record/absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %s", resp.Status)
	}
}

func TestFetchTriggersAggregation(t *testing.T) {
	t.Parallel()

	server, runner := newTestServer(t)

	resp, err := http.Post(server.URL+"/fetch", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	if runner.calls != 1 {
		t.Fatalf("expected one aggregation run, got %d", runner.calls)
	}
	// The client follows the redirect back to the index.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected final status: %s", resp.Status)
	}
}
