package normalize

import "testing"

func TestLocalExtractsRowFields(t *testing.T) {
	t.Parallel()

	items := []map[string]any{{
		"agency":         "DOHMH",
		"rule_id":        "2026-014",
		"rule_title":     "Mobile food vending permits",
		"summary":        "Updates permit renewals",
		"effective_date": "2026-02-01",
		"updated_at":     "2026-02-05",
	}}

	records := Local(items)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ID != "nyc-DOHMH-2026-014" {
		t.Fatalf("unexpected composite id: %s", rec.ID)
	}
	if rec.Title != "Mobile food vending permits" {
		t.Fatalf("unexpected title: %s", rec.Title)
	}
	if rec.Description != "Updates permit renewals" {
		t.Fatalf("unexpected description: %s", rec.Description)
	}
	if rec.PublishedDate != "2026-02-01" {
		t.Fatalf("unexpected published date: %s", rec.PublishedDate)
	}
	if rec.SourceLastModified != "2026-02-05" {
		t.Fatalf("unexpected source last modified: %s", rec.SourceLastModified)
	}
}

func TestLocalFallbacks(t *testing.T) {
	t.Parallel()

	records := Local([]map[string]any{{
		"id":             "row-9",
		"title":          "Generic title",
		"description":    "Generic description",
		"published_date": "2026-03-01",
	}})

	rec := records[0]
	if rec.ID != "nyc--row-9" {
		t.Fatalf("expected row id fallback, got %s", rec.ID)
	}
	if rec.Title != "Generic title" || rec.Description != "Generic description" {
		t.Fatalf("expected generic field fallbacks, got %+v", rec)
	}
	if rec.SourceLastModified != "2026-03-01" {
		t.Fatalf("expected published date fallback for modified marker, got %q", rec.SourceLastModified)
	}
}

func TestLocalMinimalItem(t *testing.T) {
	t.Parallel()

	records := Local([]map[string]any{{}})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].FullText != "{}" {
		t.Fatalf("full text must always be populated, got %q", records[0].FullText)
	}
}

func TestLocalEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Local(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %d records", len(got))
	}
}

func TestForSourceRoutesEveryAdapter(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"federal", "state", "local"} {
		if _, ok := ForSource(name); !ok {
			t.Fatalf("no normalizer routed for source %s", name)
		}
	}
	if _, ok := ForSource("tribal"); ok {
		t.Fatal("unexpected normalizer for unknown source")
	}
}
