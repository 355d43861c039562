package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"RegRadar/internal/config"
	"RegRadar/internal/domain"
)

func TestGenerateParsesBrief(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(payload.Messages) != 1 || !strings.Contains(payload.Messages[0].Content, "Title: Rule X") {
			t.Errorf("prompt missing regulation title")
		}

		_, _ = w.Write([]byte(`{"content":[{"text":"` + "```json\\n" +
			`{\"business_impact\":\"Costs rise\",\"action_required\":\"Relabel\",\"penalty\":\"Fines\"}` +
			"\\n```" + `"}]}`))
	}))
	defer server.Close()

	client := NewClaudeClient(config.AnthropicConfig{
		Endpoint: server.URL,
		Model:    "claude-3-5-haiku-latest",
		APIKey:   "test-key",
	})

	brief, err := client.Generate(context.Background(), domain.Regulation{
		ID:          "FED-001-0001",
		Title:       "Rule X",
		Description: "S",
		FullText:    `{"title":"Rule X"}`,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if brief.RegulationID != "FED-001-0001" {
		t.Fatalf("unexpected regulation id: %s", brief.RegulationID)
	}
	if brief.BusinessImpact != "Costs rise" || brief.ActionRequired != "Relabel" || brief.Penalty != "Fines" {
		t.Fatalf("unexpected brief: %+v", brief)
	}
}

func TestGenerateMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewClaudeClient(config.AnthropicConfig{})
	if _, err := client.Generate(context.Background(), domain.Regulation{ID: "x"}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripFences(tc.in); got != tc.want {
			t.Fatalf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildPromptTruncatesFullText(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", briefSourceLimit*2)
	prompt := buildPrompt(domain.Regulation{Title: "T", FullText: long})
	if strings.Count(prompt, "x") != briefSourceLimit {
		t.Fatalf("full text not truncated to %d bytes", briefSourceLimit)
	}
}
