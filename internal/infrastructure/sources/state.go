package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"RegRadar/internal/config"
	"RegRadar/internal/domain"
	"RegRadar/internal/source"
)

// StateSource fetches bill search results from the NYS Open Legislation API
// for the current session year.
type StateSource struct {
	cfg    config.SourceConfig
	client *http.Client
	now    func() time.Time
}

var _ source.Source = (*StateSource)(nil)

// NewStateSource wires an HTTP client; nil means a default 30s-timeout client.
func NewStateSource(cfg config.SourceConfig, client *http.Client) *StateSource {
	return &StateSource{cfg: cfg, client: defaultClient(client), now: time.Now}
}

// Name identifies the adapter inside the registry.
func (s *StateSource) Name() string { return "state" }

// Level is fixed per adapter; records from here are always state tier.
func (s *StateSource) Level() domain.Level { return domain.LevelState }

// Endpoint reports the URL recorded as source_url on stored records.
func (s *StateSource) Endpoint() string { return s.cfg.BaseURL }

// Enabled reports whether the API key is configured.
func (s *StateSource) Enabled() bool { return s.cfg.APIKey != "" }

// Fetch runs one bill search per keyword against the current session year.
// The search endpoint has no date filter, so DaysBack does not apply here.
func (s *StateSource) Fetch(ctx context.Context, req source.Request) ([]map[string]any, error) {
	sessionYear := s.now().Year()

	var items []map[string]any
	for _, keyword := range req.Keywords {
		searchURL := fmt.Sprintf("%s/%d/search?term=%s&limit=%d&key=%s",
			s.cfg.BaseURL,
			sessionYear,
			url.QueryEscape(keyword),
			req.PageSize,
			url.QueryEscape(s.cfg.APIKey),
		)

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		var envelope struct {
			Result struct {
				Items []map[string]any `json:"items"`
			} `json:"result"`
		}
		if err := getJSON(s.client, httpReq, &envelope); err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		items = append(items, envelope.Result.Items...)
	}

	return items, nil
}
