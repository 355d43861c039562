package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"RegRadar/internal/config"
	"RegRadar/internal/domain"
	"RegRadar/internal/source"
)

// LocalSource fetches regulatory notices from a NYC Open Data (Socrata)
// resource. The app token travels in the X-App-Token header rather than the
// query string.
type LocalSource struct {
	cfg    config.SourceConfig
	client *http.Client
}

var _ source.Source = (*LocalSource)(nil)

// NewLocalSource wires an HTTP client; nil means a default 30s-timeout client.
func NewLocalSource(cfg config.SourceConfig, client *http.Client) *LocalSource {
	return &LocalSource{cfg: cfg, client: defaultClient(client)}
}

// Name identifies the adapter inside the registry.
func (l *LocalSource) Name() string { return "local" }

// Level is fixed per adapter; records from here are always local tier.
func (l *LocalSource) Level() domain.Level { return domain.LevelLocal }

// Endpoint reports the URL recorded as source_url on stored records.
func (l *LocalSource) Endpoint() string { return l.cfg.BaseURL }

// Enabled reports whether the app token is configured.
func (l *LocalSource) Enabled() bool { return l.cfg.APIKey != "" }

// Fetch runs one full-text query per keyword. Socrata returns a bare JSON
// array of rows, no envelope.
func (l *LocalSource) Fetch(ctx context.Context, req source.Request) ([]map[string]any, error) {
	fromDate := time.Now().AddDate(0, 0, -req.DaysBack).Format("2006-01-02")

	var items []map[string]any
	for _, keyword := range req.Keywords {
		pageURL, err := l.buildQueryURL(keyword, fromDate, req.PageSize)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("X-App-Token", l.cfg.APIKey)

		var rows []map[string]any
		if err := getJSON(l.client, httpReq, &rows); err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		items = append(items, rows...)
	}

	return items, nil
}

func (l *LocalSource) buildQueryURL(keyword, fromDate string, pageSize int) (string, error) {
	parsed, err := url.Parse(l.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", l.cfg.BaseURL, err)
	}

	query := parsed.Query()
	query.Set("$q", keyword)
	query.Set("$where", fmt.Sprintf("effective_date >= '%s'", fromDate))
	query.Set("$limit", strconv.Itoa(pageSize))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
