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

// FederalSource fetches documents from the Regulations.gov v4 API, one
// keyword query at a time.
type FederalSource struct {
	cfg    config.SourceConfig
	client *http.Client
}

var _ source.Source = (*FederalSource)(nil)

// NewFederalSource wires an HTTP client; nil means a default 30s-timeout client.
func NewFederalSource(cfg config.SourceConfig, client *http.Client) *FederalSource {
	return &FederalSource{cfg: cfg, client: defaultClient(client)}
}

// Name identifies the adapter inside the registry.
func (f *FederalSource) Name() string { return "federal" }

// Level is fixed per adapter; records from here are always federal tier.
func (f *FederalSource) Level() domain.Level { return domain.LevelFederal }

// Endpoint reports the URL recorded as source_url on stored records.
func (f *FederalSource) Endpoint() string { return f.cfg.BaseURL }

// Enabled reports whether the API key is configured.
func (f *FederalSource) Enabled() bool { return f.cfg.APIKey != "" }

// Fetch runs one search per keyword and concatenates the raw JSON:API items.
// Duplicate hits across keywords are left in; the store's staleness check
// collapses them.
func (f *FederalSource) Fetch(ctx context.Context, req source.Request) ([]map[string]any, error) {
	fromDate := time.Now().AddDate(0, 0, -req.DaysBack).Format("2006-01-02")

	var items []map[string]any
	for _, keyword := range req.Keywords {
		pageURL, err := f.buildSearchURL(keyword, fromDate, req.PageSize)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		if err := getJSON(f.client, httpReq, &envelope); err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		items = append(items, envelope.Data...)
	}

	return items, nil
}

func (f *FederalSource) buildSearchURL(keyword, fromDate string, pageSize int) (string, error) {
	parsed, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", f.cfg.BaseURL, err)
	}

	query := parsed.Query()
	query.Set("filter[searchTerm]", keyword)
	query.Set("filter[postedDate][ge]", fromDate)
	query.Set("sort", "-postedDate")
	query.Set("page[size]", strconv.Itoa(pageSize))
	query.Set("api_key", f.cfg.APIKey)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
