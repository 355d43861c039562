package sources

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

func defaultClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: requestTimeout}
}

// getJSON performs the request and decodes the body into v. Non-2xx statuses
// and malformed bodies surface as errors; the caller treats either as the
// source contributing nothing this run.
func getJSON(client *http.Client, req *http.Request, v any) error {
	req.Header.Set("User-Agent", "RegRadar/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned %s", req.URL.Host, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
