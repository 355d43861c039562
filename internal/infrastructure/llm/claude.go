package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"RegRadar/internal/config"
	"RegRadar/internal/domain"
	"RegRadar/internal/ports"
)

// briefSourceLimit bounds how much stored full text travels in the prompt.
const briefSourceLimit = 3000

// ClaudeClient implements ports.BriefGenerator backed by the Anthropic
// Messages API.
type ClaudeClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.BriefGenerator = (*ClaudeClient)(nil)

// NewClaudeClient builds a client from configuration.
func NewClaudeClient(cfg config.AnthropicConfig) *ClaudeClient {
	return &ClaudeClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Generate asks the model for a compliance brief and parses its JSON reply.
func (c *ClaudeClient) Generate(ctx context.Context, reg domain.Regulation) (domain.Brief, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return domain.Brief{}, fmt.Errorf("claude client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":      c.model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(reg)},
		},
	})
	if err != nil {
		return domain.Brief{}, fmt.Errorf("marshal claude payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Brief{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Brief{}, fmt.Errorf("generate brief: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Brief{}, fmt.Errorf("claude error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var reply struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return domain.Brief{}, fmt.Errorf("decode claude response: %w", err)
	}
	if len(reply.Content) == 0 {
		return domain.Brief{}, fmt.Errorf("claude response has no content")
	}

	var parsed struct {
		BusinessImpact string `json:"business_impact"`
		ActionRequired string `json:"action_required"`
		Penalty        string `json:"penalty"`
	}
	text := stripFences(reply.Content[0].Text)
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return domain.Brief{}, fmt.Errorf("parse brief json: %w", err)
	}

	return domain.Brief{
		RegulationID:   reg.ID,
		BusinessImpact: parsed.BusinessImpact,
		ActionRequired: parsed.ActionRequired,
		Penalty:        parsed.Penalty,
	}, nil
}

func buildPrompt(reg domain.Regulation) string {
	fullText := reg.FullText
	if len(fullText) > briefSourceLimit {
		fullText = fullText[:briefSourceLimit]
	}

	return "You are a regulatory compliance analyst for the food & beverage industry.\n" +
		"Analyze this regulation and respond in JSON with exactly three fields:\n" +
		"- business_impact: 1-2 sentences on what this means for a food & bev business owner\n" +
		"- action_required: Specific steps the business owner needs to take\n" +
		"- penalty: What happens if they don't comply (fines, license revocation, etc.), " +
		"or \"Not specified\" if unclear\n\n" +
		fmt.Sprintf("Title: %s\n", reg.Title) +
		fmt.Sprintf("Description: %s\n", reg.Description) +
		fmt.Sprintf("Full text: %s\n", fullText)
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if _, rest, ok := strings.Cut(text, "\n"); ok {
		text = rest
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
