package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var _ Gateway = (*HTTPGateway)(nil)

// HTTPGateway talks to the flow service over plain JSON POSTs.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway for the flow service at baseURL.
// apiKey may be empty when the service does not require one.
func NewHTTPGateway(baseURL, apiKey string) (*HTTPGateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("flow service URL required")
	}
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// AnalyzeExpenses runs the expense analysis flow.
func (g *HTTPGateway) AnalyzeExpenses(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := g.post(ctx, "/flows/analyze-expenses", req, &resp); err != nil {
		return AnalyzeResponse{}, err
	}
	return resp, nil
}

// Chat runs the receipt chat flow.
func (g *HTTPGateway) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return ChatResponse{}, errors.New("empty question")
	}
	var resp ChatResponse
	if err := g.post(ctx, "/flows/chat", req, &resp); err != nil {
		return ChatResponse{}, err
	}
	return resp, nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal flow request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build flow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("call flow service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read flow response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("flow service returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode flow response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
