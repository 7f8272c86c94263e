// Package gateway defines the boundary to the external AI flow service.
//
// The service runs the model prompts (expense analysis, chat answers); this
// repo only marshals structured requests and responses across a narrow HTTP
// contract. No prompt text lives on this side of the boundary.
package gateway

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the noop gateway when no flow service is
// configured.
var ErrDisabled = errors.New("flow gateway not configured")

// ReceiptSummary is the receipt shape sent to flows. Amounts travel as
// decimal strings so the flow service never sees minor-unit internals.
type ReceiptSummary struct {
	ReceiptID string   `json:"receipt_id"`
	Category  string   `json:"category"`
	Total     string   `json:"total"`
	Currency  string   `json:"currency"`
	Items     []string `json:"items,omitempty"`
	Date      int64    `json:"date"`
}

// AnalyzeRequest asks the flow service for a dashboard analysis.
type AnalyzeRequest struct {
	Receipts     []ReceiptSummary `json:"receipts"`
	MonthlyLimit string           `json:"monthly_limit,omitempty"`
	Currency     string           `json:"currency,omitempty"`
}

// AnalyzeResponse is the flow service's dashboard analysis.
type AnalyzeResponse struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// ChatRequest asks the flow service a question about the user's receipts.
type ChatRequest struct {
	Question string           `json:"question"`
	Receipts []ReceiptSummary `json:"receipts"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// Gateway is the call contract with the AI flow service.
type Gateway interface {
	AnalyzeExpenses(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Noop is the gateway used when no flow service is configured. Every call
// fails with ErrDisabled.
type Noop struct{}

// AnalyzeExpenses always returns ErrDisabled.
func (Noop) AnalyzeExpenses(context.Context, AnalyzeRequest) (AnalyzeResponse, error) {
	return AnalyzeResponse{}, ErrDisabled
}

// Chat always returns ErrDisabled.
func (Noop) Chat(context.Context, ChatRequest) (ChatResponse, error) {
	return ChatResponse{}, ErrDisabled
}
