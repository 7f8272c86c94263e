package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPGatewayAnalyzeExpenses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flows/analyze-expenses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}

		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Receipts) != 1 || req.Receipts[0].Total != "12.34" {
			t.Errorf("unexpected request %+v", req)
		}

		json.NewEncoder(w).Encode(AnalyzeResponse{
			Summary:  "spending looks stable",
			Insights: []string{"groceries dominate"},
		})
	}))
	defer srv.Close()

	g, err := NewHTTPGateway(srv.URL, "secret")
	if err != nil {
		t.Fatalf("NewHTTPGateway failed: %v", err)
	}

	resp, err := g.AnalyzeExpenses(context.Background(), AnalyzeRequest{
		Receipts: []ReceiptSummary{{ReceiptID: "r1", Category: "grocery", Total: "12.34", Currency: "USD"}},
	})
	if err != nil {
		t.Fatalf("AnalyzeExpenses failed: %v", err)
	}
	if resp.Summary != "spending looks stable" {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.Insights) != 1 {
		t.Errorf("insights = %v", resp.Insights)
	}
}

func TestHTTPGatewayChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatResponse{Answer: "you spent 12.34 on milk"})
	}))
	defer srv.Close()

	g, _ := NewHTTPGateway(srv.URL, "")
	resp, err := g.Chat(context.Background(), ChatRequest{Question: "how much milk?"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Answer == "" {
		t.Error("expected a non-empty answer")
	}
}

func TestHTTPGatewayChatRejectsEmptyQuestion(t *testing.T) {
	g, _ := NewHTTPGateway("http://localhost:0", "")
	if _, err := g.Chat(context.Background(), ChatRequest{Question: "  "}); err == nil {
		t.Error("expected error for empty question")
	}
}

func TestHTTPGatewayServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g, _ := NewHTTPGateway(srv.URL, "")
	if _, err := g.AnalyzeExpenses(context.Background(), AnalyzeRequest{}); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestNewHTTPGatewayRequiresURL(t *testing.T) {
	if _, err := NewHTTPGateway("   ", ""); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestNoopGateway(t *testing.T) {
	var g Gateway = Noop{}
	if _, err := g.AnalyzeExpenses(context.Background(), AnalyzeRequest{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if _, err := g.Chat(context.Background(), ChatRequest{Question: "hi"}); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}
