package service

import (
	"context"
	"errors"
	"fmt"

	"scanalyze/internal/currency"
	"scanalyze/internal/export"
	"scanalyze/internal/gateway"
	"scanalyze/internal/insights"
	"scanalyze/internal/models"
	"scanalyze/internal/storage"
)

// ErrExportDisabled is returned when no tax report destination is configured.
var ErrExportDisabled = errors.New("tax report export not configured")

// InsightsService answers dashboard queries over recorded receipts and
// bridges to the AI flow service for analysis and chat.
type InsightsService struct {
	store    storage.Store
	gw       gateway.Gateway
	exporter export.TaxReportWriter
}

// NewInsightsService creates an InsightsService. exporter may be nil when no
// export destination is configured.
func NewInsightsService(store storage.Store, gw gateway.Gateway, exporter export.TaxReportWriter) *InsightsService {
	return &InsightsService{store: store, gw: gw, exporter: exporter}
}

// Summary aggregates spending per currency and category.
func (s *InsightsService) Summary(ctx context.Context) ([]insights.Summary, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}
	return insights.Summarize(receipts), nil
}

// LimitReport compares spending in the limit currency against the monthly
// limit from settings.
func (s *InsightsService) LimitReport(ctx context.Context) (insights.LimitReport, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return insights.LimitReport{}, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return insights.LimitReport{}, err
	}
	return insights.CheckLimit(receipts, settings), nil
}

// TaxReport sums GST over receipts in the given currency. An empty code
// defaults to the settings limit currency.
func (s *InsightsService) TaxReport(ctx context.Context, code string) (insights.TaxReport, error) {
	if code == "" {
		settings, err := s.store.GetSettings(ctx)
		if err != nil {
			return insights.TaxReport{}, err
		}
		code = settings.LimitCurrency
	}
	if !currency.Valid(code) {
		return insights.TaxReport{}, fmt.Errorf("%w: %s", currency.ErrUnknownCurrency, code)
	}
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return insights.TaxReport{}, err
	}
	return insights.BuildTaxReport(receipts, code), nil
}

// ExportTaxReport writes the tax report for the given currency to the
// configured destination and returns a reference to where it landed.
func (s *InsightsService) ExportTaxReport(ctx context.Context, code string) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	report, err := s.TaxReport(ctx, code)
	if err != nil {
		return "", err
	}
	ref, err := s.exporter.WriteTaxReport(ctx, report)
	if err != nil {
		return "", fmt.Errorf("export tax report: %w", err)
	}
	return ref, nil
}

// Inventory returns per-item purchase statistics over inventory receipts.
func (s *InsightsService) Inventory(ctx context.Context) ([]insights.InventoryStat, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}
	return insights.InventoryStats(receipts), nil
}

// Analyze asks the flow service for a dashboard analysis of all receipts.
func (s *InsightsService) Analyze(ctx context.Context) (gateway.AnalyzeResponse, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return gateway.AnalyzeResponse{}, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return gateway.AnalyzeResponse{}, err
	}

	req := gateway.AnalyzeRequest{Currency: settings.LimitCurrency}
	if req.Receipts, err = summarizeForFlow(receipts); err != nil {
		return gateway.AnalyzeResponse{}, err
	}
	if !settings.MonthlyLimit.IsZero() {
		limit, err := currency.Format(settings.MonthlyLimit, settings.LimitCurrency)
		if err != nil {
			return gateway.AnalyzeResponse{}, err
		}
		req.MonthlyLimit = limit
	}
	return s.gw.AnalyzeExpenses(ctx, req)
}

// Chat forwards a question about the user's receipts to the flow service.
func (s *InsightsService) Chat(ctx context.Context, question string) (gateway.ChatResponse, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return gateway.ChatResponse{}, err
	}
	req := gateway.ChatRequest{Question: question}
	if req.Receipts, err = summarizeForFlow(receipts); err != nil {
		return gateway.ChatResponse{}, err
	}
	return s.gw.Chat(ctx, req)
}

// summarizeForFlow converts receipts to the wire shape the flow service
// expects, with amounts as decimal strings.
func summarizeForFlow(receipts []models.Receipt) ([]gateway.ReceiptSummary, error) {
	summaries := make([]gateway.ReceiptSummary, 0, len(receipts))
	for _, r := range receipts {
		total, err := currency.Format(r.Amount, r.Currency)
		if err != nil {
			return nil, fmt.Errorf("receipt %s: %w", r.ID, err)
		}
		summary := gateway.ReceiptSummary{
			ReceiptID: r.ID,
			Category:  string(r.Category),
			Total:     total,
			Currency:  r.Currency,
			Date:      r.CreatedAt,
		}
		for _, item := range r.Items {
			summary.Items = append(summary.Items, item.Name)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
