// Package service holds the application services sitting between the HTTP
// layer and storage.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"scanalyze/internal/events"
	"scanalyze/internal/models"
	"scanalyze/internal/storage"
)

// ReceiptService records and reads receipts and user settings.
type ReceiptService struct {
	store  storage.Store
	events events.Publisher
}

// NewReceiptService creates a ReceiptService with the given storage backend
// and event publisher.
func NewReceiptService(store storage.Store, pub events.Publisher) *ReceiptService {
	return &ReceiptService{store: store, events: pub}
}

// Record validates and persists a receipt, then announces it on the event
// bus. Publish failures are logged but do not fail the recording; storage is
// the source of truth.
func (s *ReceiptService) Record(ctx context.Context, receipt models.Receipt) (*models.Receipt, error) {
	if err := receipt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receipt: %w", err)
	}
	if err := s.store.AddReceipt(ctx, &receipt); err != nil {
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	msg := events.NewReceiptRecordedMessage(receipt.ID, string(receipt.Category), receipt.Currency)
	if err := s.events.ReceiptRecorded(ctx, msg); err != nil {
		slog.Warn("Failed to publish receipt event", "receipt_id", receipt.ID, "error", err)
	}

	slog.Info("Recorded receipt", "receipt_id", receipt.ID, "category", receipt.Category, "currency", receipt.Currency)
	return &receipt, nil
}

// Get returns a receipt by ID.
func (s *ReceiptService) Get(ctx context.Context, id string) (*models.Receipt, error) {
	return s.store.GetReceipt(ctx, id)
}

// List returns all receipts in recording order.
func (s *ReceiptService) List(ctx context.Context) ([]models.Receipt, error) {
	return s.store.ListReceipts(ctx)
}

// Settings returns the current settings, falling back to defaults.
func (s *ReceiptService) Settings(ctx context.Context) (models.Settings, error) {
	return s.store.GetSettings(ctx)
}

// UpdateSettings validates and replaces the stored settings.
func (s *ReceiptService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if err := settings.Validate(); err != nil {
		return models.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	slog.Info("Updated settings", "monthly_limit", settings.MonthlyLimit.Minor, "currency", settings.LimitCurrency, "usage_type", settings.UsageType)
	return settings, nil
}
