// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"scanalyze/internal/models"
)

// ErrNotFound is returned when a requested receipt does not exist.
var ErrNotFound = errors.New("receipt not found")

// Store defines the interface for receipt and settings storage.
// Receipts are append-only: once recorded they are never mutated, so the
// interface has no update or delete for them. The abstraction allows
// swapping backends (SQLite, in-memory) without touching the service layer.
type Store interface {
	// AddReceipt persists a new receipt. The receipt's ID and CreatedAt
	// fields are populated by the store when unset.
	AddReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt by ID. Returns ErrNotFound when it
	// does not exist.
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)

	// ListReceipts returns all receipts in recording order.
	ListReceipts(ctx context.Context) ([]models.Receipt, error)

	// GetSettings returns the stored settings, or defaults when none have
	// been saved yet.
	GetSettings(ctx context.Context) (models.Settings, error)

	// SaveSettings replaces the stored settings.
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Close releases any resources held by the store.
	Close() error
}
