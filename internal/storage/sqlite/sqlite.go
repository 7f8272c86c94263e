// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"scanalyze/internal/currency"
	"scanalyze/internal/models"
	"scanalyze/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddReceipt persists a new receipt with its items and GST breakdown.
func (s *SQLiteStore) AddReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var gstNumber sql.NullString
	var gstAmount sql.NullInt64
	if receipt.GstInfo != nil {
		gstNumber = sql.NullString{String: receipt.GstInfo.GstNumber, Valid: true}
		gstAmount = sql.NullInt64{Int64: receipt.GstInfo.GstAmount.Minor, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO receipts (id, category, amount, currency, gst_number, gst_amount, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		receipt.ID, string(receipt.Category), receipt.Amount.Minor, receipt.Currency,
		gstNumber, gstAmount, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	// Position preserves receipt line order.
	for i, item := range receipt.Items {
		var expiry sql.NullString
		if item.ExpiryDate != "" {
			expiry = sql.NullString{String: item.ExpiryDate, Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO receipt_items (receipt_id, position, name, unit_price, quantity, expiry_date) VALUES (?, ?, ?, ?, ?, ?)",
			receipt.ID, i, item.Name, item.UnitPrice.Minor, item.Quantity, expiry,
		)
		if err != nil {
			return fmt.Errorf("failed to insert receipt item: %w", err)
		}
	}

	if receipt.GstInfo != nil {
		for i, b := range receipt.GstInfo.Breakdown {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO gst_breakdown (receipt_id, position, tax_type, amount) VALUES (?, ?, ?, ?)",
				receipt.ID, i, b.TaxType, b.Amount.Minor,
			)
			if err != nil {
				return fmt.Errorf("failed to insert gst breakdown: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipt retrieves a receipt by ID, including items and GST breakdown.
func (s *SQLiteStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	receipt, err := s.scanReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// ListReceipts returns all receipts in recording order.
func (s *SQLiteStore) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM receipts ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan receipt id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	receipts := make([]models.Receipt, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetReceipt(ctx, id)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *r)
	}
	return receipts, nil
}

// GetSettings returns stored settings, or defaults when none exist yet.
func (s *SQLiteStore) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRowContext(ctx,
		"SELECT monthly_limit, limit_currency, usage_type FROM settings WHERE id = 1",
	).Scan(&settings.MonthlyLimit.Minor, &settings.LimitCurrency, &settings.UsageType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SaveSettings upserts the single settings row.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, monthly_limit, limit_currency, usage_type) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET monthly_limit = excluded.monthly_limit,
		 limit_currency = excluded.limit_currency, usage_type = excluded.usage_type`,
		settings.MonthlyLimit.Minor, settings.LimitCurrency, string(settings.UsageType),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scanReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var category string
	var gstNumber sql.NullString
	var gstAmount sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		"SELECT id, category, amount, currency, gst_number, gst_amount, created_at FROM receipts WHERE id = ?",
		id,
	).Scan(&receipt.ID, &category, &receipt.Amount.Minor, &receipt.Currency,
		&gstNumber, &gstAmount, &receipt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	receipt.Category = models.Category(category)

	if gstNumber.Valid {
		receipt.GstInfo = &models.GstInfo{
			GstNumber: gstNumber.String,
			GstAmount: currency.Amount{Minor: gstAmount.Int64},
		}
	}
	return receipt, nil
}

func (s *SQLiteStore) loadItems(ctx context.Context, receipt *models.Receipt) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, unit_price, quantity, expiry_date FROM receipt_items WHERE receipt_id = ? ORDER BY position",
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get receipt items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ExpenseItem
		var expiry sql.NullString
		if err := rows.Scan(&item.Name, &item.UnitPrice.Minor, &item.Quantity, &expiry); err != nil {
			return fmt.Errorf("failed to scan receipt item: %w", err)
		}
		item.ExpiryDate = expiry.String
		receipt.Items = append(receipt.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate receipt items: %w", err)
	}

	if receipt.GstInfo == nil {
		return nil
	}

	bRows, err := s.db.QueryContext(ctx,
		"SELECT tax_type, amount FROM gst_breakdown WHERE receipt_id = ? ORDER BY position",
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get gst breakdown: %w", err)
	}
	defer bRows.Close()

	for bRows.Next() {
		var b models.GstBreakdownItem
		if err := bRows.Scan(&b.TaxType, &b.Amount.Minor); err != nil {
			return fmt.Errorf("failed to scan gst breakdown: %w", err)
		}
		receipt.GstInfo.Breakdown = append(receipt.GstInfo.Breakdown, b)
	}
	if err := bRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate gst breakdown: %w", err)
	}
	return nil
}
