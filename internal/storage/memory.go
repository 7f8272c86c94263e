package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanalyze/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store used by tests and the "memory" backend.
// Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	receipts []models.Receipt
	byID     map[string]int
	settings models.Settings
	hasSet   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

// AddReceipt appends a receipt, assigning ID and CreatedAt when unset.
func (m *MemoryStore) AddReceipt(_ context.Context, receipt *models.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	if _, exists := m.byID[receipt.ID]; exists {
		return fmt.Errorf("receipt %s already exists", receipt.ID)
	}
	m.byID[receipt.ID] = len(m.receipts)
	m.receipts = append(m.receipts, *receipt)
	return nil
}

// GetReceipt returns a copy of the stored receipt.
func (m *MemoryStore) GetReceipt(_ context.Context, id string) (*models.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r := m.receipts[idx]
	return &r, nil
}

// ListReceipts returns all receipts in recording order.
func (m *MemoryStore) ListReceipts(_ context.Context) ([]models.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Receipt, len(m.receipts))
	copy(out, m.receipts)
	return out, nil
}

// GetSettings returns stored settings or defaults.
func (m *MemoryStore) GetSettings(_ context.Context) (models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasSet {
		return models.DefaultSettings(), nil
	}
	return m.settings, nil
}

// SaveSettings replaces the stored settings.
func (m *MemoryStore) SaveSettings(_ context.Context, settings models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = settings
	m.hasSet = true
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
