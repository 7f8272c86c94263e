// Package memory keeps exported tax reports in process memory, for tests and
// for running without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"scanalyze/internal/export"
	"scanalyze/internal/insights"
)

type Store struct {
	mu      sync.Mutex
	reports []insights.TaxReport
}

var _ export.TaxReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// WriteTaxReport stores the report and returns a synthetic reference.
func (s *Store) WriteTaxReport(_ context.Context, report insights.TaxReport) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return fmt.Sprintf("mem:%d", len(s.reports)), nil
}

// Reports returns a copy of everything written so far.
func (s *Store) Reports() []insights.TaxReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]insights.TaxReport(nil), s.reports...)
}
