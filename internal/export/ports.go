// Package export writes tax reports to external destinations.
package export

import (
	"context"

	"scanalyze/internal/insights"
)

// TaxReportWriter is the outbound port for tax report export. Implementations
// return a reference identifying where the report landed (sheet range, memory
// slot).
type TaxReportWriter interface {
	WriteTaxReport(ctx context.Context, report insights.TaxReport) (ref string, err error)
}
