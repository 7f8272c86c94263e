package memory

import (
	"context"
	"testing"

	"scanalyze/internal/currency"
	"scanalyze/internal/insights"
)

func TestWriteTaxReport(t *testing.T) {
	s := New()
	report := insights.TaxReport{
		Currency:     "USD",
		TotalGstPaid: currency.Amount{Minor: 150},
		Receipts: []insights.TaxReceipt{
			{ReceiptID: "r1", GstNumber: "GST-1", GstAmount: currency.Amount{Minor: 150}},
		},
	}

	ref, err := s.WriteTaxReport(context.Background(), report)
	if err != nil {
		t.Fatalf("WriteTaxReport: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}

	got := s.Reports()
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1", len(got))
	}
	if got[0].TotalGstPaid.Minor != 150 {
		t.Errorf("total gst = %d, want 150", got[0].TotalGstPaid.Minor)
	}

	if ref, _ = s.WriteTaxReport(context.Background(), report); ref != "mem:2" {
		t.Errorf("second ref = %q, want mem:2", ref)
	}
}
