package insights

import (
	"testing"

	"scanalyze/internal/currency"
	"scanalyze/internal/models"
)

func receipt(id string, cat models.Category, code string, minor int64) models.Receipt {
	return models.Receipt{
		ID:       id,
		Category: cat,
		Currency: code,
		Amount:   currency.Amount{Minor: minor},
	}
}

func TestSummarize(t *testing.T) {
	receipts := []models.Receipt{
		receipt("a", models.CategoryGrocery, "USD", 1000),
		receipt("b", models.CategoryDining, "USD", 3000),
		receipt("c", models.CategoryGrocery, "USD", 500),
		receipt("d", models.CategoryTravel, "EUR", 2000),
	}

	summaries := Summarize(receipts)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 currency groups, got %d", len(summaries))
	}

	usd := summaries[0]
	if usd.Currency != "USD" {
		t.Fatalf("first group currency = %s, want USD (first appearance order)", usd.Currency)
	}
	if usd.Total.Minor != 4500 {
		t.Errorf("USD total = %d, want 4500", usd.Total.Minor)
	}
	if usd.Receipts != 3 {
		t.Errorf("USD receipt count = %d, want 3", usd.Receipts)
	}
	// Largest category first.
	if usd.ByCategory[0].Category != models.CategoryDining || usd.ByCategory[0].Total.Minor != 3000 {
		t.Errorf("top USD category = %+v, want dining at 3000", usd.ByCategory[0])
	}
	if usd.ByCategory[1].Category != models.CategoryGrocery || usd.ByCategory[1].Receipts != 2 {
		t.Errorf("second USD category = %+v, want grocery over 2 receipts", usd.ByCategory[1])
	}

	eur := summaries[1]
	if eur.Currency != "EUR" || eur.Total.Minor != 2000 {
		t.Errorf("EUR group = %+v, want total 2000", eur)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("expected no summaries for no receipts, got %d", len(got))
	}
}

func TestCheckLimit(t *testing.T) {
	settings := func(limitMinor int64) models.Settings {
		return models.Settings{
			MonthlyLimit:  currency.Amount{Minor: limitMinor},
			LimitCurrency: "USD",
			UsageType:     models.UsagePersonal,
		}
	}

	tests := []struct {
		name       string
		spentMinor int64
		limitMinor int64
		want       LimitStatus
	}{
		{name: "exceeded", spentMinor: 110000, limitMinor: 100000, want: StatusExceeded},
		{name: "exactly at limit approaches", spentMinor: 100000, limitMinor: 100000, want: StatusApproaching},
		{name: "within ten percent", spentMinor: 95000, limitMinor: 100000, want: StatusApproaching},
		{name: "boundary ninety percent", spentMinor: 90000, limitMinor: 100000, want: StatusApproaching},
		{name: "well below", spentMinor: 40000, limitMinor: 100000, want: StatusWellBelow},
		{name: "boundary half", spentMinor: 50000, limitMinor: 100000, want: StatusWellBelow},
		{name: "on track", spentMinor: 70000, limitMinor: 100000, want: StatusOnTrack},
		{name: "no limit configured", spentMinor: 70000, limitMinor: 0, want: StatusNoLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipts := []models.Receipt{
				receipt("a", models.CategoryGrocery, "USD", tt.spentMinor),
			}
			report := CheckLimit(receipts, settings(tt.limitMinor))
			if report.Status != tt.want {
				t.Errorf("status = %s, want %s (spent %d, limit %d)", report.Status, tt.want, tt.spentMinor, tt.limitMinor)
			}
			if tt.want == StatusExceeded {
				if report.ExceededBy.Minor != tt.spentMinor-tt.limitMinor {
					t.Errorf("exceeded by = %d, want %d", report.ExceededBy.Minor, tt.spentMinor-tt.limitMinor)
				}
			}
		})
	}
}

func TestCheckLimitIgnoresOtherCurrencies(t *testing.T) {
	receipts := []models.Receipt{
		receipt("a", models.CategoryGrocery, "USD", 30000),
		receipt("b", models.CategoryTravel, "EUR", 500000),
	}
	report := CheckLimit(receipts, models.Settings{
		MonthlyLimit:  currency.Amount{Minor: 100000},
		LimitCurrency: "USD",
		UsageType:     models.UsagePersonal,
	})
	if report.Spent.Minor != 30000 {
		t.Errorf("spent = %d, want 30000 (EUR receipt must be ignored)", report.Spent.Minor)
	}
}

func TestBuildTaxReport(t *testing.T) {
	withGst := receipt("a", models.CategoryInventory, "INR", 10000)
	withGst.CreatedAt = 100
	withGst.GstInfo = &models.GstInfo{GstNumber: "GSTIN1", GstAmount: currency.Amount{Minor: 900}}

	alsoGst := receipt("b", models.CategoryUtilities, "INR", 5000)
	alsoGst.CreatedAt = 200
	alsoGst.GstInfo = &models.GstInfo{GstNumber: "GSTIN2", GstAmount: currency.Amount{Minor: 450}}

	noGst := receipt("c", models.CategoryGrocery, "INR", 2000)
	otherCurrency := receipt("d", models.CategoryGrocery, "USD", 2000)
	otherCurrency.GstInfo = &models.GstInfo{GstNumber: "X", GstAmount: currency.Amount{Minor: 100}}

	report := BuildTaxReport([]models.Receipt{withGst, alsoGst, noGst, otherCurrency}, "INR")

	if report.TotalGstPaid.Minor != 1350 {
		t.Errorf("total GST = %d, want 1350", report.TotalGstPaid.Minor)
	}
	if len(report.Receipts) != 2 {
		t.Fatalf("expected 2 tax receipts, got %d", len(report.Receipts))
	}
	if report.Receipts[0].GstNumber != "GSTIN1" || report.Receipts[1].GstNumber != "GSTIN2" {
		t.Errorf("unexpected receipt order: %+v", report.Receipts)
	}
}

func TestInventoryStats(t *testing.T) {
	first := models.Receipt{
		ID: "a", Category: models.CategoryInventory, Currency: "USD", CreatedAt: 100,
		Items: []models.ExpenseItem{
			{Name: "Paper", UnitPrice: currency.Amount{Minor: 500}, Quantity: 10},
			{Name: "Toner", UnitPrice: currency.Amount{Minor: 8000}, Quantity: 1},
		},
	}
	second := models.Receipt{
		ID: "b", Category: models.CategoryInventory, Currency: "USD", CreatedAt: 200,
		Items: []models.ExpenseItem{
			{Name: "Paper", UnitPrice: currency.Amount{Minor: 500}, Quantity: 5},
		},
	}
	// Non-inventory receipts are excluded entirely.
	grocery := models.Receipt{
		ID: "c", Category: models.CategoryGrocery, Currency: "USD", CreatedAt: 300,
		Items: []models.ExpenseItem{
			{Name: "Paper", UnitPrice: currency.Amount{Minor: 100}, Quantity: 1},
		},
	}

	stats := InventoryStats([]models.Receipt{first, second, grocery})
	if len(stats) != 2 {
		t.Fatalf("expected 2 item stats, got %d", len(stats))
	}

	paper := stats[0]
	if paper.Item != "Paper" {
		t.Fatalf("most purchased item = %s, want Paper", paper.Item)
	}
	if paper.Purchases != 2 || paper.TotalQuantity != 15 {
		t.Errorf("paper stats = %+v, want 2 purchases of 15 units", paper)
	}
	if paper.TotalSpent.Minor != 7500 {
		t.Errorf("paper spend = %d, want 7500", paper.TotalSpent.Minor)
	}
	if paper.LastPurchased != 200 {
		t.Errorf("paper last purchased = %d, want 200", paper.LastPurchased)
	}
}
