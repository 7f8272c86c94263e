// Package insights computes spending aggregates over stored receipts:
// per-category totals, monthly-limit status, GST totals for tax reports,
// and purchase frequency for inventory restocking. All of it is pure
// arithmetic over receipt data; anything requiring judgement goes through
// the flow gateway instead.
package insights

import (
	"sort"

	"scanalyze/internal/currency"
	"scanalyze/internal/models"
)

// CategoryTotal is the spend aggregated over one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    currency.Amount `json:"total"`
	Receipts int             `json:"receipts"`
}

// Summary aggregates all receipts of a single currency. Receipts of
// different currencies are never summed together.
type Summary struct {
	Currency   string          `json:"currency"`
	Total      currency.Amount `json:"total"`
	Receipts   int             `json:"receipts"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// Summarize groups receipts by currency, in order of first appearance, and
// totals them per category.
func Summarize(receipts []models.Receipt) []Summary {
	var order []string
	byCurrency := make(map[string]*Summary)

	for _, r := range receipts {
		s, ok := byCurrency[r.Currency]
		if !ok {
			s = &Summary{Currency: r.Currency}
			byCurrency[r.Currency] = s
			order = append(order, r.Currency)
		}
		s.Total = s.Total.Add(r.Amount)
		s.Receipts++

		found := false
		for i := range s.ByCategory {
			if s.ByCategory[i].Category == r.Category {
				s.ByCategory[i].Total = s.ByCategory[i].Total.Add(r.Amount)
				s.ByCategory[i].Receipts++
				found = true
				break
			}
		}
		if !found {
			s.ByCategory = append(s.ByCategory, CategoryTotal{
				Category: r.Category,
				Total:    r.Amount,
				Receipts: 1,
			})
		}
	}

	out := make([]Summary, 0, len(order))
	for _, code := range order {
		s := byCurrency[code]
		// Largest category first for dashboard display.
		sort.SliceStable(s.ByCategory, func(i, j int) bool {
			return s.ByCategory[i].Total.Minor > s.ByCategory[j].Total.Minor
		})
		out = append(out, *s)
	}
	return out
}

// LimitStatus classifies spending against the monthly limit.
type LimitStatus string

const (
	// StatusNoLimit means no limit is configured.
	StatusNoLimit LimitStatus = "no_limit"
	// StatusExceeded means spending is over the limit.
	StatusExceeded LimitStatus = "exceeded"
	// StatusApproaching means spending is within 10% of the limit.
	StatusApproaching LimitStatus = "approaching"
	// StatusWellBelow means spending is at most half the limit.
	StatusWellBelow LimitStatus = "well_below"
	// StatusOnTrack covers everything in between.
	StatusOnTrack LimitStatus = "on_track"
)

// LimitReport relates total spending to the configured monthly limit.
type LimitReport struct {
	Currency   string          `json:"currency"`
	Limit      currency.Amount `json:"limit"`
	Spent      currency.Amount `json:"spent"`
	Status     LimitStatus     `json:"status"`
	ExceededBy currency.Amount `json:"exceeded_by,omitempty"`
}

// CheckLimit classifies spending in the limit's currency against the limit.
// Receipts in other currencies are ignored: comparing across currencies
// without conversion would be meaningless.
func CheckLimit(receipts []models.Receipt, settings models.Settings) LimitReport {
	report := LimitReport{
		Currency: settings.LimitCurrency,
		Limit:    settings.MonthlyLimit,
	}
	for _, r := range receipts {
		if r.Currency == settings.LimitCurrency {
			report.Spent = report.Spent.Add(r.Amount)
		}
	}

	switch {
	case settings.MonthlyLimit.IsZero():
		report.Status = StatusNoLimit
	case report.Spent.Minor > settings.MonthlyLimit.Minor:
		report.Status = StatusExceeded
		report.ExceededBy = currency.Amount{Minor: report.Spent.Minor - settings.MonthlyLimit.Minor}
	case report.Spent.Minor*10 >= settings.MonthlyLimit.Minor*9:
		// Within 10% of the limit.
		report.Status = StatusApproaching
	case report.Spent.Minor*2 <= settings.MonthlyLimit.Minor:
		report.Status = StatusWellBelow
	default:
		report.Status = StatusOnTrack
	}
	return report
}

// TaxReceipt is one GST-bearing receipt's contribution to a tax report.
type TaxReceipt struct {
	ReceiptID string          `json:"receipt_id"`
	Date      int64           `json:"date"`
	Total     currency.Amount `json:"total"`
	GstNumber string          `json:"gst_number"`
	GstAmount currency.Amount `json:"gst_amount"`
}

// TaxReport aggregates GST paid across receipts of one currency.
type TaxReport struct {
	Currency     string          `json:"currency"`
	TotalGstPaid currency.Amount `json:"total_gst_paid"`
	Receipts     []TaxReceipt    `json:"receipts"`
}

// BuildTaxReport sums GST over all receipts in the given currency that carry
// GST information. Receipts without GstInfo contribute nothing.
func BuildTaxReport(receipts []models.Receipt, code string) TaxReport {
	report := TaxReport{Currency: code}
	for _, r := range receipts {
		if r.Currency != code || r.GstInfo == nil {
			continue
		}
		report.TotalGstPaid = report.TotalGstPaid.Add(r.GstInfo.GstAmount)
		report.Receipts = append(report.Receipts, TaxReceipt{
			ReceiptID: r.ID,
			Date:      r.CreatedAt,
			Total:     r.Amount,
			GstNumber: r.GstInfo.GstNumber,
			GstAmount: r.GstInfo.GstAmount,
		})
	}
	return report
}

// InventoryStat is the purchase history of one item across inventory
// receipts, the raw input for restocking decisions.
type InventoryStat struct {
	Item          string          `json:"item"`
	Purchases     int             `json:"purchases"`
	TotalQuantity int             `json:"total_quantity"`
	TotalSpent    currency.Amount `json:"total_spent"`
	LastPurchased int64           `json:"last_purchased"`
}

// InventoryStats aggregates item purchases over receipts in the inventory
// purchasing category, most frequently purchased first.
func InventoryStats(receipts []models.Receipt) []InventoryStat {
	var order []string
	byItem := make(map[string]*InventoryStat)

	for _, r := range receipts {
		if r.Category != models.CategoryInventory {
			continue
		}
		for _, item := range r.Items {
			stat, ok := byItem[item.Name]
			if !ok {
				stat = &InventoryStat{Item: item.Name}
				byItem[item.Name] = stat
				order = append(order, item.Name)
			}
			stat.Purchases++
			stat.TotalQuantity += item.Quantity
			stat.TotalSpent = stat.TotalSpent.Add(item.UnitPrice.Mul(item.Quantity))
			if r.CreatedAt > stat.LastPurchased {
				stat.LastPurchased = r.CreatedAt
			}
		}
	}

	out := make([]InventoryStat, 0, len(order))
	for _, name := range order {
		out = append(out, *byItem[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Purchases > out[j].Purchases
	})
	return out
}
