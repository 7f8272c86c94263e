package server

import (
	"fmt"

	"scanalyze/internal/currency"
	"scanalyze/internal/models"
	"scanalyze/internal/split"
)

// Receipts cross the API with amounts as decimal strings ("12.34"); minor
// units never leak to clients. Aggregate endpoints (insights) return minor
// units instead, documented on their handlers.

type itemRequest struct {
	Name  string `json:"name" binding:"required"`
	Price string `json:"price" binding:"required"`
	// Quantity zero is a valid line (free or unextracted count), so no
	// required binding; negatives are rejected in toModel.
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

type gstBreakdownRequest struct {
	TaxType string `json:"tax_type"`
	Amount  string `json:"amount" binding:"required"`
}

type gstInfoRequest struct {
	GstNumber string                `json:"gst_number" binding:"required"`
	GstAmount string                `json:"gst_amount" binding:"required"`
	Breakdown []gstBreakdownRequest `json:"breakdown,omitempty"`
}

type receiptRequest struct {
	Category string          `json:"category" binding:"required"`
	Amount   string          `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required"`
	Items    []itemRequest   `json:"items,omitempty"`
	GstInfo  *gstInfoRequest `json:"gst_info,omitempty"`
}

func (r receiptRequest) toModel() (models.Receipt, error) {
	amount, err := currency.ParseDecimal(r.Amount, r.Currency)
	if err != nil {
		return models.Receipt{}, fmt.Errorf("amount: %w", err)
	}
	receipt := models.Receipt{
		Category: models.Category(r.Category),
		Amount:   amount,
		Currency: r.Currency,
	}
	for _, item := range r.Items {
		if item.Quantity < 0 {
			return models.Receipt{}, fmt.Errorf("item %q: %w", item.Name, models.ErrNegativeQty)
		}
		price, err := currency.ParseDecimal(item.Price, r.Currency)
		if err != nil {
			return models.Receipt{}, fmt.Errorf("item %q price: %w", item.Name, err)
		}
		receipt.Items = append(receipt.Items, models.ExpenseItem{
			Name:       item.Name,
			UnitPrice:  price,
			Quantity:   item.Quantity,
			ExpiryDate: item.ExpiryDate,
		})
	}
	if r.GstInfo != nil {
		gstAmount, err := currency.ParseDecimal(r.GstInfo.GstAmount, r.Currency)
		if err != nil {
			return models.Receipt{}, fmt.Errorf("gst amount: %w", err)
		}
		info := &models.GstInfo{GstNumber: r.GstInfo.GstNumber, GstAmount: gstAmount}
		for _, b := range r.GstInfo.Breakdown {
			amount, err := currency.ParseDecimal(b.Amount, r.Currency)
			if err != nil {
				return models.Receipt{}, fmt.Errorf("gst breakdown %q: %w", b.TaxType, err)
			}
			info.Breakdown = append(info.Breakdown, models.GstBreakdownItem{TaxType: b.TaxType, Amount: amount})
		}
		receipt.GstInfo = info
	}
	return receipt, nil
}

type itemResponse struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

type gstBreakdownResponse struct {
	TaxType string `json:"tax_type"`
	Amount  string `json:"amount"`
}

type gstInfoResponse struct {
	GstNumber string                 `json:"gst_number"`
	GstAmount string                 `json:"gst_amount"`
	Breakdown []gstBreakdownResponse `json:"breakdown,omitempty"`
}

type receiptResponse struct {
	ID        string           `json:"id"`
	Category  string           `json:"category"`
	Amount    string           `json:"amount"`
	Currency  string           `json:"currency"`
	Items     []itemResponse   `json:"items,omitempty"`
	GstInfo   *gstInfoResponse `json:"gst_info,omitempty"`
	CreatedAt int64            `json:"created_at"`
}

func toReceiptResponse(r models.Receipt) (receiptResponse, error) {
	amount, err := currency.Format(r.Amount, r.Currency)
	if err != nil {
		return receiptResponse{}, err
	}
	resp := receiptResponse{
		ID:        r.ID,
		Category:  string(r.Category),
		Amount:    amount,
		Currency:  r.Currency,
		CreatedAt: r.CreatedAt,
	}
	for _, item := range r.Items {
		price, err := currency.Format(item.UnitPrice, r.Currency)
		if err != nil {
			return receiptResponse{}, err
		}
		resp.Items = append(resp.Items, itemResponse{
			Name:       item.Name,
			Price:      price,
			Quantity:   item.Quantity,
			ExpiryDate: item.ExpiryDate,
		})
	}
	if r.GstInfo != nil {
		gstAmount, err := currency.Format(r.GstInfo.GstAmount, r.Currency)
		if err != nil {
			return receiptResponse{}, err
		}
		info := &gstInfoResponse{GstNumber: r.GstInfo.GstNumber, GstAmount: gstAmount}
		for _, b := range r.GstInfo.Breakdown {
			amount, err := currency.Format(b.Amount, r.Currency)
			if err != nil {
				return receiptResponse{}, err
			}
			info.Breakdown = append(info.Breakdown, gstBreakdownResponse{TaxType: b.TaxType, Amount: amount})
		}
		resp.GstInfo = info
	}
	return resp, nil
}

type settingsRequest struct {
	MonthlyLimit  string `json:"monthly_limit" binding:"required"`
	LimitCurrency string `json:"limit_currency" binding:"required"`
	UsageType     string `json:"usage_type" binding:"required"`
}

type settingsResponse struct {
	MonthlyLimit  string `json:"monthly_limit"`
	LimitCurrency string `json:"limit_currency"`
	UsageType     string `json:"usage_type"`
}

func toSettingsResponse(s models.Settings) (settingsResponse, error) {
	limit, err := currency.Format(s.MonthlyLimit, s.LimitCurrency)
	if err != nil {
		return settingsResponse{}, err
	}
	return settingsResponse{
		MonthlyLimit:  limit,
		LimitCurrency: s.LimitCurrency,
		UsageType:     string(s.UsageType),
	}, nil
}

// parseLimit accepts a decimal monthly limit in the given currency.
func parseLimit(limit, code string) (currency.Amount, error) {
	amount, err := currency.ParseDecimal(limit, code)
	if err != nil {
		return currency.Amount{}, fmt.Errorf("monthly limit: %w", err)
	}
	return amount, nil
}

type shareResponse struct {
	Participant string `json:"participant"`
	AmountOwed  string `json:"amount_owed"`
}

type splitResultResponse struct {
	Currency string          `json:"currency"`
	Shares   []shareResponse `json:"shares"`
	Total    string          `json:"total"`
}

func toSplitResultResponse(r split.Result) (splitResultResponse, error) {
	total, err := currency.Format(r.Total(), r.Currency)
	if err != nil {
		return splitResultResponse{}, err
	}
	resp := splitResultResponse{Currency: r.Currency, Total: total}
	for _, s := range r.Shares {
		owed, err := currency.Format(s.AmountOwed, r.Currency)
		if err != nil {
			return splitResultResponse{}, err
		}
		resp.Shares = append(resp.Shares, shareResponse{Participant: s.Participant, AmountOwed: owed})
	}
	return resp, nil
}
