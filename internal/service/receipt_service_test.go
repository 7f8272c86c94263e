package service

import (
	"context"
	"errors"
	"testing"

	"scanalyze/internal/currency"
	"scanalyze/internal/events"
	"scanalyze/internal/models"
	"scanalyze/internal/storage"
)

func testReceipt(amount int64) models.Receipt {
	return models.Receipt{
		Category: models.CategoryGrocery,
		Amount:   currency.Amount{Minor: amount},
		Currency: "USD",
		Items: []models.ExpenseItem{
			{Name: "Milk", UnitPrice: currency.Amount{Minor: amount}, Quantity: 1},
		},
	}
}

func TestReceiptServiceRecord(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewReceiptService(store, events.NoopPublisher{})
	ctx := context.Background()

	recorded, err := svc.Record(ctx, testReceipt(500))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if recorded.ID == "" {
		t.Error("expected generated receipt ID")
	}
	if recorded.CreatedAt == 0 {
		t.Error("expected generated timestamp")
	}

	got, err := svc.Get(ctx, recorded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Amount.Minor != 500 {
		t.Errorf("amount = %d, want 500", got.Amount.Minor)
	}
}

func TestReceiptServiceRecordInvalid(t *testing.T) {
	svc := NewReceiptService(storage.NewMemoryStore(), events.NoopPublisher{})

	r := testReceipt(500)
	r.Currency = "XQZ"
	if _, err := svc.Record(context.Background(), r); !errors.Is(err, currency.ErrUnknownCurrency) {
		t.Errorf("Record with bad currency = %v, want ErrUnknownCurrency", err)
	}

	r = testReceipt(500)
	r.Category = "snacks"
	if _, err := svc.Record(context.Background(), r); !errors.Is(err, models.ErrInvalidCategory) {
		t.Errorf("Record with bad category = %v, want ErrInvalidCategory", err)
	}
}

func TestReceiptServiceGetMissing(t *testing.T) {
	svc := NewReceiptService(storage.NewMemoryStore(), events.NoopPublisher{})
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestReceiptServiceSettings(t *testing.T) {
	svc := NewReceiptService(storage.NewMemoryStore(), events.NoopPublisher{})
	ctx := context.Background()

	settings, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings.MonthlyLimit.Minor != 100000 {
		t.Errorf("default limit = %d, want 100000", settings.MonthlyLimit.Minor)
	}

	settings.MonthlyLimit = currency.Amount{Minor: 250000}
	settings.UsageType = models.UsageBusiness
	if _, err := svc.UpdateSettings(ctx, settings); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	got, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings after update: %v", err)
	}
	if got.MonthlyLimit.Minor != 250000 || got.UsageType != models.UsageBusiness {
		t.Errorf("settings = %+v, want updated limit and usage", got)
	}

	settings.UsageType = "corporate"
	if _, err := svc.UpdateSettings(ctx, settings); err == nil {
		t.Error("expected error for invalid usage type")
	}
}
