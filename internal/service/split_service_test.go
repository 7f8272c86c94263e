package service

import (
	"context"
	"errors"
	"testing"

	"scanalyze/internal/currency"
	"scanalyze/internal/events"
	"scanalyze/internal/models"
	"scanalyze/internal/split"
	"scanalyze/internal/storage"
)

// newSplitFixture records a two-line receipt and opens a session on it.
func newSplitFixture(t *testing.T) (*SplitService, string) {
	t.Helper()
	store := storage.NewMemoryStore()
	receipts := NewReceiptService(store, events.NoopPublisher{})

	recorded, err := receipts.Record(context.Background(), models.Receipt{
		Category: models.CategoryDining,
		Amount:   currency.Amount{Minor: 900},
		Currency: "USD",
		Items: []models.ExpenseItem{
			{Name: "Milk", UnitPrice: currency.Amount{Minor: 300}, Quantity: 2},
			{Name: "Bread", UnitPrice: currency.Amount{Minor: 300}, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("record receipt: %v", err)
	}

	svc := NewSplitService(store, "You")
	sid, err := svc.Open(context.Background(), recorded.ID)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return svc, sid
}

func TestSplitServiceFullFlow(t *testing.T) {
	svc, sid := newSplitFixture(t)

	pid, err := svc.AddParticipant(sid, "Alice")
	if err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	if err := svc.AssignQuantity(sid, pid, "Milk", +1); err != nil {
		t.Fatalf("AssignQuantity: %v", err)
	}

	result, err := svc.Calculate(sid)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.Total().Minor != 900 {
		t.Errorf("result total = %d, want 900", result.Total().Minor)
	}
	if len(result.Shares) != 2 {
		t.Fatalf("got %d shares, want 2", len(result.Shares))
	}

	// Editing is rejected while calculated.
	if err := svc.AssignQuantity(sid, pid, "Milk", +1); !errors.Is(err, split.ErrSessionLocked) {
		t.Errorf("assign while calculated = %v, want ErrSessionLocked", err)
	}

	if err := svc.Edit(sid); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if err := svc.AssignQuantity(sid, pid, "Bread", +1); err != nil {
		t.Fatalf("assign after edit: %v", err)
	}

	if err := svc.Close(sid); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := svc.Calculate(sid); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("calculate after close = %v, want ErrSessionNotFound", err)
	}
}

func TestSplitServiceOpenMissingReceipt(t *testing.T) {
	svc := NewSplitService(storage.NewMemoryStore(), "You")
	if _, err := svc.Open(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Open missing receipt = %v, want ErrNotFound", err)
	}
}

func TestSplitServiceUnknownSession(t *testing.T) {
	svc, _ := newSplitFixture(t)

	if _, err := svc.AddParticipant("nope", "Alice"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("AddParticipant = %v, want ErrSessionNotFound", err)
	}
	if err := svc.Close("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Close = %v, want ErrSessionNotFound", err)
	}
}

func TestSplitServiceView(t *testing.T) {
	svc, sid := newSplitFixture(t)

	pid, err := svc.AddParticipant(sid, "Alice")
	if err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	if err := svc.AssignQuantity(sid, pid, "Milk", +1); err != nil {
		t.Fatalf("AssignQuantity: %v", err)
	}

	view, err := svc.View(sid)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.State != split.StateEditing {
		t.Errorf("state = %v, want editing", view.State)
	}
	if len(view.Participants) != 2 {
		t.Errorf("got %d participants, want 2 (owner + Alice)", len(view.Participants))
	}
	if len(view.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(view.Items))
	}
	for _, item := range view.Items {
		switch item.Name {
		case "Milk":
			if item.Remaining != 1 {
				t.Errorf("Milk remaining = %d, want 1", item.Remaining)
			}
			if item.Assignments[pid] != 1 {
				t.Errorf("Milk assigned to Alice = %d, want 1", item.Assignments[pid])
			}
		case "Bread":
			if item.Remaining != 1 {
				t.Errorf("Bread remaining = %d, want 1", item.Remaining)
			}
		}
	}
}
