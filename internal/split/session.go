// Package split implements the itemized expense split calculator.
//
// A Session owns one receipt snapshot, an ordered participant list, and the
// quantity assignment being edited. All operations are ordinary synchronous
// calls; a session is mutated by one logical actor at a time and carries no
// locking. Amounts stay in minor units throughout, so total-cost conservation
// is exact rather than within a floating-point tolerance.
package split

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scanalyze/internal/currency"
	"scanalyze/internal/models"
)

// State is the session lifecycle phase.
type State string

const (
	// StateEmpty is a freshly opened session with no edits yet.
	StateEmpty State = "empty"
	// StateEditing means assignments are being adjusted.
	StateEditing State = "editing"
	// StateCalculated means a result has been computed and editing is
	// locked until Edit discards it.
	StateCalculated State = "calculated"
	// StateClosed means the session has ended and all state is discarded.
	StateClosed State = "closed"
)

// DefaultPayerName is used when a session is opened without an explicit
// payer name. The default payer absorbs any unassigned quantity at
// calculation time.
const DefaultPayerName = "You"

// Participant is one named person in the split. Names may be blank while an
// entry is in progress; blank-named participants are excluded from
// calculation.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Share is one participant's computed amount owed.
type Share struct {
	Participant string
	AmountOwed  currency.Amount
}

// Result is the computed split, in participant-addition order.
// Participants owing nothing are omitted.
type Result struct {
	Currency string
	Shares   []Share
}

// Total returns the sum of all shares.
func (r Result) Total() currency.Amount {
	var total currency.Amount
	for _, s := range r.Shares {
		total = total.Add(s.AmountOwed)
	}
	return total
}

// Session is one interactive split over a single receipt.
type Session struct {
	receipt models.Receipt

	// items indexes the receipt's lines by name; for duplicate names the
	// last line wins, matching last-write-wins on participant names.
	items     map[string]models.ExpenseItem
	itemOrder []string

	participants []*Participant
	// assigned maps participant ID -> item name -> assigned quantity.
	// Keying by ID means renames preserve quantities structurally.
	assigned map[string]map[string]int

	state  State
	result Result
}

// NewSession opens a split session over the given receipt. payerName becomes
// the default payer; when empty, DefaultPayerName is used. The receipt is
// read, never mutated.
func NewSession(receipt models.Receipt, payerName string) (*Session, error) {
	if err := receipt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receipt: %w", err)
	}
	if strings.TrimSpace(payerName) == "" {
		payerName = DefaultPayerName
	}

	s := &Session{
		receipt:  receipt,
		items:    make(map[string]models.ExpenseItem, len(receipt.Items)),
		assigned: make(map[string]map[string]int),
		state:    StateEmpty,
	}
	for _, item := range receipt.Items {
		if _, seen := s.items[item.Name]; !seen {
			s.itemOrder = append(s.itemOrder, item.Name)
		}
		s.items[item.Name] = item
	}

	payer := &Participant{ID: uuid.New().String(), Name: payerName}
	s.participants = append(s.participants, payer)
	s.assigned[payer.ID] = make(map[string]int)
	return s, nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Receipt returns the receipt this session splits.
func (s *Session) Receipt() models.Receipt {
	return s.receipt
}

// Participants returns the participants in addition order. The first entry
// is the default payer.
func (s *Session) Participants() []Participant {
	out := make([]Participant, len(s.participants))
	for i, p := range s.participants {
		out[i] = *p
	}
	return out
}

// checkEditable rejects mutations outside the Empty/Editing states.
func (s *Session) checkEditable() error {
	switch s.state {
	case StateCalculated:
		return ErrSessionLocked
	case StateClosed:
		return ErrSessionClosed
	}
	return nil
}

// AddParticipant adds a person to the split and returns their ID. The name
// may be blank (in-progress entry); blank-named participants are excluded
// from calculation until renamed. Duplicate names are allowed: assignments
// key off IDs, so the duplicates stay distinct people.
func (s *Session) AddParticipant(name string) (string, error) {
	if err := s.checkEditable(); err != nil {
		return "", err
	}
	p := &Participant{ID: uuid.New().String(), Name: name}
	s.participants = append(s.participants, p)
	s.assigned[p.ID] = make(map[string]int)
	s.state = StateEditing
	return p.ID, nil
}

// RemoveParticipant drops a participant and discards all their assignment
// entries. The freed quantities return to the unassigned pool and are
// absorbed by the default payer at calculation time; they are never
// redistributed to the remaining participants. The default payer cannot be
// removed.
func (s *Session) RemoveParticipant(id string) error {
	if err := s.checkEditable(); err != nil {
		return err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, id)
	}
	if idx == 0 {
		return ErrDefaultPayer
	}
	s.participants = append(s.participants[:idx], s.participants[idx+1:]...)
	delete(s.assigned, id)
	s.state = StateEditing
	return nil
}

// RenameParticipant changes a participant's display name. Quantities are
// preserved: assignments key off the participant ID. Renaming to blank
// orphans the entries (excluded from calculation) until renamed again; the
// default payer cannot be blanked since they must absorb the remainder.
func (s *Session) RenameParticipant(id, newName string) error {
	if err := s.checkEditable(); err != nil {
		return err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, id)
	}
	if idx == 0 && strings.TrimSpace(newName) == "" {
		return ErrDefaultPayer
	}
	s.participants[idx].Name = newName
	s.state = StateEditing
	return nil
}

// AssignQuantity adjusts a participant's assigned quantity for an item by
// one unit. delta must be -1 or +1. On any validation failure the session
// state is unchanged.
func (s *Session) AssignQuantity(id, itemName string, delta int) error {
	if err := s.checkEditable(); err != nil {
		return err
	}
	if delta != -1 && delta != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDelta, delta)
	}
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, id)
	}
	item, ok := s.items[itemName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemName)
	}

	current := s.assigned[id][itemName]
	if delta < 0 && current == 0 {
		return fmt.Errorf("%w: item %q", ErrNegativeQuantity, itemName)
	}
	if delta > 0 && s.totalAssigned(itemName) >= item.Quantity {
		return fmt.Errorf("%w: item %q", ErrFullyAssigned, itemName)
	}

	next := current + delta
	if next == 0 {
		delete(s.assigned[id], itemName)
	} else {
		s.assigned[id][itemName] = next
	}
	s.state = StateEditing
	return nil
}

// AssignedQuantity returns a participant's current assigned quantity for an
// item. Pure read.
func (s *Session) AssignedQuantity(id, itemName string) int {
	return s.assigned[id][itemName]
}

// RemainingQuantity returns the item's unassigned quantity: total purchased
// minus the sum of all current assignments. Never negative by invariant.
func (s *Session) RemainingQuantity(itemName string) (int, error) {
	item, ok := s.items[itemName]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, itemName)
	}
	return item.Quantity - s.totalAssigned(itemName), nil
}

// Calculate computes each participant's amount owed and locks the session
// until Edit is called. The remainder of every item is attributed to the
// default payer transiently, on each call; it is never written back into the
// assignment the editor sees. Quantities held by blank-named participants
// count as unassigned here, so total-cost conservation always holds.
func (s *Session) Calculate() (Result, error) {
	switch s.state {
	case StateClosed:
		return Result{}, ErrSessionClosed
	case StateCalculated:
		return s.result, nil
	}

	valid := 0
	for _, p := range s.participants {
		if strings.TrimSpace(p.Name) != "" {
			valid++
		}
	}
	if valid == 0 {
		return Result{}, ErrNoParticipants
	}

	// Owed per participant from their own assignments, skipping
	// blank-named entries.
	owed := make(map[string]currency.Amount, len(s.participants))
	for _, p := range s.participants {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		var sum currency.Amount
		for itemName, qty := range s.assigned[p.ID] {
			sum = sum.Add(s.items[itemName].UnitPrice.Mul(qty))
		}
		owed[p.ID] = sum
	}

	// Attribute every item's remainder to the default payer. Computed
	// against counted (non-blank) assignments only.
	payer := s.participants[0]
	for _, itemName := range s.itemOrder {
		item := s.items[itemName]
		counted := 0
		for _, p := range s.participants {
			if strings.TrimSpace(p.Name) == "" {
				continue
			}
			counted += s.assigned[p.ID][itemName]
		}
		if remaining := item.Quantity - counted; remaining > 0 {
			owed[payer.ID] = owed[payer.ID].Add(item.UnitPrice.Mul(remaining))
		}
	}

	result := Result{Currency: s.receipt.Currency}
	for _, p := range s.participants {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if amount := owed[p.ID]; !amount.IsZero() {
			result.Shares = append(result.Shares, Share{
				Participant: p.Name,
				AmountOwed:  amount,
			})
		}
	}

	// Total cost conservation. Exact in minor units.
	if got, want := result.Total(), s.itemizedTotal(); got != want {
		return Result{}, fmt.Errorf("split conservation violated: shares sum to %d, items total %d", got.Minor, want.Minor)
	}

	s.result = result
	s.state = StateCalculated
	return result, nil
}

// Edit discards a computed result and unlocks the session for further
// adjustment.
func (s *Session) Edit() error {
	switch s.state {
	case StateClosed:
		return ErrSessionClosed
	case StateCalculated:
		s.result = Result{}
		s.state = StateEditing
	}
	return nil
}

// Close ends the session. All further operations fail.
func (s *Session) Close() {
	s.state = StateClosed
	s.result = Result{}
	s.assigned = nil
	s.participants = nil
}

func (s *Session) indexOf(id string) int {
	for i, p := range s.participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// totalAssigned sums an item's assignments across all participants,
// including blank-named ones: units they hold stay reserved in the editor
// until the entry is renamed or removed.
func (s *Session) totalAssigned(itemName string) int {
	total := 0
	for _, perItem := range s.assigned {
		total += perItem[itemName]
	}
	return total
}

// itemizedTotal is the full cost of the unique items this session splits.
func (s *Session) itemizedTotal() currency.Amount {
	var total currency.Amount
	for _, name := range s.itemOrder {
		item := s.items[name]
		total = total.Add(item.UnitPrice.Mul(item.Quantity))
	}
	return total
}
