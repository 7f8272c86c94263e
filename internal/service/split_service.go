package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"scanalyze/internal/split"
	"scanalyze/internal/storage"
)

// ErrSessionNotFound is returned for unknown or already closed sessions.
var ErrSessionNotFound = errors.New("split session not found")

// sessionEntry pairs a session with its lock. Sessions are single-user
// editors but handlers may race, so every access goes through the lock.
type sessionEntry struct {
	mu      sync.Mutex
	session *split.Session
}

// SplitService manages the lifecycle of split sessions. Sessions live in
// memory only; receipts are loaded from storage when a session opens.
type SplitService struct {
	store     storage.Store
	payerName string

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// NewSplitService creates a SplitService backed by the given store.
// payerName is the display name of the session owner in results.
func NewSplitService(store storage.Store, payerName string) *SplitService {
	return &SplitService{
		store:     store,
		payerName: payerName,
		sessions:  make(map[string]*sessionEntry),
	}
}

// Open starts a split session for the given receipt and returns its ID.
func (s *SplitService) Open(ctx context.Context, receiptID string) (string, error) {
	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return "", fmt.Errorf("load receipt: %w", err)
	}

	session, err := split.NewSession(*receipt, s.payerName)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: session}
	s.mu.Unlock()

	slog.Info("Opened split session", "session_id", id, "receipt_id", receiptID)
	return id, nil
}

func (s *SplitService) entry(sessionID string) (*sessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// AddParticipant adds a participant to the session and returns its ID.
func (s *SplitService) AddParticipant(sessionID, name string) (string, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.AddParticipant(name)
}

// RemoveParticipant removes a participant and frees their assignments.
func (s *SplitService) RemoveParticipant(sessionID, participantID string) error {
	e, err := s.entry(sessionID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.RemoveParticipant(participantID)
}

// RenameParticipant changes a participant's display name.
func (s *SplitService) RenameParticipant(sessionID, participantID, name string) error {
	e, err := s.entry(sessionID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.RenameParticipant(participantID, name)
}

// AssignQuantity moves one unit of an item to or from a participant.
func (s *SplitService) AssignQuantity(sessionID, participantID, itemName string, delta int) error {
	e, err := s.entry(sessionID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.AssignQuantity(participantID, itemName, delta)
}

// Calculate computes the split result and locks the session against edits.
func (s *SplitService) Calculate(sessionID string) (split.Result, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return split.Result{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Calculate()
}

// Edit returns a calculated session to the editing state.
func (s *SplitService) Edit(sessionID string) error {
	e, err := s.entry(sessionID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Edit()
}

// Close ends the session and removes it from the registry.
func (s *SplitService) Close(sessionID string) error {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	e.session.Close()
	e.mu.Unlock()
	slog.Info("Closed split session", "session_id", sessionID)
	return nil
}

// ItemView is the editor's view of one receipt line.
type ItemView struct {
	Name        string         `json:"name"`
	Quantity    int            `json:"quantity"`
	Remaining   int            `json:"remaining"`
	Assignments map[string]int `json:"assignments,omitempty"`
}

// SessionView is a consistent snapshot of a session for the API.
type SessionView struct {
	SessionID    string              `json:"session_id"`
	ReceiptID    string              `json:"receipt_id"`
	State        split.State         `json:"state"`
	Participants []split.Participant `json:"participants"`
	Items        []ItemView          `json:"items"`
}

// View returns a snapshot of the session's participants and assignments.
func (s *SplitService) View(sessionID string) (SessionView, error) {
	e, err := s.entry(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.session
	receipt := sess.Receipt()
	participants := sess.Participants()

	view := SessionView{
		SessionID:    sessionID,
		ReceiptID:    receipt.ID,
		State:        sess.State(),
		Participants: participants,
	}
	for _, item := range receipt.Items {
		iv := ItemView{Name: item.Name, Quantity: item.Quantity}
		remaining, err := sess.RemainingQuantity(item.Name)
		if err != nil {
			return SessionView{}, err
		}
		iv.Remaining = remaining
		for _, p := range participants {
			if q := sess.AssignedQuantity(p.ID, item.Name); q > 0 {
				if iv.Assignments == nil {
					iv.Assignments = make(map[string]int)
				}
				iv.Assignments[p.ID] = q
			}
		}
		view.Items = append(view.Items, iv)
	}
	return view, nil
}
