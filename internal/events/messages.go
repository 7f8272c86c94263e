package events

import (
	"encoding/json"
	"time"
)

// ReceiptRecordedMessage announces a newly recorded receipt. Consumers fetch
// the full receipt from the store by ID; the message stays lightweight.
type ReceiptRecordedMessage struct {
	ReceiptID string    `json:"receipt_id"`
	Category  string    `json:"category"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReceiptRecordedMessage creates a message for the given receipt.
func NewReceiptRecordedMessage(receiptID, category, currency string) *ReceiptRecordedMessage {
	return &ReceiptRecordedMessage{
		ReceiptID: receiptID,
		Category:  category,
		Currency:  currency,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReceiptRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReceiptRecordedMessageFromJSON creates a message from JSON bytes.
func ReceiptRecordedMessageFromJSON(data []byte) (*ReceiptRecordedMessage, error) {
	var msg ReceiptRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
