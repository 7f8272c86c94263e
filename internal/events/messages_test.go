package events

import (
	"testing"
	"time"
)

func TestReceiptRecordedMessageRoundTrip(t *testing.T) {
	msg := NewReceiptRecordedMessage("r-123", "grocery", "USD")
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	decoded, err := ReceiptRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if decoded.ReceiptID != "r-123" || decoded.Category != "grocery" || decoded.Currency != "USD" {
		t.Errorf("decoded = %+v", decoded)
	}
	if !decoded.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Errorf("timestamp drifted: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestReceiptRecordedMessageFromJSONInvalid(t *testing.T) {
	if _, err := ReceiptRecordedMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
