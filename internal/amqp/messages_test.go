package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventJSONRoundTrip(t *testing.T) {
	ev := NewLedgerEvent("added", 42)
	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := LedgerEventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Op != "added" || got.ID != 42 {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
		t.Fatalf("unexpected timestamp: %v", got.Timestamp)
	}
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("{broken")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
