package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEvent is the compact change-feed message published after every
// applied mutation. Consumers that need the record fetch the current
// snapshot themselves; the event only says that something changed.
type LedgerEvent struct {
	Op        string    `json:"op"`
	ID        int64     `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(op string, id int64) *LedgerEvent {
	return &LedgerEvent{
		Op:        op,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
