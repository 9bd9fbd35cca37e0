package amqp

import (
	"encoding/json"
	"time"
)

// TxnSyncMessage asks the worker to copy one buffered transaction to the
// spreadsheet. It carries only the local id; the worker fetches the row
// from SQLite so the message never goes stale.
type TxnSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTxnSyncMessage(id int64) *TxnSyncMessage {
	return &TxnSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TxnSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TxnSyncMessageFromJSON creates a message from JSON bytes.
func TxnSyncMessageFromJSON(data []byte) (*TxnSyncMessage, error) {
	var msg TxnSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
