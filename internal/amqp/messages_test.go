package amqp

import "testing"

func TestTxnSyncMessageRoundTrip(t *testing.T) {
	msg := NewTxnSyncMessage(42)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TxnSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("expected id 42, got %d", got.ID)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp should survive the round trip")
	}
}

func TestTxnSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := TxnSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}
