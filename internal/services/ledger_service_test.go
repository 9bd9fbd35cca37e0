package services

import "testing"

func TestNewLedgerService(t *testing.T) {
	service := NewLedgerService(nil, nil)
	if service == nil {
		t.Fatal("NewLedgerService should return a non-nil service")
	}
}

func TestLedgerServiceClose(t *testing.T) {
	service := &LedgerService{}
	if err := service.Close(); err != nil {
		t.Fatalf("Close should not fail with nil components: %v", err)
	}
}
