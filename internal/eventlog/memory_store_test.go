package eventlog

import (
	"context"
	"testing"

	"github.com/jharju/stm/pkg/api"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	events := []api.TxEvent{
		{TxID: 1, Type: api.EventTxBegin, Attempt: 1},
		{TxID: 1, Type: api.EventTxConflict, Attempt: 1},
		{TxID: 1, Type: api.EventTxBegin, Attempt: 2},
		{TxID: 1, Type: api.EventTxCommitted, Attempt: 2},
		{TxID: 2, Type: api.EventTxBegin, Attempt: 1},
	}
	for _, ev := range events {
		if err := s.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	got, err := s.ListEvents(ctx, 1)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 events for tx 1, got %d", len(got))
	}

	wantTypes := []api.EventType{
		api.EventTxBegin, api.EventTxConflict, api.EventTxBegin, api.EventTxCommitted,
	}
	for i, ev := range got {
		if ev.Type != wantTypes[i] {
			t.Fatalf("event %d: type=%s, want %s", i, ev.Type, wantTypes[i])
		}
	}
}

func TestMemoryStoreUnknownTxYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.ListEvents(ctx, 999)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.AppendEvent(ctx, api.TxEvent{TxID: 1, Type: api.EventTxBegin}); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	got, _ := s.ListEvents(ctx, 1)
	got[0].Type = api.EventTxAborted

	again, _ := s.ListEvents(ctx, 1)
	if again[0].Type != api.EventTxBegin {
		t.Fatalf("caller mutation leaked into the store")
	}
}
