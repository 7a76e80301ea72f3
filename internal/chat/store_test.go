package chat

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"sparkd/internal/bus"
	"sparkd/internal/directory"
)

func testStore(t *testing.T) (*Store, *bus.Bus) {
	t.Helper()
	b := bus.New()
	return NewStore(b, zap.NewNop()), b
}

func TestAddMatchIdempotent(t *testing.T) {
	s, _ := testStore(t)

	emily := directory.User{ID: "2", FirstName: "Emily", LastName: "Johnson"}
	if !s.AddMatch(emily) {
		t.Error("first AddMatch should report an insert")
	}
	if s.AddMatch(emily) {
		t.Error("second AddMatch with the same id should be a no-op")
	}

	matches := s.Matches()
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].ID != "2" || matches[0].FirstName != "Emily" {
		t.Errorf("match = %+v, want Emily (id 2)", matches[0])
	}
}

func TestMatchesPreserveInsertionOrder(t *testing.T) {
	s, _ := testStore(t)

	for _, id := range []string{"3", "1", "2"} {
		s.AddMatch(directory.User{ID: id})
	}

	matches := s.Matches()
	want := []string{"3", "1", "2"}
	for i, id := range want {
		if matches[i].ID != id {
			t.Errorf("Matches()[%d].ID = %q, want %q", i, matches[i].ID, id)
		}
	}
}

func TestAddMatchPublishesEvent(t *testing.T) {
	s, b := testStore(t)
	sub := b.Subscribe(bus.KindMatchAdded, 4)
	defer sub.Cancel()

	s.AddMatch(directory.User{ID: "1", FirstName: "Sophia"})

	select {
	case evt := <-sub.C:
		added, ok := evt.Payload.(MatchAdded)
		if !ok {
			t.Fatalf("payload type = %T, want MatchAdded", evt.Payload)
		}
		if added.User.ID != "1" {
			t.Errorf("user id = %q, want 1", added.User.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for match_added event")
	}

	// Duplicate insert must not publish again.
	s.AddMatch(directory.User{ID: "1"})
	select {
	case evt := <-sub.C:
		t.Errorf("unexpected event %q for duplicate AddMatch", evt.Kind)
	default:
	}
}

func TestConversationAppendOrder(t *testing.T) {
	s, _ := testStore(t)

	for i := 0; i < 10; i++ {
		s.AddMessage("2", Message{
			ID:        fmt.Sprintf("m%d", i),
			Text:      fmt.Sprintf("message %d", i),
			Sender:    SenderLocal,
			Timestamp: time.Now(),
		})
	}

	log := s.Conversation("2")
	if len(log) != 10 {
		t.Fatalf("got %d messages, want 10", len(log))
	}
	for i, m := range log {
		if m.ID != fmt.Sprintf("m%d", i) {
			t.Errorf("log[%d].ID = %q, want m%d (order must equal call order)", i, m.ID, i)
		}
	}
}

func TestConversationUnknownIDIsEmpty(t *testing.T) {
	s, _ := testStore(t)

	log := s.Conversation("nobody")
	if len(log) != 0 {
		t.Errorf("got %d messages for unknown conversation, want 0", len(log))
	}
}

func TestAddMessageCreatesConversation(t *testing.T) {
	s, _ := testStore(t)

	// No AddMatch needed; the conversation is created on first append.
	if !s.AddMessage("9", Message{ID: "m1", Text: "hi", Sender: SenderLocal}) {
		t.Fatal("AddMessage should accept the first append")
	}
	if len(s.Conversation("9")) != 1 {
		t.Error("conversation not created on first append")
	}
}

func TestAddMessageDuplicateIDIgnored(t *testing.T) {
	s, _ := testStore(t)

	first := Message{ID: "m1", Text: "original", Sender: SenderLocal}
	dup := Message{ID: "m1", Text: "impostor", Sender: SenderLocal}

	if !s.AddMessage("2", first) {
		t.Fatal("first append rejected")
	}
	if s.AddMessage("2", dup) {
		t.Error("duplicate id should be ignored")
	}

	log := s.Conversation("2")
	if len(log) != 1 {
		t.Fatalf("got %d messages, want 1", len(log))
	}
	if log[0].Text != "original" {
		t.Errorf("text = %q, want the first append to win", log[0].Text)
	}

	// Same id in a different conversation is a distinct message.
	if !s.AddMessage("3", Message{ID: "m1", Text: "elsewhere", Sender: SenderLocal}) {
		t.Error("same id in another conversation should be accepted")
	}
}

func TestConversationReturnsCopy(t *testing.T) {
	s, _ := testStore(t)
	s.AddMessage("2", Message{ID: "m1", Text: "hello", Sender: SenderLocal})

	log := s.Conversation("2")
	log[0].Text = "mutated"

	if got := s.Conversation("2")[0].Text; got != "hello" {
		t.Errorf("store mutated through Conversation(): text = %q", got)
	}
}
