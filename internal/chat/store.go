package chat

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"sparkd/internal/bus"
	"sparkd/internal/directory"
)

// Store owns the match set and the per-match conversation logs for the
// lifetime of the process. Matches are not persisted; a restart starts
// empty. All mutation goes through AddMatch and AddMessage.
type Store struct {
	mu     sync.RWMutex
	bus    *bus.Bus
	logger *zap.Logger

	matches       []directory.User
	matchIDs      map[string]struct{}
	conversations map[string][]Message
	messageIDs    map[string]map[string]struct{}
}

// NewStore creates an empty match/chat store.
func NewStore(b *bus.Bus, logger *zap.Logger) *Store {
	return &Store{
		bus:           b,
		logger:        logger,
		matchIDs:      make(map[string]struct{}),
		conversations: make(map[string][]Message),
		messageIDs:    make(map[string]map[string]struct{}),
	}
}

// AddMatch inserts user into the match set. Idempotent: a user already
// present by id is left untouched and false is returned. Insertion order
// is preserved for display.
func (s *Store) AddMatch(user directory.User) bool {
	s.mu.Lock()
	if _, exists := s.matchIDs[user.ID]; exists {
		s.mu.Unlock()
		return false
	}
	s.matchIDs[user.ID] = struct{}{}
	s.matches = append(s.matches, user)
	s.mu.Unlock()

	s.logger.Info("match added", zap.String("user_id", user.ID), zap.String("name", user.DisplayName()))
	s.bus.Publish(bus.Event{
		Kind:      bus.KindMatchAdded,
		Timestamp: time.Now(),
		Payload:   MatchAdded{User: user},
	})
	return true
}

// HasMatch reports whether the user id is in the match set.
func (s *Store) HasMatch(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.matchIDs[id]
	return ok
}

// Matches returns the match set in insertion order.
func (s *Store) Matches() []directory.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.User, len(s.matches))
	copy(out, s.matches)
	return out
}

// AddMessage appends msg to the conversation for matchID, creating the
// conversation if absent. Appends are kept in call order. An append whose
// message id already exists in the conversation is ignored and false is
// returned; the first append wins.
func (s *Store) AddMessage(matchID string, msg Message) bool {
	s.mu.Lock()
	ids, ok := s.messageIDs[matchID]
	if !ok {
		ids = make(map[string]struct{})
		s.messageIDs[matchID] = ids
	}
	if _, dup := ids[msg.ID]; dup {
		s.mu.Unlock()
		s.logger.Warn("duplicate message id ignored",
			zap.String("match_id", matchID), zap.String("msg_id", msg.ID))
		return false
	}
	ids[msg.ID] = struct{}{}
	s.conversations[matchID] = append(s.conversations[matchID], msg)
	s.mu.Unlock()

	s.bus.Publish(bus.Event{
		Kind:      bus.KindMessageAdded,
		Timestamp: time.Now(),
		Payload:   MessageAdded{MatchID: matchID, Message: msg},
	})
	return true
}

// Conversation returns the message log for matchID in append order.
// An unknown id yields an empty slice, not an error.
func (s *Store) Conversation(matchID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.conversations[matchID]
	out := make([]Message, len(log))
	copy(out, log)
	return out
}
