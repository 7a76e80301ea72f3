package chat

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sparkd/internal/bus"
)

// replyPhrases is the canned phrase set replies are drawn from.
var replyPhrases = []string{
	"Hey! How are you?",
	"That's interesting! Tell me more.",
	"I totally understand what you mean.",
	"That's great to hear!",
	"Really? I didn't know that!",
	"Sounds like fun!",
	"What are your plans for later?",
	"I agree with you on that.",
}

// Responder schedules one delayed synthetic reply for every message the
// local user sends. Replies are independent: N sends in quick succession
// schedule N timers, with no coalescing. Pending timers are cancelled on
// Stop, but never by merely leaving a conversation.
type Responder struct {
	store  *Store
	bus    *bus.Bus
	logger *zap.Logger
	delay  time.Duration
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	pending map[string]*time.Timer
}

// NewResponder creates an auto-responder over the given store.
func NewResponder(store *Store, b *bus.Bus, logger *zap.Logger, delay time.Duration) *Responder {
	return &Responder{
		store:   store,
		bus:     b,
		logger:  logger,
		delay:   delay,
		pending: make(map[string]*time.Timer),
	}
}

// Start subscribes to message events and begins scheduling replies.
func (r *Responder) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	sub := r.bus.Subscribe(bus.KindMessageAdded, 256)

	go func() {
		defer sub.Cancel()
		for {
			select {
			case evt := <-sub.C:
				added, ok := evt.Payload.(MessageAdded)
				if !ok || added.Message.Sender != SenderLocal {
					continue
				}
				r.schedule(added.MatchID)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop unsubscribes and cancels all pending replies.
func (r *Responder) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Lock()
	r.stopped = true
	for id, timer := range r.pending {
		timer.Stop()
		delete(r.pending, id)
	}
	r.mu.Unlock()
}

// schedule registers exactly one delayed reply for a local send.
func (r *Responder) schedule(matchID string) {
	replyID := uuid.New().String()

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.pending[replyID] = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		delete(r.pending, replyID)
		stopped := r.stopped
		r.mu.Unlock()
		if stopped {
			return
		}
		r.deliver(matchID, replyID)
	})
	r.mu.Unlock()
}

func (r *Responder) deliver(matchID, replyID string) {
	reply := Message{
		ID:        replyID,
		Text:      replyPhrases[rand.Intn(len(replyPhrases))],
		Sender:    SenderMatched,
		Timestamp: time.Now(),
		Read:      true,
	}
	r.store.AddMessage(matchID, reply)
	r.logger.Info("auto reply delivered",
		zap.String("match_id", matchID), zap.String("msg_id", replyID))
}
