package likes

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"sparkd/internal/bus"
	"sparkd/internal/directory"
)

// LikeReceived is the bus payload for a simulated incoming like.
type LikeReceived struct {
	User         directory.User
	Notification bus.Notification
}

// Simulator produces a bounded stream of simulated incoming likes while a
// local profile exists. Each armed session fires at most maxLikes times,
// choosing uniformly at random from the directory users who have not liked
// the owner yet. The first fire happens immediately on arming; later fires
// are spaced by the configured interval.
type Simulator struct {
	dir      *directory.Directory
	bus      *bus.Bus
	logger   *zap.Logger
	machine  *Machine
	maxLikes int
	interval time.Duration

	mu       sync.Mutex
	likedBy  []directory.User
	likedIDs map[string]struct{}
	fired    int
	gen      uint64
	timer    *time.Timer
}

// NewSimulator creates a simulator in the Idle state.
func NewSimulator(dir *directory.Directory, b *bus.Bus, logger *zap.Logger, maxLikes int, interval time.Duration) *Simulator {
	return &Simulator{
		dir:      dir,
		bus:      b,
		logger:   logger,
		machine:  NewMachine(b),
		maxLikes: maxLikes,
		interval: interval,
		likedIDs: make(map[string]struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Simulator) State() State {
	return s.machine.Current()
}

// FireCount returns the number of fires in the current armed session.
func (s *Simulator) FireCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// LikedBy returns the users recorded as having liked the owner, in arrival
// order.
func (s *Simulator) LikedBy() []directory.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]directory.User, len(s.likedBy))
	copy(out, s.likedBy)
	return out
}

// Arm starts an armed session: the fire counter resets and the first fire
// is scheduled immediately. A no-op unless the simulator is Idle. The
// liked-by list is kept across sessions.
func (s *Simulator) Arm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.Transition(Armed); err != nil {
		return false
	}
	s.fired = 0
	s.gen++
	s.scheduleLocked(0)
	s.logger.Info("like simulator armed", zap.Int("max_likes", s.maxLikes))
	return true
}

// Disarm cancels any pending timer and returns to Idle. A fire already in
// flight when Disarm runs observes a stale generation and does nothing.
func (s *Simulator) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Current() == Idle {
		return
	}
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if err := s.machine.Transition(Idle); err != nil {
		s.logger.Error("disarm transition failed", zap.Error(err))
		return
	}
	s.logger.Info("like simulator disarmed", zap.Int("fired", s.fired))
}

// scheduleLocked arms the next fire. Caller holds s.mu.
func (s *Simulator) scheduleLocked(delay time.Duration) {
	if err := s.machine.Transition(Scheduling); err != nil {
		s.logger.Error("schedule transition failed", zap.Error(err))
		return
	}
	gen := s.gen
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
}

// fire runs on timer expiry. It validates the generation so a timer that
// outlived a Disarm or re-Arm is a no-op, then selects a candidate,
// records the like and decides whether to reschedule.
func (s *Simulator) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.machine.Current() != Scheduling {
		return
	}

	pool := s.poolLocked()
	if len(pool) == 0 {
		_ = s.machine.Transition(Exhausted)
		s.logger.Info("like simulator exhausted", zap.String("reason", "empty pool"))
		return
	}

	if err := s.machine.Transition(Fired); err != nil {
		s.logger.Error("fire transition failed", zap.Error(err))
		return
	}

	liker := pool[rand.Intn(len(pool))]
	if _, seen := s.likedIDs[liker.ID]; !seen {
		s.likedIDs[liker.ID] = struct{}{}
		s.likedBy = append(s.likedBy, liker)
	}
	s.fired++

	s.logger.Info("simulated like",
		zap.String("user_id", liker.ID),
		zap.String("name", liker.DisplayName()),
		zap.Int("fired", s.fired))
	s.bus.Publish(bus.Event{
		Kind:      bus.KindLikeReceived,
		Timestamp: time.Now(),
		Payload: LikeReceived{
			User: liker,
			Notification: bus.Notification{
				Text:     liker.DisplayName() + " liked you!",
				Category: "success",
			},
		},
	})

	if s.fired < s.maxLikes && len(pool) > 1 {
		s.scheduleLocked(s.interval)
		return
	}
	_ = s.machine.Transition(Exhausted)
	s.logger.Info("like simulator exhausted", zap.Int("fired", s.fired))
}

// poolLocked returns directory users not yet in the liked-by list.
// Caller holds s.mu.
func (s *Simulator) poolLocked() []directory.User {
	var pool []directory.User
	for _, u := range s.dir.All() {
		if _, seen := s.likedIDs[u.ID]; !seen {
			pool = append(pool, u)
		}
	}
	return pool
}
