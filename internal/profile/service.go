// Package profile mediates between the persisted owner profile and the
// components gated on its presence.
package profile

import (
	"time"

	"go.uber.org/zap"

	"sparkd/internal/bus"
	"sparkd/internal/likes"
	"sparkd/internal/store"
)

// Service owns profile load/save and the simulator gate: saving a profile
// arms the like simulator, clearing it disarms. Storage failures are
// surfaced to the caller and never retried here.
type Service struct {
	db     *store.DB
	sim    *likes.Simulator
	bus    *bus.Bus
	logger *zap.Logger
}

// NewService creates the profile service.
func NewService(db *store.DB, sim *likes.Simulator, b *bus.Bus, logger *zap.Logger) *Service {
	return &Service{db: db, sim: sim, bus: b, logger: logger}
}

// Load returns the stored profile, or (nil, nil) when none exists.
func (s *Service) Load() (*store.Profile, error) {
	return s.db.LoadProfile()
}

// Save persists the profile and arms the simulator. Overwriting an
// existing profile keeps an already-armed session running.
func (s *Service) Save(p *store.Profile) error {
	if err := s.db.SaveProfile(p); err != nil {
		return err
	}
	s.logger.Info("profile saved", zap.String("name", p.DisplayName()))
	s.bus.Publish(bus.Event{
		Kind:      bus.KindProfileSaved,
		Timestamp: time.Now(),
		Payload: bus.Notification{
			Text:     "Your Profile has been updated",
			Category: "success",
		},
	})
	s.sim.Arm()
	return nil
}

// Clear removes the profile and disarms the simulator so no further
// simulated likes arrive.
func (s *Service) Clear() error {
	if err := s.db.DeleteProfile(); err != nil {
		return err
	}
	s.logger.Info("profile cleared")
	s.bus.Publish(bus.Event{
		Kind:      bus.KindProfileClear,
		Timestamp: time.Now(),
	})
	s.sim.Disarm()
	return nil
}

// ArmIfPresent arms the simulator when a profile already exists, used at
// daemon startup so a restart resumes the gate without a save.
func (s *Service) ArmIfPresent() error {
	p, err := s.db.LoadProfile()
	if err != nil {
		return err
	}
	if p != nil {
		s.sim.Arm()
	}
	return nil
}
