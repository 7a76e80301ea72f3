package profile

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"sparkd/internal/bus"
	"sparkd/internal/directory"
	"sparkd/internal/likes"
	"sparkd/internal/store"
)

func testService(t *testing.T) (*Service, *likes.Simulator) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	b := bus.New()
	sim := likes.NewSimulator(directory.New(), b, zap.NewNop(), 3, time.Hour)
	return NewService(db, sim, b, zap.NewNop()), sim
}

func TestSaveArmsSimulator(t *testing.T) {
	svc, sim := testService(t)

	if sim.State() != likes.Idle {
		t.Fatalf("state = %s before save, want IDLE", sim.State())
	}
	if err := svc.Save(&store.Profile{FirstName: "Ana"}); err != nil {
		t.Fatal(err)
	}
	if sim.State() == likes.Idle {
		t.Error("simulator should leave Idle after profile save")
	}

	p, err := svc.Load()
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.FirstName != "Ana" {
		t.Errorf("Load() = %+v, want Ana", p)
	}
}

func TestClearDisarmsSimulator(t *testing.T) {
	svc, sim := testService(t)

	if err := svc.Save(&store.Profile{FirstName: "Ana"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(); err != nil {
		t.Fatal(err)
	}
	if sim.State() != likes.Idle {
		t.Errorf("state = %s after clear, want IDLE", sim.State())
	}

	p, err := svc.Load()
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("Load() = %+v after clear, want nil", p)
	}
}

func TestArmIfPresent(t *testing.T) {
	svc, sim := testService(t)

	// No profile: stays Idle.
	if err := svc.ArmIfPresent(); err != nil {
		t.Fatal(err)
	}
	if sim.State() != likes.Idle {
		t.Errorf("state = %s with no profile, want IDLE", sim.State())
	}

	if err := svc.Save(&store.Profile{FirstName: "Ana"}); err != nil {
		t.Fatal(err)
	}
	sim.Disarm()

	// Profile present: a restart re-arms.
	if err := svc.ArmIfPresent(); err != nil {
		t.Fatal(err)
	}
	if sim.State() == likes.Idle {
		t.Error("simulator should be armed when a profile exists at startup")
	}
}

func TestSavePublishesNotification(t *testing.T) {
	b := bus.New()
	sub := b.Subscribe(bus.KindProfileSaved, 4)
	defer sub.Cancel()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	sim := likes.NewSimulator(directory.New(), b, zap.NewNop(), 3, time.Hour)
	svc := NewService(db, sim, b, zap.NewNop())

	if err := svc.Save(&store.Profile{FirstName: "Ana"}); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-sub.C:
		n, ok := evt.Payload.(bus.Notification)
		if !ok {
			t.Fatalf("payload type = %T, want Notification", evt.Payload)
		}
		if n.Category != "success" {
			t.Errorf("category = %q, want success", n.Category)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for profile.saved event")
	}
}
