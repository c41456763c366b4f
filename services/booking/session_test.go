package booking

import (
	"errors"
	"testing"
	"time"
)

func TestSessionRegistry(t *testing.T) {
	registry := NewSessionRegistry(func() *Widget {
		return newTestWidget(&fakeAvailability{}, &fakeBookingService{})
	})

	id, w := registry.Create()
	if id == "" || w == nil {
		t.Fatalf("Create() = %q, %v", id, w)
	}

	got, err := registry.Get(id)
	if err != nil || got != w {
		t.Fatalf("Get() = %v, %v, want created widget", got, err)
	}

	if err := registry.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := registry.Get(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrSessionNotFound", err)
	}
	if err := registry.Delete(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRegistry_SweepIdle(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	registry := NewSessionRegistry(func() *Widget {
		return newTestWidget(&fakeAvailability{}, &fakeBookingService{})
	})
	registry.now = func() time.Time { return now }

	idle, _ := registry.Create()
	now = now.Add(20 * time.Minute)
	fresh, _ := registry.Create()
	now = now.Add(15 * time.Minute)

	if removed := registry.SweepIdle(30 * time.Minute); removed != 1 {
		t.Errorf("SweepIdle() removed %d, want 1", removed)
	}
	if _, err := registry.Get(idle); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present")
	}
	if _, err := registry.Get(fresh); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
	if registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", registry.Len())
	}
}
