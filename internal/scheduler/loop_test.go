package scheduler

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/goleak"

	"twinheart/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoopNotifiesDueReminders(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)}
	sched := NewScheduler(clock, NewMemoryMarkerStore(), rand.New(rand.NewSource(1)))
	if err := sched.Initialize(domain.DefaultPreferences()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	notified := make(chan []domain.Reminder, 4)
	loop := NewLoop(sched, time.Minute, func(_ context.Context, due []domain.Reminder) {
		notified <- due
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	done := make(chan struct{})
	go func() {
		loop.runWithTicks(ctx, ticks)
		close(done)
	}()

	// El chequeo inmediato del arranque encuentra los de las 13:00.
	select {
	case due := <-notified:
		if len(due) == 0 {
			t.Errorf("expected due reminders on startup check")
		}
	case <-time.After(2 * time.Second):
		t.Errorf("timed out waiting for startup notification")
	}

	// Un tick dentro del mismo minuto no renotifica (dedup por dia).
	ticks <- time.Now()

	// Avanzar el reloj al proximo recordatorio y tickear de nuevo.
	clock.Set(time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC))
	ticks <- time.Now()

	select {
	case due := <-notified:
		found := false
		for _, r := range due {
			if r.ID == "selfcare_afternoon" || r.ID == "hydration_15:00" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected 15:00 reminders, got %v", due)
		}
	case <-time.After(2 * time.Second):
		t.Errorf("timed out waiting for 15:00 notification")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
}
