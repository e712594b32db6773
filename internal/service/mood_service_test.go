package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"twinheart/internal/domain"
)

type mockMoodRepo struct {
	entries []domain.MoodEntry
}

func (m *mockMoodRepo) Create(_ context.Context, entry domain.MoodEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockMoodRepo) ListByUserID(_ context.Context, userID string, since time.Time) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestMoodServiceLogValidatesMood(t *testing.T) {
	svc := NewMoodService(zap.NewNop(), &mockMoodRepo{})

	if _, err := svc.Log(context.Background(), "u1", "euphoric", ""); !errors.Is(err, ErrInvalidMood) {
		t.Fatalf("expected ErrInvalidMood, got %v", err)
	}

	entry, err := svc.Log(context.Background(), "u1", domain.MoodHappy, "  good day  ")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if entry.Note != "good day" || entry.ID == "" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestMoodServiceStats(t *testing.T) {
	repo := &mockMoodRepo{}
	svc := NewMoodService(zap.NewNop(), repo)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	day := func(offset int, mood domain.Mood) domain.MoodEntry {
		return domain.MoodEntry{
			ID:        "e",
			UserID:    "u1",
			Mood:      mood,
			CreatedAt: now.AddDate(0, 0, offset),
		}
	}
	repo.entries = []domain.MoodEntry{
		day(0, domain.MoodHappy),
		day(-1, domain.MoodHappy),
		day(-2, domain.MoodSad),
		day(-5, domain.MoodLow),
	}

	stats, err := svc.Stats(context.Background(), "u1", 30)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 {
		t.Fatalf("total = %d, want 4", stats.Total)
	}
	if stats.MostCommon != domain.MoodHappy {
		t.Fatalf("most common = %q, want happy", stats.MostCommon)
	}
	if stats.ByMood[domain.MoodHappy] != 2 || stats.ByMood[domain.MoodSad] != 1 {
		t.Fatalf("unexpected counts: %v", stats.ByMood)
	}
	// Hoy, ayer y anteayer tienen registro; el dia -5 corta la racha.
	if stats.StreakDays != 3 {
		t.Fatalf("streak = %d, want 3", stats.StreakDays)
	}
}

func TestMoodServiceStreakStartsYesterdayWithoutTodayEntry(t *testing.T) {
	repo := &mockMoodRepo{}
	svc := NewMoodService(zap.NewNop(), repo)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	repo.entries = []domain.MoodEntry{
		{ID: "e1", UserID: "u1", Mood: domain.MoodGood, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "e2", UserID: "u1", Mood: domain.MoodGood, CreatedAt: now.AddDate(0, 0, -2)},
	}

	stats, err := svc.Stats(context.Background(), "u1", 30)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.StreakDays != 2 {
		t.Fatalf("streak = %d, want 2", stats.StreakDays)
	}
}
