package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twinheart/internal/domain"
	"twinheart/internal/repository"
)

// MoodService maneja el mood tracker manual.
type MoodService struct {
	logger *zap.Logger
	moods  repository.MoodRepository
	now    func() time.Time
}

var ErrInvalidMood = errors.New("invalid mood")

const defaultMoodWindowDays = 30

func NewMoodService(logger *zap.Logger, moods repository.MoodRepository) *MoodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MoodService{
		logger: logger,
		moods:  moods,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *MoodService) Log(ctx context.Context, userID string, mood domain.Mood, note string) (domain.MoodEntry, error) {
	if !domain.ValidMood(mood) {
		return domain.MoodEntry{}, ErrInvalidMood
	}
	entry := domain.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		Note:      strings.TrimSpace(note),
		CreatedAt: s.now(),
	}
	if err := s.moods.Create(ctx, entry); err != nil {
		return domain.MoodEntry{}, err
	}
	return entry, nil
}

func (s *MoodService) History(ctx context.Context, userID string, days int) ([]domain.MoodEntry, error) {
	if days <= 0 {
		days = defaultMoodWindowDays
	}
	since := s.now().AddDate(0, 0, -days)
	return s.moods.ListByUserID(ctx, userID, since)
}

// Stats resume la ventana reciente: conteos por humor, el mas frecuente y la
// racha de dias consecutivos con al menos un registro.
func (s *MoodService) Stats(ctx context.Context, userID string, days int) (domain.MoodStats, error) {
	entries, err := s.History(ctx, userID, days)
	if err != nil {
		return domain.MoodStats{}, err
	}

	stats := domain.MoodStats{
		Total:  len(entries),
		ByMood: make(map[domain.Mood]int),
	}
	daysSeen := make(map[string]bool)
	for _, entry := range entries {
		stats.ByMood[entry.Mood]++
		daysSeen[entry.CreatedAt.UTC().Format("2006-01-02")] = true
	}

	// Empates se resuelven por el orden fijo de la lista de moods.
	best := 0
	for _, mood := range []domain.Mood{
		domain.MoodAmazing, domain.MoodHappy, domain.MoodGood, domain.MoodNeutral,
		domain.MoodLow, domain.MoodAnxious, domain.MoodSad,
	} {
		if stats.ByMood[mood] > best {
			best = stats.ByMood[mood]
			stats.MostCommon = mood
		}
	}

	// La racha arranca hoy, o ayer si hoy todavia no hay registro.
	day := s.now().Truncate(24 * time.Hour)
	if !daysSeen[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for daysSeen[day.Format("2006-01-02")] {
		stats.StreakDays++
		day = day.AddDate(0, 0, -1)
	}

	return stats, nil
}
