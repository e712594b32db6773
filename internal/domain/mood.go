package domain

import "time"

// Mood es el estado de animo que el usuario registra a mano.
type Mood string

const (
	MoodAmazing Mood = "amazing"
	MoodHappy   Mood = "happy"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodLow     Mood = "low"
	MoodAnxious Mood = "anxious"
	MoodSad     Mood = "sad"
)

// ValidMood valida contra la lista cerrada del tracker.
func ValidMood(m Mood) bool {
	switch m {
	case MoodAmazing, MoodHappy, MoodGood, MoodNeutral, MoodLow, MoodAnxious, MoodSad:
		return true
	}
	return false
}

// MoodEntry es un registro puntual del mood tracker.
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      Mood      `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodStats resume los registros recientes para la vista de estadisticas.
type MoodStats struct {
	Total      int          `json:"total"`
	MostCommon Mood         `json:"most_common,omitempty"`
	StreakDays int          `json:"streak_days"`
	ByMood     map[Mood]int `json:"by_mood"`
}
