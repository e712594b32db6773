package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// MaxRememberedTopics acota topics_of_interest; se descarta el mas viejo.
const MaxRememberedTopics = 20

// EmotionalPatterns guarda el ultimo estado emocional observado.
type EmotionalPatterns struct {
	RecentMood   Sentiment `json:"recent_mood,omitempty"`
	LastEmotions []Emotion `json:"last_emotions,omitempty"`
}

// UserMemory es el registro evolutivo que el engine muta en cada turno.
// Solo el engine lo lee; la persistencia es responsabilidad del caller.
type UserMemory struct {
	UserID             string            `json:"user_id"`
	TopicsOfInterest   []string          `json:"topics_of_interest"`
	EmotionalPatterns  EmotionalPatterns `json:"emotional_patterns"`
	CommunicationTimes map[int]int       `json:"communication_times"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// NewUserMemory construye una memoria vacia lista para mutar.
func NewUserMemory(userID string) *UserMemory {
	return &UserMemory{
		UserID:             userID,
		TopicsOfInterest:   []string{},
		CommunicationTimes: make(map[int]int),
	}
}

// Remembers indica si un tema ya esta en topics_of_interest.
func (m *UserMemory) Remembers(topic string) bool {
	for _, t := range m.TopicsOfInterest {
		if t == topic {
			return true
		}
	}
	return false
}

// MemorySnapshot es la foto emocional de un turno, con vector para busqueda
// de dias con perfil emocional parecido.
type MemorySnapshot struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"user_id"`
	Sentiment     Sentiment       `json:"sentiment"`
	Emotions      []Emotion       `json:"emotions"`
	Topics        []Topic         `json:"topics"`
	EmotionVector pgvector.Vector `json:"emotion_vector"`
	CapturedAt    time.Time       `json:"captured_at"`
	CreatedAt     time.Time       `json:"created_at"`
}
