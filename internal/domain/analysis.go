package domain

// Sentiment es la polaridad global detectada en un mensaje.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Emotion es una emocion puntual detectada por keywords.
type Emotion string

const (
	EmotionJoy        Emotion = "joy"
	EmotionSadness    Emotion = "sadness"
	EmotionAnxiety    Emotion = "anxiety"
	EmotionAnger      Emotion = "anger"
	EmotionFear       Emotion = "fear"
	EmotionLove       Emotion = "love"
	EmotionExcitement Emotion = "excitement"
	EmotionConfusion  Emotion = "confusion"
	EmotionGratitude  Emotion = "gratitude"
	EmotionLoneliness Emotion = "loneliness"
)

// Topic es un tema de conversacion detectado por keywords.
type Topic string

const (
	TopicWork          Topic = "work"
	TopicRelationships Topic = "relationships"
	TopicHealth        Topic = "health"
	TopicHobbies       Topic = "hobbies"
	TopicEmotions      Topic = "emotions"
	TopicEducation     Topic = "education"
	TopicFinance       Topic = "finance"
	TopicTechnology    Topic = "technology"
	TopicFuture        Topic = "future"
	TopicPast          Topic = "past"
)

// Intent clasifica la intencion del mensaje; el primer patron que matchea gana.
type Intent string

const (
	IntentQuestion            Intent = "question"
	IntentRequestHelp         Intent = "request_help"
	IntentShareExperience     Intent = "share_experience"
	IntentSeekComfort         Intent = "seek_comfort"
	IntentExpressGratitude    Intent = "express_gratitude"
	IntentMakePlans           Intent = "make_plans"
	IntentSmallTalk           Intent = "small_talk"
	IntentGeneralConversation Intent = "general_conversation"
)

// Urgency segun cantidad de keywords urgentes: 0 low, 1 medium, 2+ high.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Complexity aproxima la densidad del mensaje (palabras y largo de oraciones).
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Personality selecciona el pool de plantillas del companion.
type Personality string

const (
	PersonalityCaring    Personality = "caring"
	PersonalityPlayful   Personality = "playful"
	PersonalityWise      Personality = "wise"
	PersonalityEnergetic Personality = "energetic"
	PersonalityCalm      Personality = "calm"
)

// MessageAnalysis es el resultado inmutable de clasificar un mensaje.
type MessageAnalysis struct {
	Sentiment  Sentiment  `json:"sentiment"`
	Emotions   []Emotion  `json:"emotions"`
	Topics     []Topic    `json:"topics"`
	Intent     Intent     `json:"intent"`
	Urgency    Urgency    `json:"urgency"`
	Complexity Complexity `json:"complexity"`
}

// HasEmotion indica si la emocion aparece en el analisis.
func (a MessageAnalysis) HasEmotion(e Emotion) bool {
	for _, detected := range a.Emotions {
		if detected == e {
			return true
		}
	}
	return false
}

// HasTopic indica si el tema aparece en el analisis.
func (a MessageAnalysis) HasTopic(t Topic) bool {
	for _, detected := range a.Topics {
		if detected == t {
			return true
		}
	}
	return false
}

// ConversationContext es el contexto efimero que el caller pasa por turno.
type ConversationContext struct {
	RecentMood         string      `json:"recent_mood,omitempty"`
	Personality        Personality `json:"personality"`
	TimeOfDay          int         `json:"time_of_day"`
	UserName           string      `json:"user_name,omitempty"`
	UserInterests      []string    `json:"user_interests,omitempty"`
	ConversationLength int         `json:"conversation_length"`
}
