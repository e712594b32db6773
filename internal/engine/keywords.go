package engine

import "twinheart/internal/domain"

// Tablas de clasificacion. Las reglas son datos, no control flow: cada tabla
// es una lista ordenada {etiqueta, keywords} y el clasificador solo itera.

var positiveKeywords = []string{
	"happy", "good", "great", "awesome", "love", "excited", "wonderful",
	"amazing", "fantastic", "perfect", "brilliant", "excellent", "thrilled",
	"delighted", "cheerful", "optimistic", "grateful", "blessed", "joy",
}

var negativeKeywords = []string{
	"sad", "bad", "terrible", "hate", "angry", "frustrated", "worried",
	"anxious", "depressed", "awful", "horrible", "miserable", "upset",
	"disappointed", "stressed", "overwhelmed", "lonely", "hurt", "broken",
}

type emotionRule struct {
	emotion  domain.Emotion
	keywords []string
}

// El orden define el orden de iteracion para las frases de apoyo.
var emotionRules = []emotionRule{
	{domain.EmotionJoy, []string{"happy", "excited", "thrilled", "elated", "cheerful", "delighted"}},
	{domain.EmotionSadness, []string{"sad", "down", "blue", "depressed", "melancholy", "heartbroken"}},
	{domain.EmotionAnxiety, []string{"worried", "anxious", "nervous", "stressed", "concerned", "panicked"}},
	{domain.EmotionAnger, []string{"angry", "mad", "furious", "irritated", "frustrated", "livid"}},
	{domain.EmotionFear, []string{"scared", "afraid", "terrified", "frightened", "nervous"}},
	{domain.EmotionLove, []string{"love", "adore", "cherish", "care", "affection", "devoted"}},
	{domain.EmotionExcitement, []string{"excited", "pumped", "thrilled", "eager", "enthusiastic"}},
	{domain.EmotionConfusion, []string{"confused", "puzzled", "lost", "uncertain", "unclear"}},
	{domain.EmotionGratitude, []string{"grateful", "thankful", "appreciative", "blessed"}},
	{domain.EmotionLoneliness, []string{"lonely", "alone", "isolated", "disconnected"}},
}

type topicRule struct {
	topic    domain.Topic
	keywords []string
}

var topicRules = []topicRule{
	{domain.TopicWork, []string{"work", "job", "boss", "colleague", "office", "meeting", "project", "career", "salary"}},
	{domain.TopicRelationships, []string{"friend", "family", "partner", "relationship", "dating", "love", "boyfriend", "girlfriend"}},
	{domain.TopicHealth, []string{"tired", "sick", "health", "doctor", "medicine", "exercise", "sleep", "diet", "wellness"}},
	{domain.TopicHobbies, []string{"music", "movie", "book", "game", "sport", "cooking", "art", "travel", "photography"}},
	{domain.TopicEmotions, []string{"feel", "emotion", "mood", "mental", "psychology", "therapy", "counseling"}},
	{domain.TopicEducation, []string{"school", "study", "learn", "course", "exam", "homework", "university", "college"}},
	{domain.TopicFinance, []string{"money", "budget", "expensive", "cheap", "save", "spend", "investment", "debt"}},
	{domain.TopicTechnology, []string{"computer", "phone", "app", "internet", "software", "digital", "online"}},
	{domain.TopicFuture, []string{"plan", "goal", "dream", "future", "hope", "ambition", "aspiration"}},
	{domain.TopicPast, []string{"remember", "past", "childhood", "history", "before", "used to", "nostalgia"}},
}

type intentRule struct {
	intent   domain.Intent
	patterns []string
}

// Orden de prioridad fijo; gana la primera regla que matchea.
var intentRules = []intentRule{
	{domain.IntentQuestion, []string{"what", "how", "why", "when", "where", "who", "which", "?"}},
	{domain.IntentRequestHelp, []string{"help", "assist", "support", "advice", "guidance", "suggest"}},
	{domain.IntentShareExperience, []string{"today", "yesterday", "happened", "went", "did", "experience"}},
	{domain.IntentSeekComfort, []string{"sad", "upset", "hurt", "crying", "comfort", "console"}},
	{domain.IntentExpressGratitude, []string{"thank", "grateful", "appreciate", "thankful"}},
	{domain.IntentMakePlans, []string{"plan", "want to", "going to", "will", "should", "thinking about"}},
	{domain.IntentSmallTalk, []string{"hi", "hello", "hey", "how are you", "what's up", "good morning"}},
}

var urgencyKeywords = []string{
	"emergency", "urgent", "crisis", "immediate", "now", "asap", "help",
	"serious", "critical", "important", "need", "must", "quickly",
}

// riskKeywords dispara el screening de autolesion. Ver AssessRisk.
var riskKeywords = []string{
	"suicide", "kill myself", "end it all", "no point", "better off dead",
	"can't go on", "want to die", "hopeless", "worthless", "nobody cares",
}
