package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"twinheart/internal/domain"
)

// Engine compone respuestas del companion a partir del analisis por keywords
// y de la memoria del usuario. La unica fuente de aleatoriedad es el rng
// inyectado, asi los tests fijan la semilla y el output es determinista.
// El mutex serializa el rng entre handlers concurrentes.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine crea un engine con el rng dado; nil usa una semilla de reloj.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// GenerateResponse arma la respuesta: plantilla base aleatoria por
// (personalidad, sentimiento), frases de apoyo por emocion, una referencia de
// memoria, a lo sumo un follow-up y flair con probabilidad 0.3.
// Tambien muta memory: generacion y actualizacion van acopladas.
func (e *Engine) GenerateResponse(message string, analysis domain.MessageAnalysis, convCtx domain.ConversationContext, memory *domain.UserMemory) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var sb strings.Builder

	sb.WriteString(e.baseTemplate(convCtx.Personality, analysis.Sentiment))

	for _, rule := range supportRules {
		if analysis.HasEmotion(rule.emotion) {
			sb.WriteString(rule.message)
		}
	}

	if ref := memoryReference(message, convCtx, memory); ref != "" {
		sb.WriteString(ref)
	}

	if followUp := followUpFor(analysis); followUp != "" {
		sb.WriteString(followUp)
	}

	if e.rng.Float64() < 0.3 {
		flair := flairFor(convCtx.Personality)
		sb.WriteString(flair[e.rng.Intn(len(flair))])
	}

	UpdateMemory(memory, analysis, convCtx.TimeOfDay)

	return sb.String()
}

func (e *Engine) baseTemplate(p domain.Personality, s domain.Sentiment) string {
	pool := poolFor(p)
	var options []string
	switch s {
	case domain.SentimentPositive:
		options = pool.positive
	case domain.SentimentNegative:
		options = pool.negative
	default:
		options = pool.neutral
	}
	return options[e.rng.Intn(len(options))]
}

// memoryReference devuelve una sola frase nombrando el primer interes o tema
// recordado que aparezca en el mensaje.
func memoryReference(message string, convCtx domain.ConversationContext, memory *domain.UserMemory) string {
	lower := strings.ToLower(message)

	for _, interest := range convCtx.UserInterests {
		if interest != "" && strings.Contains(lower, strings.ToLower(interest)) {
			return fmt.Sprintf(" I remember how much you love %s! ", interest)
		}
	}

	if memory != nil {
		for _, topic := range memory.TopicsOfInterest {
			if topic != "" && strings.Contains(lower, strings.ToLower(topic)) {
				return fmt.Sprintf(" This reminds me of when we talked about %s before. ", topic)
			}
		}
	}

	return ""
}

// followUpFor aplica solo la primera regla que matchea.
func followUpFor(analysis domain.MessageAnalysis) string {
	switch {
	case analysis.Intent == domain.IntentShareExperience:
		return " How did that make you feel? I'd love to hear more about your experience. 💭"
	case analysis.Intent == domain.IntentSeekComfort:
		return " Would you like to talk about what's troubling you? Sometimes sharing helps. 🤗"
	case analysis.HasTopic(domain.TopicFuture):
		return " What are you most excited about regarding this? 🌟"
	case analysis.Complexity == domain.ComplexityHigh:
		return " That's quite a lot to process. Which part would you like to focus on first? 🎯"
	}
	return ""
}

// UpdateMemory aplica la mutacion acoplada a un turno: humor reciente,
// ultimas emociones, temas nuevos (tope 20, descartando los mas viejos) y el
// histograma de horas de comunicacion.
func UpdateMemory(memory *domain.UserMemory, analysis domain.MessageAnalysis, hour int) {
	if memory == nil {
		return
	}

	memory.EmotionalPatterns.RecentMood = analysis.Sentiment
	memory.EmotionalPatterns.LastEmotions = analysis.Emotions

	for _, topic := range analysis.Topics {
		if !memory.Remembers(string(topic)) {
			memory.TopicsOfInterest = append(memory.TopicsOfInterest, string(topic))
		}
	}
	if len(memory.TopicsOfInterest) > domain.MaxRememberedTopics {
		memory.TopicsOfInterest = memory.TopicsOfInterest[len(memory.TopicsOfInterest)-domain.MaxRememberedTopics:]
	}

	if memory.CommunicationTimes == nil {
		memory.CommunicationTimes = make(map[int]int)
	}
	if hour >= 0 && hour <= 23 {
		memory.CommunicationTimes[hour]++
	}

	memory.UpdatedAt = time.Now().UTC()
}

// TimeBucket mapea la hora a la franja usada por los mensajes proactivos.
func TimeBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

// ProactiveMessage es un lookup puro por (personalidad, franja horaria).
func ProactiveMessage(p domain.Personality, hour int, userName string) string {
	if strings.TrimSpace(userName) == "" {
		userName = "friend"
	}
	pool := proactiveFor(p)

	var template string
	switch TimeBucket(hour) {
	case "morning":
		template = pool.morning
	case "afternoon":
		template = pool.afternoon
	case "evening":
		template = pool.evening
	default:
		template = pool.night
	}
	return fmt.Sprintf(template, userName)
}

// Insights resume patrones aprendidos para la vista de perfil.
func Insights(memory *domain.UserMemory) []string {
	if memory == nil {
		return nil
	}
	var insights []string

	if len(memory.CommunicationTimes) > 0 {
		hours := make([]int, 0, len(memory.CommunicationTimes))
		for h := range memory.CommunicationTimes {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		best := hours[0]
		for _, h := range hours {
			if memory.CommunicationTimes[h] > memory.CommunicationTimes[best] {
				best = h
			}
		}
		insights = append(insights, fmt.Sprintf("You tend to be most talkative around %d:00. 🕐", best))
	}

	if len(memory.EmotionalPatterns.LastEmotions) > 0 {
		labels := make([]string, 0, len(memory.EmotionalPatterns.LastEmotions))
		for _, e := range memory.EmotionalPatterns.LastEmotions {
			labels = append(labels, string(e))
		}
		insights = append(insights, fmt.Sprintf("I've noticed you often experience %s feelings. 💭", strings.Join(labels, " and ")))
	}

	if len(memory.TopicsOfInterest) > 0 {
		top := memory.TopicsOfInterest
		if len(top) > 3 {
			top = top[len(top)-3:]
		}
		insights = append(insights, fmt.Sprintf("You seem to enjoy discussing %s. 🌟", strings.Join(top, ", ")))
	}

	return insights
}
