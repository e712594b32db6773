package engine

import (
	"strings"

	"twinheart/internal/domain"
)

// Classify clasifica un mensaje contra las tablas de keywords. Es una funcion
// pura: sin I/O, sin estado, total sobre cualquier string (incluido vacio).
func Classify(message string) domain.MessageAnalysis {
	lower := strings.ToLower(message)

	return domain.MessageAnalysis{
		Sentiment:  classifySentiment(lower),
		Emotions:   detectEmotions(lower),
		Topics:     detectTopics(lower),
		Intent:     detectIntent(lower),
		Urgency:    assessUrgency(lower),
		Complexity: assessComplexity(message),
	}
}

func classifySentiment(lower string) domain.Sentiment {
	score := 0
	for _, word := range positiveKeywords {
		if strings.Contains(lower, word) {
			score++
		}
	}
	for _, word := range negativeKeywords {
		if strings.Contains(lower, word) {
			score--
		}
	}
	switch {
	case score > 0:
		return domain.SentimentPositive
	case score < 0:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func detectEmotions(lower string) []domain.Emotion {
	var detected []domain.Emotion
	for _, rule := range emotionRules {
		if containsAny(lower, rule.keywords) {
			detected = append(detected, rule.emotion)
		}
	}
	return detected
}

func detectTopics(lower string) []domain.Topic {
	var detected []domain.Topic
	for _, rule := range topicRules {
		if containsAny(lower, rule.keywords) {
			detected = append(detected, rule.topic)
		}
	}
	return detected
}

func detectIntent(lower string) domain.Intent {
	for _, rule := range intentRules {
		if containsAny(lower, rule.patterns) {
			return rule.intent
		}
	}
	return domain.IntentGeneralConversation
}

func assessUrgency(lower string) domain.Urgency {
	count := 0
	for _, word := range urgencyKeywords {
		if strings.Contains(lower, word) {
			count++
		}
	}
	switch {
	case count >= 2:
		return domain.UrgencyHigh
	case count == 1:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}

func assessComplexity(message string) domain.Complexity {
	words := len(strings.Fields(message))
	sentences := countSentences(message)
	if sentences == 0 {
		sentences = 1
	}
	avg := float64(words) / float64(sentences)

	switch {
	case words > 50 || avg > 15:
		return domain.ComplexityHigh
	case words > 20 || avg > 8:
		return domain.ComplexityMedium
	default:
		return domain.ComplexityLow
	}
}

func countSentences(message string) int {
	count := 0
	for _, part := range strings.FieldsFunc(message, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
