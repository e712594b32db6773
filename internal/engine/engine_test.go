package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"twinheart/internal/domain"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestGenerateResponseBaseTemplateBelongsToPool(t *testing.T) {
	convCtx := domain.ConversationContext{Personality: domain.PersonalityPlayful, TimeOfDay: 10}

	for seed := int64(0); seed < 10; seed++ {
		e := newTestEngine(seed)
		memory := domain.NewUserMemory("u1")
		analysis := Classify("I feel happy and great today")

		response := e.GenerateResponse("I feel happy and great today", analysis, convCtx, memory)

		found := false
		for _, template := range personalityPools[domain.PersonalityPlayful].positive {
			if strings.HasPrefix(response, template) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("seed %d: response %q does not start with a playful positive template", seed, response)
		}
	}
}

func TestGenerateResponseDeterministicClauses(t *testing.T) {
	// Cambiar la semilla puede cambiar la base y el flair, pero las clausulas
	// de apoyo/referencia/follow-up dependen solo del analisis y la memoria.
	message := "I went to the concert yesterday and now I feel sad and lonely"
	convCtx := domain.ConversationContext{
		Personality:   domain.PersonalityCaring,
		TimeOfDay:     21,
		UserInterests: []string{"concert"},
	}
	analysis := Classify(message)

	for _, seed := range []int64{1, 99} {
		e := newTestEngine(seed)
		memory := domain.NewUserMemory("u1")
		response := e.GenerateResponse(message, analysis, convCtx, memory)

		for _, rule := range supportRules {
			if rule.emotion == domain.EmotionSadness || rule.emotion == domain.EmotionLoneliness {
				if !strings.Contains(response, rule.message) {
					t.Fatalf("seed %d: missing support clause for %s in %q", seed, rule.emotion, response)
				}
			}
		}
		if !strings.Contains(response, "I remember how much you love concert!") {
			t.Fatalf("seed %d: missing interest reference in %q", seed, response)
		}
		if !strings.Contains(response, "How did that make you feel?") {
			t.Fatalf("seed %d: missing share_experience follow-up in %q", seed, response)
		}
	}
}

func TestGenerateResponseSingleFollowUp(t *testing.T) {
	// seek_comfort gana sobre el topic future: solo un follow-up.
	message := "I'm upset about my future plan"
	analysis := Classify(message)
	if analysis.Intent != domain.IntentSeekComfort {
		t.Fatalf("expected seek_comfort, got %q", analysis.Intent)
	}

	e := newTestEngine(7)
	memory := domain.NewUserMemory("u1")
	response := e.GenerateResponse(message, analysis, domain.ConversationContext{Personality: domain.PersonalityWise}, memory)

	if !strings.Contains(response, "Would you like to talk about what's troubling you?") {
		t.Fatalf("missing seek_comfort follow-up in %q", response)
	}
	if strings.Contains(response, "What are you most excited about") {
		t.Fatalf("future follow-up should not fire after seek_comfort: %q", response)
	}
}

func TestGenerateResponseUnknownPersonalityFallsBackToCaring(t *testing.T) {
	e := newTestEngine(3)
	memory := domain.NewUserMemory("u1")
	analysis := Classify("just an ordinary message")

	response := e.GenerateResponse("just an ordinary message", analysis, domain.ConversationContext{Personality: "robotic"}, memory)

	found := false
	for _, template := range personalityPools[domain.PersonalityCaring].neutral {
		if strings.HasPrefix(response, template) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected caring neutral template, got %q", response)
	}
}

func TestGenerateResponseMutatesMemory(t *testing.T) {
	e := newTestEngine(5)
	memory := domain.NewUserMemory("u1")
	message := "I am so happy about my job"
	analysis := Classify(message)

	e.GenerateResponse(message, analysis, domain.ConversationContext{Personality: domain.PersonalityCaring, TimeOfDay: 14}, memory)

	if memory.EmotionalPatterns.RecentMood != domain.SentimentPositive {
		t.Fatalf("expected recent mood positive, got %q", memory.EmotionalPatterns.RecentMood)
	}
	if !memory.Remembers(string(domain.TopicWork)) {
		t.Fatalf("expected work topic remembered, got %v", memory.TopicsOfInterest)
	}
	if memory.CommunicationTimes[14] != 1 {
		t.Fatalf("expected hour 14 counted once, got %v", memory.CommunicationTimes)
	}
}

func TestUpdateMemoryCapsTopicsAtTwenty(t *testing.T) {
	memory := domain.NewUserMemory("u1")

	for i := 0; i < 25; i++ {
		analysis := domain.MessageAnalysis{
			Sentiment: domain.SentimentNeutral,
			Topics:    []domain.Topic{domain.Topic(fmt.Sprintf("topic-%02d", i))},
		}
		UpdateMemory(memory, analysis, 9)
	}

	if len(memory.TopicsOfInterest) != domain.MaxRememberedTopics {
		t.Fatalf("expected %d topics, got %d", domain.MaxRememberedTopics, len(memory.TopicsOfInterest))
	}
	for i := 0; i < 5; i++ {
		if memory.Remembers(fmt.Sprintf("topic-%02d", i)) {
			t.Fatalf("expected topic-%02d evicted", i)
		}
	}
	if !memory.Remembers("topic-24") {
		t.Fatalf("expected newest topic kept, got %v", memory.TopicsOfInterest)
	}
	if memory.CommunicationTimes[9] != 25 {
		t.Fatalf("expected 25 messages at hour 9, got %d", memory.CommunicationTimes[9])
	}
}

func TestProactiveMessageBuckets(t *testing.T) {
	cases := map[int]string{
		6:  "Good morning",
		13: "afternoon",
		19: "Evening",
		23: "Good night",
		2:  "Good night",
	}
	for hour, fragment := range cases {
		msg := ProactiveMessage(domain.PersonalityCaring, hour, "Ana")
		if !strings.Contains(msg, fragment) {
			t.Fatalf("hour %d: expected %q in %q", hour, fragment, msg)
		}
		if !strings.Contains(msg, "Ana") {
			t.Fatalf("hour %d: expected user name in %q", hour, msg)
		}
	}

	// Personalidad desconocida cae al pool caring y nombre vacio usa "friend".
	msg := ProactiveMessage("unknown", 8, "")
	if !strings.Contains(msg, "friend") || !strings.Contains(msg, "Good morning") {
		t.Fatalf("unexpected fallback proactive message %q", msg)
	}
}

func TestInsights(t *testing.T) {
	memory := domain.NewUserMemory("u1")
	if got := Insights(memory); len(got) != 0 {
		t.Fatalf("expected no insights for empty memory, got %v", got)
	}

	memory.CommunicationTimes = map[int]int{9: 2, 21: 5}
	memory.EmotionalPatterns.LastEmotions = []domain.Emotion{domain.EmotionJoy, domain.EmotionGratitude}
	memory.TopicsOfInterest = []string{"work", "music", "health", "travel"}

	insights := Insights(memory)
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %v", insights)
	}
	if !strings.Contains(insights[0], "21:00") {
		t.Fatalf("expected most active hour 21, got %q", insights[0])
	}
	if !strings.Contains(insights[1], "joy and gratitude") {
		t.Fatalf("unexpected emotions insight %q", insights[1])
	}
	if !strings.Contains(insights[2], "music, health, travel") {
		t.Fatalf("expected last three topics, got %q", insights[2])
	}
}
