package engine

import (
	"testing"

	"twinheart/internal/domain"
)

func TestClassifySentiment(t *testing.T) {
	if got := Classify("I feel happy and great today").Sentiment; got != domain.SentimentPositive {
		t.Fatalf("expected positive sentiment, got %q", got)
	}
	if got := Classify("everything is terrible and I hate it").Sentiment; got != domain.SentimentNegative {
		t.Fatalf("expected negative sentiment, got %q", got)
	}
	// Un hit positivo y uno negativo se cancelan.
	if got := Classify("it was good but also bad").Sentiment; got != domain.SentimentNeutral {
		t.Fatalf("expected neutral sentiment, got %q", got)
	}
}

func TestClassifyEmotions(t *testing.T) {
	analysis := Classify("I'm feeling really down")
	if !analysis.HasEmotion(domain.EmotionSadness) {
		t.Fatalf("expected sadness in %v", analysis.Emotions)
	}

	analysis = Classify("I'm worried and scared about tomorrow")
	if !analysis.HasEmotion(domain.EmotionAnxiety) || !analysis.HasEmotion(domain.EmotionFear) {
		t.Fatalf("expected anxiety and fear, got %v", analysis.Emotions)
	}
}

func TestClassifyTopics(t *testing.T) {
	analysis := Classify("my boss rejected the project and I can't sleep")
	if !analysis.HasTopic(domain.TopicWork) {
		t.Fatalf("expected work topic, got %v", analysis.Topics)
	}
	if !analysis.HasTopic(domain.TopicHealth) {
		t.Fatalf("expected health topic (sleep), got %v", analysis.Topics)
	}
}

func TestClassifyIntentPriorityOrder(t *testing.T) {
	// "?" matchea question aunque tambien aparezca "help".
	if got := Classify("can you help me with this?").Intent; got != domain.IntentQuestion {
		t.Fatalf("expected question, got %q", got)
	}
	if got := Classify("I really could use some advice").Intent; got != domain.IntentRequestHelp {
		t.Fatalf("expected request_help, got %q", got)
	}
	if got := Classify("something strange happened at the gym").Intent; got != domain.IntentShareExperience {
		t.Fatalf("expected share_experience, got %q", got)
	}
	if got := Classify("I just got back from running errands").Intent; got != domain.IntentGeneralConversation {
		t.Fatalf("expected general_conversation, got %q", got)
	}
}

func TestClassifyUrgency(t *testing.T) {
	if got := Classify("this is urgent, it is a crisis").Urgency; got != domain.UrgencyHigh {
		t.Fatalf("expected high urgency, got %q", got)
	}
	if got := Classify("it feels serious to me").Urgency; got != domain.UrgencyMedium {
		t.Fatalf("expected medium urgency, got %q", got)
	}
	if got := Classify("a calm ordinary afternoon").Urgency; got != domain.UrgencyLow {
		t.Fatalf("expected low urgency, got %q", got)
	}
}

func TestClassifyEmptyMessage(t *testing.T) {
	analysis := Classify("   ")
	if analysis.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral, got %q", analysis.Sentiment)
	}
	if len(analysis.Emotions) != 0 || len(analysis.Topics) != 0 {
		t.Fatalf("expected no emotions/topics, got %v / %v", analysis.Emotions, analysis.Topics)
	}
	if analysis.Intent != domain.IntentGeneralConversation {
		t.Fatalf("expected general_conversation, got %q", analysis.Intent)
	}
	if analysis.Urgency != domain.UrgencyLow {
		t.Fatalf("expected low urgency, got %q", analysis.Urgency)
	}
}

func TestClassifyComplexity(t *testing.T) {
	if got := Classify("hi there").Complexity; got != domain.ComplexityLow {
		t.Fatalf("expected low complexity, got %q", got)
	}

	long := "this single sentence keeps going and going without any punctuation at all which pushes the average words per sentence well past the threshold"
	if got := Classify(long).Complexity; got != domain.ComplexityHigh {
		t.Fatalf("expected high complexity, got %q", got)
	}
}
