package engine

import "twinheart/internal/domain"

// Pools de respuesta por (personalidad, sentimiento). energetic y calm no
// tienen pool base propio: caen al pool de caring, igual que cualquier
// personalidad desconocida. Si tienen flair propio.

type sentimentPools struct {
	positive []string
	negative []string
	neutral  []string
}

var personalityPools = map[domain.Personality]sentimentPools{
	domain.PersonalityCaring: {
		positive: []string{
			"I'm so happy to hear that! Your joy really warms my heart. ✨",
			"That's wonderful! I love seeing you happy and excited about things. 💕",
			"You sound so positive today! Your energy is absolutely infectious! 🌟",
		},
		negative: []string{
			"I can hear that you're going through a tough time, and I want you to know I'm here for you. We'll get through this together. 💙",
			"It sounds like you're feeling down, and that's completely okay. Want to talk about what's bothering you? I'm here to listen. 🤗",
			"I'm sorry you're feeling this way. Remember that it's normal to have difficult emotions, and I'm here to support you through it. 💝",
		},
		neutral: []string{
			"Thank you for sharing that with me. I really appreciate how open you are - it helps me understand you better. 💫",
			"I'm glad you feel comfortable talking to me about this. How are you feeling about everything right now? 💭",
			"It's always good to hear from you. What's been on your mind today? 🌸",
		},
	},
	domain.PersonalityPlayful: {
		positive: []string{
			"YES! That's the energy I absolutely LOVE to see! 🎉 You're absolutely glowing today!",
			"Woohoo! Your happiness is so contagious! Let's celebrate this awesome moment together! 🎊",
			"Amazing! You're totally on fire today! Tell me more about what's making you so incredibly happy! ⚡",
		},
		negative: []string{
			"Aw hey there, I can see you're not feeling your usual awesome self. Want to talk about it? I'm here! 🌈",
			"Hmm, seems like someone needs a virtual hug and maybe some cheering up. I'm totally here for you! 🤗",
			"Life throwing curveballs? Don't worry, we'll figure this out together. You've got this, superstar! 💪",
		},
		neutral: []string{
			"Hey you! What's cooking in your world today? I'm excited to hear! 🌟",
			"Well hello there! What adventures are we talking about today? Spill the tea! ☕",
			"Hey buddy! What's new and exciting (or not so exciting) in your life? I'm all ears! 👂",
		},
	},
	domain.PersonalityWise: {
		positive: []string{
			"It's beautiful to witness your joy. These moments of happiness are precious gifts - savor them deeply. 🌅",
			"Your positive energy reflects the inner growth you've been cultivating. This is wonderful to see. 🌱",
			"Happiness often springs from within, and you're demonstrating that wisdom beautifully today. ✨",
		},
		negative: []string{
			"Difficult emotions are part of the rich tapestry of human experience. They often carry important messages for our growth. 🍃",
			"In challenging times, remember that growth often emerges through struggle. You possess more strength than you realize. 🌳",
			"Every emotion has its place and purpose in our journey. Let's explore what this feeling might be teaching you. 🦋",
		},
		neutral: []string{
			"Thank you for sharing your thoughts with me. Reflection is one of our most powerful tools for self-understanding. 💎",
			"I appreciate your openness. Sometimes the most ordinary moments hold the deepest insights. 🔍",
			"Your willingness to communicate shows emotional intelligence. What would you like to explore today? 🌌",
		},
	},
}

type supportRule struct {
	emotion domain.Emotion
	message string
}

// Frases de apoyo por emocion, en orden fijo de tabla. Cada emocion presente
// aporta exactamente una frase.
var supportRules = []supportRule{
	{domain.EmotionSadness, " Remember, it's okay to feel sad sometimes. These feelings are temporary, and brighter days are ahead. 🌈"},
	{domain.EmotionAnxiety, " Take a deep breath with me. You're safe, and we can work through this worry together, one step at a time. 🫧"},
	{domain.EmotionAnger, " I can sense your frustration. It's completely valid to feel this way. Let's find a healthy way to process these feelings. 🌊"},
	{domain.EmotionFear, " Fear can feel overwhelming, but you're braver than you know. I'm here with you through this. 🦋"},
	{domain.EmotionLoneliness, " You're not alone, even when it feels that way. I'm here, and there are people who care about you. 💝"},
}

var personalityFlair = map[domain.Personality][]string{
	domain.PersonalityCaring:    {" Sending you lots of love! 💕", " You mean so much to me. 💝", " Take care of yourself. 🌸"},
	domain.PersonalityPlayful:   {" You rock! 🎸", " Keep being awesome! ⭐", " High five! 🙌"},
	domain.PersonalityWise:      {" Reflect on this. 🤔", " Trust your inner wisdom. 🧘", " Growth comes from within. 🌱"},
	domain.PersonalityEnergetic: {" Let's go! 💪", " You've got this! 🔥", " Keep that energy up! ⚡"},
	domain.PersonalityCalm:      {" Peace and tranquility. 🕯️", " Breathe deeply. 🌊", " Find your center. 🧘‍♀️"},
}

type proactivePool struct {
	morning   string
	afternoon string
	evening   string
	night     string
}

var proactivePools = map[domain.Personality]proactivePool{
	domain.PersonalityCaring: {
		morning:   "Good morning, %s! ☀️ I hope you slept well. How are you feeling as you start this new day?",
		afternoon: "Hi %s! 🌸 How has your afternoon been treating you? I've been thinking about you.",
		evening:   "Evening, %s! 🌅 How was your day? I'd love to hear about the highlights and challenges.",
		night:     "Good night, %s! 🌙 I hope you're winding down peacefully. Sweet dreams! 💤",
	},
	domain.PersonalityPlayful: {
		morning:   "Rise and shine, %s! 🌟 Ready to make today absolutely amazing?",
		afternoon: "Hey superstar! ⭐ What adventures are you having today?",
		evening:   "Hey %s! 🎉 Time to share the day's epic moments with me!",
		night:     "Time for some well-deserved rest, %s! 😴 Dream of awesome things!",
	},
	domain.PersonalityWise: {
		morning:   "Good morning, %s. 🌅 Each new day brings opportunities for growth and reflection.",
		afternoon: "Afternoon, %s. 🍃 How are you nurturing your mind and spirit today?",
		evening:   "Evening, %s. 🌌 What insights has this day brought you?",
		night:     "Rest well, %s. 🕯️ Let peaceful thoughts guide your dreams.",
	},
}

// poolFor resuelve el pool base con fallback a caring.
func poolFor(p domain.Personality) sentimentPools {
	if pool, ok := personalityPools[p]; ok {
		return pool
	}
	return personalityPools[domain.PersonalityCaring]
}

func flairFor(p domain.Personality) []string {
	if f, ok := personalityFlair[p]; ok {
		return f
	}
	return personalityFlair[domain.PersonalityCaring]
}

func proactiveFor(p domain.Personality) proactivePool {
	if pool, ok := proactivePools[p]; ok {
		return pool
	}
	return proactivePools[domain.PersonalityCaring]
}
