package engine

import (
	"strings"

	"twinheart/internal/domain"
)

var crisisResources = []string{
	"National Suicide Prevention Lifeline: 988",
	"Crisis Text Line: Text HOME to 741741",
	"International Association for Suicide Prevention: https://www.iasp.info/resources/Crisis_Centres/",
}

const crisisMessage = "If you're having thoughts of self-harm, please reach out for immediate help. You matter and support is available."

// AssessRisk hace el screening de autolesion por keywords. Nunca bloquea el
// mensaje: devuelve el nivel y los recursos para que el caller muestre el
// banner cuando corresponda.
func AssessRisk(message string) domain.RiskAssessment {
	lower := strings.ToLower(message)
	for _, keyword := range riskKeywords {
		if strings.Contains(lower, keyword) {
			return domain.RiskAssessment{
				Level:                domain.RiskHigh,
				RequiresIntervention: true,
				Resources:            crisisResources,
				Message:              crisisMessage,
			}
		}
	}
	return domain.RiskAssessment{Level: domain.RiskLow}
}
