package domain

// RiskLevel clasifica el resultado del screening de autolesion.
type RiskLevel string

const (
	RiskLow  RiskLevel = "low"
	RiskHigh RiskLevel = "high"
)

// RiskAssessment es el resultado del screening por keywords. El core nunca
// bloquea el mensaje: el caller decide si muestra el banner de recursos.
type RiskAssessment struct {
	Level                RiskLevel `json:"level"`
	RequiresIntervention bool      `json:"requires_intervention"`
	Resources            []string  `json:"resources,omitempty"`
	Message              string    `json:"message,omitempty"`
}
