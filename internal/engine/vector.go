package engine

import (
	pgvector "github.com/pgvector/pgvector-go"

	"twinheart/internal/domain"
)

// EmotionVectorDim es la dimension fija del vector emocional (una componente
// por emocion, en el orden de emotionRules).
const EmotionVectorDim = 10

// EmotionVector proyecta el analisis a un vector binario de emociones para
// busqueda de snapshots con perfil emocional parecido.
func EmotionVector(analysis domain.MessageAnalysis) pgvector.Vector {
	values := make([]float32, EmotionVectorDim)
	for i, rule := range emotionRules {
		if analysis.HasEmotion(rule.emotion) {
			values[i] = 1
		}
	}
	return pgvector.NewVector(values)
}
