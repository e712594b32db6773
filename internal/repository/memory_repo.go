package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"twinheart/internal/domain"
)

// ErrMemoryNotFound indica que el usuario todavia no tiene memoria guardada.
var ErrMemoryNotFound = errors.New("user memory not found")

// MemoryRepository persiste la memoria evolutiva del companion y los
// snapshots emocionales por turno.
type MemoryRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserMemory, error)
	Save(ctx context.Context, memory *domain.UserMemory) error
	CreateSnapshot(ctx context.Context, snapshot domain.MemorySnapshot) error
	SearchSimilar(ctx context.Context, userID string, vector pgvector.Vector, k int) ([]domain.MemorySnapshot, error)
}

type PgMemoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgMemoryRepository(pool *pgxpool.Pool) *PgMemoryRepository {
	return &PgMemoryRepository{pool: pool}
}

func (r *PgMemoryRepository) Get(ctx context.Context, userID string) (*domain.UserMemory, error) {
	const query = `SELECT data FROM user_memories WHERE user_id = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMemoryNotFound
	}
	if err != nil {
		return nil, err
	}

	memory := domain.NewUserMemory(userID)
	if err := json.Unmarshal(raw, memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func (r *PgMemoryRepository) Save(ctx context.Context, memory *domain.UserMemory) error {
	const query = `
		INSERT INTO user_memories (user_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = $2, updated_at = $3
	`
	raw, err := json.Marshal(memory)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, memory.UserID, raw, memory.UpdatedAt)
	return err
}

func (r *PgMemoryRepository) CreateSnapshot(ctx context.Context, snapshot domain.MemorySnapshot) error {
	const query = `
		INSERT INTO memory_snapshots (id, user_id, sentiment, emotions, topics, emotion_vector, captured_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		snapshot.ID,
		snapshot.UserID,
		string(snapshot.Sentiment),
		emotionStrings(snapshot.Emotions),
		topicStrings(snapshot.Topics),
		snapshot.EmotionVector,
		snapshot.CapturedAt,
		snapshot.CreatedAt,
	)
	return err
}

func (r *PgMemoryRepository) SearchSimilar(ctx context.Context, userID string, vector pgvector.Vector, k int) ([]domain.MemorySnapshot, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT id, user_id, sentiment, emotions, topics, emotion_vector, captured_at, created_at
		FROM memory_snapshots
		WHERE user_id = $1
		ORDER BY emotion_vector <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, vector, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows pgxRows) ([]domain.MemorySnapshot, error) {
	var snapshots []domain.MemorySnapshot
	for rows.Next() {
		var (
			s         domain.MemorySnapshot
			sentiment string
			emotions  []string
			topics    []string
		)
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&sentiment,
			&emotions,
			&topics,
			&s.EmotionVector,
			&s.CapturedAt,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Sentiment = domain.Sentiment(sentiment)
		for _, e := range emotions {
			s.Emotions = append(s.Emotions, domain.Emotion(e))
		}
		for _, t := range topics {
			s.Topics = append(s.Topics, domain.Topic(t))
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func emotionStrings(emotions []domain.Emotion) []string {
	out := make([]string, 0, len(emotions))
	for _, e := range emotions {
		out = append(out, string(e))
	}
	return out
}

func topicStrings(topics []domain.Topic) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = append(out, string(t))
	}
	return out
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
