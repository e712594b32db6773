package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"twinheart/internal/domain"
)

type MoodRepository interface {
	Create(ctx context.Context, entry domain.MoodEntry) error
	ListByUserID(ctx context.Context, userID string, since time.Time) ([]domain.MoodEntry, error)
}

type PgMoodRepository struct {
	pool *pgxpool.Pool
}

func NewPgMoodRepository(pool *pgxpool.Pool) *PgMoodRepository {
	return &PgMoodRepository{pool: pool}
}

func (r *PgMoodRepository) Create(ctx context.Context, entry domain.MoodEntry) error {
	const query = `
		INSERT INTO mood_entries (id, user_id, mood, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		string(entry.Mood),
		entry.Note,
		entry.CreatedAt,
	)
	return err
}

func (r *PgMoodRepository) ListByUserID(ctx context.Context, userID string, since time.Time) ([]domain.MoodEntry, error) {
	const query = `
		SELECT id, user_id, mood, note, created_at
		FROM mood_entries
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var (
			e    domain.MoodEntry
			mood string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &mood, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Mood = domain.Mood(mood)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
