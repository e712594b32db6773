package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"twinheart/internal/domain"
)

// ErrPreferencesNotFound indica que el usuario no completo el onboarding.
var ErrPreferencesNotFound = errors.New("reminder preferences not found")

// ReminderRepository persiste el estado del scheduler entre reinicios:
// los recordatorios materializados y las preferencias que los derivan.
type ReminderRepository interface {
	SaveReminders(ctx context.Context, userID string, reminders []domain.Reminder) error
	GetReminders(ctx context.Context, userID string) ([]domain.Reminder, error)
	SavePreferences(ctx context.Context, userID string, prefs domain.Preferences) error
	GetPreferences(ctx context.Context, userID string) (domain.Preferences, error)
}

type PgReminderRepository struct {
	pool *pgxpool.Pool
}

func NewPgReminderRepository(pool *pgxpool.Pool) *PgReminderRepository {
	return &PgReminderRepository{pool: pool}
}

func (r *PgReminderRepository) SaveReminders(ctx context.Context, userID string, reminders []domain.Reminder) error {
	const query = `
		INSERT INTO user_reminders (user_id, reminders, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET reminders = $2, updated_at = $3
	`
	raw, err := json.Marshal(reminders)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, userID, raw, time.Now().UTC())
	return err
}

func (r *PgReminderRepository) GetReminders(ctx context.Context, userID string) ([]domain.Reminder, error) {
	const query = `SELECT reminders FROM user_reminders WHERE user_id = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reminders []domain.Reminder
	if err := json.Unmarshal(raw, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *PgReminderRepository) SavePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	const query = `
		INSERT INTO user_preferences (user_id, preferences, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET preferences = $2, updated_at = $3
	`
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, userID, raw, time.Now().UTC())
	return err
}

func (r *PgReminderRepository) GetPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	const query = `SELECT preferences FROM user_preferences WHERE user_id = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Preferences{}, ErrPreferencesNotFound
	}
	if err != nil {
		return domain.Preferences{}, err
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}
