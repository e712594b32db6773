package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisMarkerStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisMarkerStore guarda los marcadores de disparo en Redis con TTL, asi
// sobreviven reinicios del proceso y expiran solos. El namespace separa los
// marcadores de cada usuario, porque los IDs de recordatorio se repiten entre
// usuarios. El Cleanup explicito queda como no-op porque el TTL ya acota el
// crecimiento.
func NewRedisMarkerStore(client *redis.Client, namespace string) TriggerMarkerStore {
	if client == nil {
		return nil
	}
	prefix := "reminders:triggered:"
	if namespace != "" {
		prefix += namespace + ":"
	}
	return &redisMarkerStore{
		client: client,
		prefix: prefix,
		ttl:    48 * time.Hour,
	}
}

func (s *redisMarkerStore) key(reminderID, date string) string {
	return s.prefix + date + ":" + reminderID
}

func (s *redisMarkerStore) Mark(reminderID, date string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.key(reminderID, date), "1", s.ttl).Err()
}

func (s *redisMarkerStore) Seen(reminderID, date string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := s.client.Exists(ctx, s.key(reminderID, date)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisMarkerStore) Cleanup(_ time.Time) error {
	return nil
}
