package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"twinheart/internal/domain"
)

// NotifyFunc recibe los recordatorios vencidos de cada chequeo.
type NotifyFunc func(ctx context.Context, due []domain.Reminder)

// Loop hace polling del scheduler: un chequeo inmediato al arrancar y luego
// uno por tick. La fuente de ticks es inyectable para tests deterministas.
type Loop struct {
	sched    *Scheduler
	interval time.Duration
	notify   NotifyFunc
	logger   *zap.Logger
}

func NewLoop(sched *Scheduler, interval time.Duration, notify NotifyFunc, logger *zap.Logger) *Loop {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		sched:    sched,
		interval: interval,
		notify:   notify,
		logger:   logger,
	}
}

// Run bloquea hasta que el contexto se cancele.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	l.runWithTicks(ctx, ticker.C)
}

func (l *Loop) runWithTicks(ctx context.Context, ticks <-chan time.Time) {
	l.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			l.check(ctx)
			if err := l.sched.CleanupTriggeredMarkers(); err != nil {
				l.logger.Warn("trigger marker cleanup failed", zap.Error(err))
			}
		}
	}
}

func (l *Loop) check(ctx context.Context) {
	due, err := l.sched.CheckDueReminders()
	if err != nil {
		l.logger.Warn("due reminder check failed", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}
	l.logger.Info("reminders due", zap.Int("count", len(due)))
	if l.notify != nil {
		l.notify(ctx, due)
	}
}
