package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"twinheart/internal/domain"
	"twinheart/internal/repository"
	"twinheart/internal/scheduler"
)

// MarkerStoreFactory entrega un marker store aislado por usuario; los IDs de
// recordatorio se repiten entre usuarios y no pueden compartir marcadores.
type MarkerStoreFactory func(userID string) scheduler.TriggerMarkerStore

// ReminderService mantiene un scheduler por usuario y persiste su estado
// despues de cada mutacion.
type ReminderService struct {
	logger  *zap.Logger
	repo    repository.ReminderRepository
	markers MarkerStoreFactory
	clock   scheduler.Clock

	mu     sync.Mutex
	scheds map[string]*scheduler.Scheduler
}

var ErrInvalidReminder = errors.New("invalid reminder")

func NewReminderService(logger *zap.Logger, repo repository.ReminderRepository, markers MarkerStoreFactory, clock scheduler.Clock) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if markers == nil {
		markers = func(string) scheduler.TriggerMarkerStore {
			return scheduler.NewMemoryMarkerStore()
		}
	}
	if clock == nil {
		clock = scheduler.SystemClock()
	}
	return &ReminderService{
		logger:  logger,
		repo:    repo,
		markers: markers,
		clock:   clock,
		scheds:  make(map[string]*scheduler.Scheduler),
	}
}

// schedulerFor carga (o crea) el scheduler del usuario. Los recordatorios
// custom guardados se restauran y los diarios se regeneran desde las
// preferencias, asi un cambio de horario de sueno queda reflejado al arrancar.
func (s *ReminderService) schedulerFor(ctx context.Context, userID string) (*scheduler.Scheduler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sched, ok := s.scheds[userID]; ok {
		return sched, nil
	}

	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrPreferencesNotFound) {
			return nil, err
		}
		prefs = domain.DefaultPreferences()
	}

	sched := scheduler.NewScheduler(s.clock, s.markers(userID), nil)

	stored, err := s.repo.GetReminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	sched.LoadReminders(stored)

	if err := sched.Initialize(prefs); err != nil {
		return nil, err
	}

	s.scheds[userID] = sched
	return sched, nil
}

func (s *ReminderService) persist(ctx context.Context, userID string, sched *scheduler.Scheduler) error {
	return s.repo.SaveReminders(ctx, userID, sched.Reminders())
}

// UpdatePreferences regenera los recordatorios automaticos del usuario.
func (s *ReminderService) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := sched.Initialize(prefs); err != nil {
		return err
	}
	if err := s.repo.SavePreferences(ctx, userID, prefs); err != nil {
		return err
	}
	return s.persist(ctx, userID, sched)
}

func (s *ReminderService) Preferences(ctx context.Context, userID string) (domain.Preferences, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	return sched.Preferences(), nil
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]domain.Reminder, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sched.Reminders(), nil
}

func (s *ReminderService) Today(ctx context.Context, userID string) ([]domain.Reminder, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sched.TodaysReminders(), nil
}

func (s *ReminderService) Overdue(ctx context.Context, userID string) ([]domain.Reminder, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sched.OverdueReminders(), nil
}

func (s *ReminderService) Upcoming(ctx context.Context, userID string) ([]domain.Reminder, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sched.UpcomingReminders(), nil
}

func (s *ReminderService) Stats(ctx context.Context, userID string) (domain.ReminderStats, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return domain.ReminderStats{}, err
	}
	return sched.Stats(), nil
}

type AddReminderInput struct {
	Type      domain.ReminderType
	Time      string
	Message   string
	Icon      string
	Recurring domain.Recurrence
}

func (s *ReminderService) Add(ctx context.Context, userID string, input AddReminderInput) (domain.Reminder, error) {
	if _, err := scheduler.ParseClockTime(input.Time); err != nil {
		return domain.Reminder{}, ErrInvalidReminder
	}
	if strings.TrimSpace(input.Message) == "" {
		return domain.Reminder{}, ErrInvalidReminder
	}

	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return domain.Reminder{}, err
	}

	reminderType := input.Type
	if reminderType == "" {
		reminderType = domain.ReminderGeneral
	}
	recurring := input.Recurring
	if recurring == "" {
		recurring = domain.RecurrenceNone
	}

	id := sched.AddReminder(domain.Reminder{
		UserID:    userID,
		Type:      reminderType,
		Time:      input.Time,
		Message:   strings.TrimSpace(input.Message),
		Icon:      input.Icon,
		Recurring: recurring,
	})
	if err := s.persist(ctx, userID, sched); err != nil {
		return domain.Reminder{}, err
	}
	return sched.ReminderByID(id)
}

// UpdateReminderInput son cambios parciales; los campos nil no se tocan.
type UpdateReminderInput struct {
	Time    *string
	Message *string
	Icon    *string
	Active  *bool
}

func (s *ReminderService) Update(ctx context.Context, userID, reminderID string, input UpdateReminderInput) (domain.Reminder, error) {
	if input.Time != nil {
		if _, err := scheduler.ParseClockTime(*input.Time); err != nil {
			return domain.Reminder{}, ErrInvalidReminder
		}
	}
	if input.Message != nil && strings.TrimSpace(*input.Message) == "" {
		return domain.Reminder{}, ErrInvalidReminder
	}

	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return domain.Reminder{}, err
	}
	updated, err := sched.UpdateReminder(reminderID, scheduler.ReminderUpdate{
		Time:    input.Time,
		Message: input.Message,
		Icon:    input.Icon,
		Active:  input.Active,
	})
	if err != nil {
		return domain.Reminder{}, err
	}
	if err := s.persist(ctx, userID, sched); err != nil {
		return domain.Reminder{}, err
	}
	return updated, nil
}

func (s *ReminderService) Remove(ctx context.Context, userID, reminderID string) error {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return err
	}
	sched.RemoveReminder(reminderID)
	return s.persist(ctx, userID, sched)
}

func (s *ReminderService) Complete(ctx context.Context, userID, reminderID string) error {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := sched.CompleteReminder(reminderID); err != nil {
		return err
	}
	return s.persist(ctx, userID, sched)
}

func (s *ReminderService) Snooze(ctx context.Context, userID, reminderID string, minutes int) (domain.Reminder, error) {
	sched, err := s.schedulerFor(ctx, userID)
	if err != nil {
		return domain.Reminder{}, err
	}
	snoozed, err := sched.SnoozeReminder(reminderID, minutes)
	if err != nil {
		return domain.Reminder{}, err
	}
	if err := s.persist(ctx, userID, sched); err != nil {
		return domain.Reminder{}, err
	}
	return snoozed, nil
}

// CheckDue revisa los schedulers cargados y devuelve los recordatorios que
// vencen ahora, por usuario. Solo mira usuarios activos en memoria: un
// usuario que nunca toco la API en este proceso no recibe notificaciones
// hasta su primer request.
func (s *ReminderService) CheckDue(ctx context.Context) (map[string][]domain.Reminder, error) {
	s.mu.Lock()
	scheds := make(map[string]*scheduler.Scheduler, len(s.scheds))
	for userID, sched := range s.scheds {
		scheds[userID] = sched
	}
	s.mu.Unlock()

	due := make(map[string][]domain.Reminder)
	for userID, sched := range scheds {
		reminders, err := sched.CheckDueReminders()
		if err != nil {
			s.logger.Warn("check due reminders failed", zap.Error(err), zap.String("user_id", userID))
			continue
		}
		if len(reminders) > 0 {
			due[userID] = reminders
		}
	}
	if ctx.Err() != nil {
		return due, ctx.Err()
	}
	return due, nil
}

// Cleanup borra marcadores viejos y recordatorios completados hace mas de
// una semana, por cada scheduler cargado.
func (s *ReminderService) Cleanup(ctx context.Context) {
	s.mu.Lock()
	scheds := make(map[string]*scheduler.Scheduler, len(s.scheds))
	for userID, sched := range s.scheds {
		scheds[userID] = sched
	}
	s.mu.Unlock()

	for userID, sched := range scheds {
		if err := sched.CleanupTriggeredMarkers(); err != nil {
			s.logger.Warn("cleanup markers failed", zap.Error(err), zap.String("user_id", userID))
		}
		sched.CleanupCompletedReminders(7)
		if err := s.persist(ctx, userID, sched); err != nil {
			s.logger.Warn("persist after cleanup failed", zap.Error(err), zap.String("user_id", userID))
		}
	}
}
