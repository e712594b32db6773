package scheduler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"twinheart/internal/domain"
)

// dueTolerance es la ventana de disparo alrededor de la hora programada
// (~1 minuto en horas flotantes).
const dueTolerance = 1.0 / 60

var (
	// ErrInvalidSchedule indica preferencias con horarios malformados.
	ErrInvalidSchedule = errors.New("invalid sleep schedule")
	// ErrReminderNotFound indica un id inexistente.
	ErrReminderNotFound = errors.New("reminder not found")
)

var hydrationMessages = []string{
	"Time to hydrate! Your body needs water to function at its best.",
	"Drink up! Staying hydrated helps your mood and energy levels.",
	"Water break! Your brain is about 75% water - keep it happy!",
	"Hydration reminder: A glass of water can boost your focus and alertness.",
	"Your body is calling for water! Take a refreshing sip.",
	"Time for H2O! Your skin, joints, and organs will thank you.",
	"Water time! Staying hydrated helps regulate your body temperature.",
	"Drink some water! It helps transport nutrients throughout your body.",
}

// Scheduler deriva recordatorios diarios del horario de sueno y decide cuales
// estan vencidos en cada chequeo. No notifica ni persiste: devuelve datos y el
// caller se encarga del resto. El mutex existe porque el loop de polling y los
// handlers HTTP comparten la instancia.
type Scheduler struct {
	clock   Clock
	markers TriggerMarkerStore
	rng     *rand.Rand

	mu        sync.Mutex
	prefs     domain.Preferences
	reminders []domain.Reminder
}

// NewScheduler arma un scheduler con dependencias inyectadas; clock/markers
// nil usan las implementaciones por defecto y rng nil una semilla de reloj.
func NewScheduler(clock Clock, markers TriggerMarkerStore, rng *rand.Rand) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	if markers == nil {
		markers = NewMemoryMarkerStore()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{
		clock:   clock,
		markers: markers,
		rng:     rng,
		prefs:   domain.DefaultPreferences(),
	}
}

// Initialize valida las preferencias y regenera los recordatorios diarios.
// Los recordatorios no recurrentes (custom, snoozed) se conservan.
func (s *Scheduler) Initialize(prefs domain.Preferences) error {
	bedtime, err := ParseClockTime(prefs.SleepSchedule.Bedtime)
	if err != nil {
		return fmt.Errorf("%w: bedtime: %v", ErrInvalidSchedule, err)
	}
	wakeup, err := ParseClockTime(prefs.SleepSchedule.Wakeup)
	if err != nil {
		return fmt.Errorf("%w: wakeup: %v", ErrInvalidSchedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = prefs

	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.Recurring != domain.RecurrenceDaily {
			kept = append(kept, r)
		}
	}
	s.reminders = kept

	settings := prefs.ReminderSettings
	if settings.Hydration {
		s.scheduleHydration(wakeup, bedtime)
	}
	if settings.Sleep {
		s.scheduleSleep(wakeup, bedtime)
	}
	if settings.SelfCare {
		s.scheduleSelfCare(wakeup, bedtime)
	}
	if settings.CheckIn {
		s.scheduleCheckIns(wakeup)
	}

	return nil
}

// scheduleHydration genera un recordatorio cada 2 horas desde wakeup+2 hasta
// bedtime exclusivo. Si el bedtime cae "antes" del wakeup (horario nocturno,
// ej. 01:00) se itera en espacio sin envolver y se envuelve cada hora generada.
func (s *Scheduler) scheduleHydration(wakeup, bedtime float64) {
	end := bedtime
	if end <= wakeup {
		end += 24
	}
	for tf := wakeup + 2; tf < end; tf += 2 {
		clockTime := FormatClockTime(tf)
		s.upsertDaily(domain.Reminder{
			ID:      "hydration_" + clockTime,
			Type:    domain.ReminderHydration,
			Time:    clockTime,
			Message: hydrationMessages[s.rng.Intn(len(hydrationMessages))],
			Icon:    "droplet",
		})
	}
}

func (s *Scheduler) scheduleSleep(wakeup, bedtime float64) {
	s.upsertDaily(domain.Reminder{
		ID:      "sleep_winddown",
		Type:    domain.ReminderSleep,
		Time:    FormatClockTime(bedtime - 1),
		Message: "Time to start winding down for the night. Consider dimming lights and avoiding screens.",
		Icon:    "moon",
	})
	s.upsertDaily(domain.Reminder{
		ID:      "sleep_bedtime",
		Type:    domain.ReminderSleep,
		Time:    FormatClockTime(bedtime),
		Message: "It's bedtime! Your body and mind will thank you for a good night's rest.",
		Icon:    "moon",
	})
	s.upsertDaily(domain.Reminder{
		ID:      "sleep_wakeup",
		Type:    domain.ReminderSleep,
		Time:    FormatClockTime(wakeup),
		Message: "Good morning! Time to start your day with positive energy!",
		Icon:    "sun",
	})
}

func (s *Scheduler) scheduleSelfCare(wakeup, bedtime float64) {
	s.upsertDaily(domain.Reminder{
		ID:      "selfcare_morning",
		Type:    domain.ReminderSelfCare,
		Time:    FormatClockTime(wakeup + 1),
		Message: "Take a moment for yourself this morning. Deep breath, stretch, or just enjoy a quiet moment.",
		Icon:    "heart",
	})
	s.upsertDaily(domain.Reminder{
		ID:      "selfcare_afternoon",
		Type:    domain.ReminderSelfCare,
		Time:    "15:00",
		Message: "Time for an afternoon self-care break! Step away from work and do something nice for yourself.",
		Icon:    "heart",
	})
	s.upsertDaily(domain.Reminder{
		ID:      "selfcare_evening",
		Type:    domain.ReminderSelfCare,
		Time:    FormatClockTime(bedtime - 2),
		Message: "Evening self-care time! Reflect on your day and practice gratitude for three things.",
		Icon:    "heart",
	})
}

func (s *Scheduler) scheduleCheckIns(wakeup float64) {
	s.upsertDaily(domain.Reminder{
		ID:      "mood_morning",
		Type:    domain.ReminderCheckIn,
		Time:    FormatClockTime(wakeup + 0.5),
		Message: "Good morning! How are you feeling as you start your day?",
		Icon:    "smile",
	})
	s.upsertDaily(domain.Reminder{
		ID:      "mood_midday",
		Type:    domain.ReminderCheckIn,
		Time:    "13:00",
		Message: "Midday check-in: How's your energy and mood right now?",
		Icon:    "smile",
	})
	s.upsertDaily(domain.Reminder{
		ID:      "mood_evening",
		Type:    domain.ReminderCheckIn,
		Time:    "19:00",
		Message: "How has your day been emotionally? Take a moment to check in with yourself.",
		Icon:    "smile",
	})
}

func (s *Scheduler) upsertDaily(r domain.Reminder) {
	r.Recurring = domain.RecurrenceDaily
	r.Active = true
	r.CreatedAt = s.clock.Now().UTC()
	for i := range s.reminders {
		if s.reminders[i].ID == r.ID {
			s.reminders[i] = r
			return
		}
	}
	s.reminders = append(s.reminders, r)
}

// AddReminder agrega un recordatorio custom (o reemplaza uno con el mismo id)
// y devuelve su id.
func (s *Scheduler) AddReminder(r domain.Reminder) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = fmt.Sprintf("custom_%d", s.clock.Now().UnixNano())
	}
	if r.Recurring == "" {
		r.Recurring = domain.RecurrenceNone
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.clock.Now().UTC()
	}
	r.Active = true
	for i := range s.reminders {
		if s.reminders[i].ID == r.ID {
			s.reminders[i] = r
			return r.ID
		}
	}
	s.reminders = append(s.reminders, r)
	return r.ID
}

// ReminderUpdate describe cambios parciales; los campos nil no se tocan.
type ReminderUpdate struct {
	Time    *string
	Message *string
	Icon    *string
	Active  *bool
}

// UpdateReminder aplica cambios parciales a un recordatorio existente.
func (s *Scheduler) UpdateReminder(id string, update ReminderUpdate) (domain.Reminder, error) {
	if update.Time != nil {
		if _, err := ParseClockTime(*update.Time); err != nil {
			return domain.Reminder{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID != id {
			continue
		}
		if update.Time != nil {
			s.reminders[i].Time = *update.Time
		}
		if update.Message != nil {
			s.reminders[i].Message = *update.Message
		}
		if update.Icon != nil {
			s.reminders[i].Icon = *update.Icon
		}
		if update.Active != nil {
			s.reminders[i].Active = *update.Active
		}
		return s.reminders[i], nil
	}
	return domain.Reminder{}, ErrReminderNotFound
}

// RemoveReminder borra por id; borrar un id inexistente no es error.
func (s *Scheduler) RemoveReminder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
}

// CompleteReminder marca un recordatorio como completado.
func (s *Scheduler) CompleteReminder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			now := s.clock.Now().UTC()
			s.reminders[i].Completed = true
			s.reminders[i].CompletedAt = &now
			return nil
		}
	}
	return ErrReminderNotFound
}

// ReminderByID devuelve una copia del recordatorio.
func (s *Scheduler) ReminderByID(id string) (domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Reminder{}, ErrReminderNotFound
}

// CheckDueReminders devuelve los recordatorios dentro de la ventana de 1
// minuto que no se dispararon hoy, marcandolos antes de devolverlos para
// garantizar a lo sumo un disparo por dia.
func (s *Scheduler) CheckDueReminders() ([]domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	currentTime := float64(now.Hour()) + float64(now.Minute())/60
	today := now.Format(markerDateLayout)

	var due []domain.Reminder
	for _, r := range s.reminders {
		if !r.Active || r.Completed {
			continue
		}
		reminderTime, err := ParseClockTime(r.Time)
		if err != nil {
			continue
		}
		if math.Abs(currentTime-reminderTime) >= dueTolerance {
			continue
		}
		seen, err := s.markers.Seen(r.ID, today)
		if err != nil {
			return nil, fmt.Errorf("trigger marker lookup: %w", err)
		}
		if seen {
			continue
		}
		if err := s.markers.Mark(r.ID, today); err != nil {
			return nil, fmt.Errorf("trigger marker set: %w", err)
		}
		due = append(due, r)
	}
	return due, nil
}

// SnoozeReminder crea un recordatorio nuevo corrido N minutos desde ahora sin
// tocar el original.
func (s *Scheduler) SnoozeReminder(id string, minutes int) (domain.Reminder, error) {
	if minutes <= 0 {
		minutes = 15
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var original *domain.Reminder
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			original = &s.reminders[i]
			break
		}
	}
	if original == nil {
		return domain.Reminder{}, ErrReminderNotFound
	}

	now := s.clock.Now()
	snoozeAt := now.Add(time.Duration(minutes) * time.Minute)

	snoozed := *original
	snoozed.ID = fmt.Sprintf("%s_snoozed_%d", original.ID, now.Unix())
	snoozed.Time = FormatClockTime(float64(snoozeAt.Hour()) + float64(snoozeAt.Minute())/60)
	snoozed.Snoozed = true
	snoozed.OriginalID = original.ID
	snoozed.SnoozeCount = original.SnoozeCount + 1
	snoozed.Completed = false
	snoozed.CompletedAt = nil
	snoozed.CreatedAt = now.UTC()

	s.reminders = append(s.reminders, snoozed)
	return snoozed, nil
}

// TodaysReminders devuelve los recordatorios activos.
func (s *Scheduler) TodaysReminders() []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Reminder
	for _, r := range s.reminders {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// OverdueReminders devuelve los activos no completados cuya hora ya paso hoy.
func (s *Scheduler) OverdueReminders() []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	currentTime := float64(now.Hour()) + float64(now.Minute())/60

	var out []domain.Reminder
	for _, r := range s.reminders {
		if !r.Active || r.Completed {
			continue
		}
		reminderTime, err := ParseClockTime(r.Time)
		if err != nil {
			continue
		}
		if reminderTime < currentTime {
			out = append(out, r)
		}
	}
	return out
}

// UpcomingReminders devuelve lo que sigue en las proximas 24 horas; los
// recurrentes siempre tienen una proxima ocurrencia.
func (s *Scheduler) UpcomingReminders() []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	currentTime := float64(now.Hour()) + float64(now.Minute())/60

	var out []domain.Reminder
	for _, r := range s.reminders {
		if !r.Active || r.Completed {
			continue
		}
		if r.Recurring == domain.RecurrenceDaily {
			out = append(out, r)
			continue
		}
		reminderTime, err := ParseClockTime(r.Time)
		if err != nil {
			continue
		}
		if reminderTime >= currentTime {
			out = append(out, r)
		}
	}
	return out
}

// Stats resume totales por tipo.
func (s *Scheduler) Stats() domain.ReminderStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.ReminderStats{ByType: make(map[domain.ReminderType]int)}
	for _, r := range s.reminders {
		stats.Total++
		if r.Active {
			stats.Active++
		}
		stats.ByType[r.Type]++
	}
	return stats
}

// CleanupTriggeredMarkers descarta marcadores con mas de 2 dias para acotar
// el crecimiento del set de dedup.
func (s *Scheduler) CleanupTriggeredMarkers() error {
	cutoff := s.clock.Now().AddDate(0, 0, -2)
	return s.markers.Cleanup(cutoff)
}

// CleanupCompletedReminders descarta completados con mas de daysOld dias.
func (s *Scheduler) CleanupCompletedReminders(daysOld int) {
	if daysOld <= 0 {
		daysOld = 7
	}
	cutoff := s.clock.Now().UTC().AddDate(0, 0, -daysOld)

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.Completed && r.CompletedAt != nil && r.CompletedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	s.reminders = kept
}

// Reminders devuelve una copia de todos los recordatorios cargados.
func (s *Scheduler) Reminders() []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// LoadReminders reemplaza el estado en memoria, tipico al levantar desde la
// persistencia del caller.
func (s *Scheduler) LoadReminders(reminders []domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = make([]domain.Reminder, len(reminders))
	copy(s.reminders, reminders)
}

// Preferences devuelve las preferencias vigentes.
func (s *Scheduler) Preferences() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}
