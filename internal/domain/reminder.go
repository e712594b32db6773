package domain

import "time"

// ReminderType agrupa los recordatorios por categoria.
type ReminderType string

const (
	ReminderHydration ReminderType = "hydration"
	ReminderSleep     ReminderType = "sleep"
	ReminderSelfCare  ReminderType = "selfCare"
	ReminderCheckIn   ReminderType = "checkIn"
	ReminderGeneral   ReminderType = "general"
)

// Recurrence define si un recordatorio se repite.
type Recurrence string

const (
	RecurrenceNone  Recurrence = "none"
	RecurrenceDaily Recurrence = "daily"
)

// Reminder es un recordatorio derivado del horario de sueno o creado a mano.
// Time usa formato "HH:MM" en reloj de 24 horas.
type Reminder struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id,omitempty"`
	Type        ReminderType `json:"type"`
	Time        string       `json:"time"`
	Message     string       `json:"message"`
	Icon        string       `json:"icon,omitempty"`
	Recurring   Recurrence   `json:"recurring"`
	Active      bool         `json:"active"`
	Completed   bool         `json:"completed"`
	Snoozed     bool         `json:"snoozed,omitempty"`
	OriginalID  string       `json:"original_id,omitempty"`
	SnoozeCount int          `json:"snooze_count,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// SleepSchedule son las horas de dormir y despertar en "HH:MM".
type SleepSchedule struct {
	Bedtime string `json:"bedtime"`
	Wakeup  string `json:"wakeup"`
}

// ReminderSettings activa o desactiva cada categoria automatica.
type ReminderSettings struct {
	Hydration bool `json:"hydration"`
	Sleep     bool `json:"sleep"`
	SelfCare  bool `json:"selfCare"`
	CheckIn   bool `json:"checkIn"`
}

// Preferences agrupa lo que el scheduler necesita para derivar recordatorios.
type Preferences struct {
	SleepSchedule    SleepSchedule    `json:"sleep_schedule"`
	ReminderSettings ReminderSettings `json:"reminder_settings"`
	Timezone         string           `json:"timezone,omitempty"`
}

// DefaultPreferences replica los defaults del onboarding.
func DefaultPreferences() Preferences {
	return Preferences{
		SleepSchedule: SleepSchedule{Bedtime: "22:00", Wakeup: "07:00"},
		ReminderSettings: ReminderSettings{
			Hydration: true,
			Sleep:     true,
			SelfCare:  true,
			CheckIn:   true,
		},
		Timezone: "UTC",
	}
}

// ReminderStats resume el estado de los recordatorios cargados.
type ReminderStats struct {
	Total  int                  `json:"total"`
	Active int                  `json:"active"`
	ByType map[ReminderType]int `json:"by_type"`
}
