package email

import (
	"context"
	"errors"

	"twinheart/internal/domain"
)

// Sender define la interfaz para notificar recordatorios vencidos por correo.
type Sender interface {
	SendReminder(ctx context.Context, toEmail string, reminder domain.Reminder) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendReminder(_ context.Context, _ string, _ domain.Reminder) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
