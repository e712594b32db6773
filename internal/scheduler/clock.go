package scheduler

import "time"

// Clock abstrae el reloj de pared para poder viajar en el tiempo en tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock devuelve el reloj real.
func SystemClock() Clock { return systemClock{} }
