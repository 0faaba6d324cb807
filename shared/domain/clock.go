package domain

import "time"

// Clock abstrae la hora actual. Nunca se cachea "ahora" a nivel de paquete:
// cada llamada a Now captura su propio instante.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapta una función a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock devuelve la hora del sistema en UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}
