package entity

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jhoicas/TollFee-api/internal/domain"
)

// Formatos aceptados. Todas las horas son locales (sin zona horaria).
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	TimeLayoutSecs  = "15:04:05"
	DateTimeLayout  = "2006-01-02T15:04:05"
	dateTimeSpace   = "2006-01-02 15:04:05"
	dateTimeMinutes = "2006-01-02 15:04"
	dateTimeTMin    = "2006-01-02T15:04"
)

// Day duración de un día civil; SinceMidnight siempre queda en [0, Day).
const Day = 24 * time.Hour

// SinceMidnight devuelve la hora del día como desplazamiento desde las 00:00.
func SinceMidnight(t civil.Time) time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Nanosecond)
}

// TimeOfDay construye una hora civil HH:MM.
func TimeOfDay(hour, minute int) civil.Time {
	return civil.Time{Hour: hour, Minute: minute}
}

// Date construye una fecha civil.
func Date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

// Weekday día de la semana de una fecha civil.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// ParseDate interpreta "2006-01-02".
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: fecha %q: %v", domain.ErrInvalidArgument, s, err)
	}
	return d, nil
}

// ParseTimeOfDay interpreta "15:04" o "15:04:05".
func ParseTimeOfDay(s string) (civil.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, TimeLayoutSecs} {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.TimeOf(t), nil
		}
	}
	return civil.Time{}, fmt.Errorf("%w: hora %q (formato HH:MM)", domain.ErrInvalidArgument, s)
}

// ParseDateTime interpreta fecha y hora local, con "T" o espacio como separador.
func ParseDateTime(s string) (civil.DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateTimeLayout, dateTimeTMin, dateTimeSpace, dateTimeMinutes} {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateTimeOf(t), nil
		}
	}
	return civil.DateTime{}, fmt.Errorf("%w: fecha y hora %q", domain.ErrInvalidArgument, s)
}

// FormatTimeOfDay representa la hora como HH:MM, o HH:MM:SS si tiene segundos.
func FormatTimeOfDay(t civil.Time) string {
	if t.Second == 0 && t.Nanosecond == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseWeekday interpreta el nombre en inglés del día ("Saturday", "sat").
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: día de la semana %q", domain.ErrInvalidArgument, s)
}

// ParseMonth interpreta el nombre en inglés del mes ("July", "jul").
func ParseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: mes %q", domain.ErrInvalidArgument, s)
}
