package entity

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TollFee-api/internal/domain"
)

// minutesPerDay resolución de las franjas: un minuto.
const minutesPerDay = int(Day / time.Minute)

// TollRule franja horaria con tarifa fija. ValidFrom y ValidTo son inclusivos a nivel de minuto:
// la franja 06:00–06:29 cubre desde 06:00:00 hasta antes de 06:30:00.
// Si ValidFrom es posterior a ValidTo la franja cruza la medianoche.
type TollRule struct {
	ValidFrom civil.Time
	ValidTo   civil.Time
	Fee       decimal.Decimal
}

// NewTollRule atajo para declarar franjas en código (horas HH:MM y tarifa entera).
func NewTollRule(fromHour, fromMinute, toHour, toMinute int, fee int64) TollRule {
	return TollRule{
		ValidFrom: TimeOfDay(fromHour, fromMinute),
		ValidTo:   TimeOfDay(toHour, toMinute),
		Fee:       decimal.NewFromInt(fee),
	}
}

// bounds devuelve [start, end) como desplazamientos desde medianoche.
func (r TollRule) bounds() (start, end time.Duration) {
	return SinceMidnight(r.ValidFrom), SinceMidnight(r.ValidTo) + time.Minute
}

// WrapsMidnight indica si la franja continúa al día siguiente.
func (r TollRule) WrapsMidnight() bool {
	start, end := r.bounds()
	return start >= end
}

// Contains indica si la hora del día cae dentro de la franja.
func (r TollRule) Contains(t civil.Time) bool {
	at := SinceMidnight(t)
	start, end := r.bounds()
	if start < end {
		return at >= start && at < end
	}
	return at >= start || at < end
}

// String representación "HH:MM-HH:MM=fee".
func (r TollRule) String() string {
	return fmt.Sprintf("%s-%s=%s", FormatTimeOfDay(r.ValidFrom), FormatTimeOfDay(r.ValidTo), r.Fee.String())
}

func (r TollRule) validate() error {
	for _, t := range []civil.Time{r.ValidFrom, r.ValidTo} {
		if !t.IsValid() || t.Second != 0 || t.Nanosecond != 0 {
			return fmt.Errorf("%w: franja %s: las horas deben ser HH:MM", domain.ErrConfiguration, r)
		}
	}
	if r.Fee.IsNegative() {
		return fmt.Errorf("%w: franja %s: tarifa negativa", domain.ErrConfiguration, r)
	}
	return nil
}

// ValidateRules comprueba que las franjas particionan el día: cada minuto pertenece a exactamente una.
func ValidateRules(rules []TollRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: sin franjas horarias", domain.ErrConfiguration)
	}
	var owner [minutesPerDay]int
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return err
		}
		start := int(SinceMidnight(r.ValidFrom) / time.Minute)
		length := int(SinceMidnight(r.ValidTo)/time.Minute) - start + 1
		if length <= 0 {
			length += minutesPerDay
		}
		for k := 0; k < length; k++ {
			m := (start + k) % minutesPerDay
			if owner[m] != 0 {
				return fmt.Errorf("%w: franjas %s y %s se solapan en %02d:%02d",
					domain.ErrConfiguration, rules[owner[m]-1], r, m/60, m%60)
			}
			owner[m] = i + 1
		}
	}
	for m, o := range owner {
		if o == 0 {
			return fmt.Errorf("%w: ninguna franja cubre las %02d:%02d", domain.ErrConfiguration, m/60, m%60)
		}
	}
	return nil
}
