// Package toll implementa el motor de cálculo de peajes (servicio de dominio puro).
//
// El motor no guarda estado: cada llamada selecciona el tarifario por fecha, aplica exenciones
// y busca la franja horaria. El total diario agrupa pasadas cercanas en ventanas deslizantes
// donde solo se cobra la tarifa más alta.
package toll

import (
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// Calculator motor de peajes sobre un catálogo inmutable. Seguro para uso concurrente.
type Calculator struct {
	catalog *Catalog
}

// NewCalculator construye el motor.
func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Catalog devuelve el catálogo en uso.
func (c *Calculator) Catalog() *Catalog { return c.catalog }

// PassageQuote detalle del cobro de una pasada.
type PassageQuote struct {
	RuleSet   *entity.RuleSet
	Exemption Exemption
	Fee       decimal.Decimal
}

// Window ventana libre de peaje: pasadas desde Start hasta Start+TollFreeWindow (ambos inclusive).
type Window struct {
	Start    civil.Time
	End      time.Duration // desplazamiento desde medianoche, puede superar 24h
	Passages []civil.Time
	Fee      decimal.Decimal
}

// DailyBreakdown detalle del total diario.
type DailyBreakdown struct {
	Date      civil.Date
	RuleSet   *entity.RuleSet
	Exemption Exemption
	Windows   []Window
	RawTotal  decimal.Decimal
	Total     decimal.Decimal
	Capped    bool
}

// CalculateTollForPassage tarifa de una pasada individual.
func (c *Calculator) CalculateTollForPassage(vehicle *entity.Vehicle, at civil.DateTime) (decimal.Decimal, error) {
	q, err := c.QuotePassage(vehicle, at)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Fee, nil
}

// CalculatePassage atajo sobre entity.Passage.
func (c *Calculator) CalculatePassage(p entity.Passage) (decimal.Decimal, error) {
	return c.CalculateTollForPassage(p.Vehicle, p.At)
}

// QuotePassage igual que CalculateTollForPassage pero con el tarifario aplicado y el motivo de exención.
func (c *Calculator) QuotePassage(vehicle *entity.Vehicle, at civil.DateTime) (*PassageQuote, error) {
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehículo requerido", domain.ErrInvalidArgument)
	}
	if !at.IsValid() {
		return nil, fmt.Errorf("%w: fecha y hora inválidas %v", domain.ErrInvalidArgument, at)
	}
	rs, err := c.catalog.RuleSetFor(at.Date)
	if err != nil {
		return nil, err
	}
	q := &PassageQuote{RuleSet: rs, Fee: decimal.Zero}
	if q.Exemption = exemption(vehicle, at.Date, rs); q.Exemption != NotExempt {
		return q, nil
	}
	if q.Fee, err = rs.FeeAt(at.Time); err != nil {
		return nil, err
	}
	return q, nil
}

// CalculateTotalDailyToll total del día aplicando ventanas deslizantes y tope diario.
// passageTimes nil es un error; vacío devuelve 0.
func (c *Calculator) CalculateTotalDailyToll(vehicle *entity.Vehicle, date civil.Date, passageTimes []civil.Time) (decimal.Decimal, error) {
	b, err := c.DailyBreakdown(vehicle, date, passageTimes)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Total, nil
}

// DailyBreakdown calcula el total diario devolviendo las ventanas que lo componen.
func (c *Calculator) DailyBreakdown(vehicle *entity.Vehicle, date civil.Date, passageTimes []civil.Time) (*DailyBreakdown, error) {
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehículo requerido", domain.ErrInvalidArgument)
	}
	if passageTimes == nil {
		return nil, fmt.Errorf("%w: horas de pasada requeridas", domain.ErrInvalidArgument)
	}
	if !date.IsValid() {
		return nil, fmt.Errorf("%w: fecha inválida %v", domain.ErrInvalidArgument, date)
	}
	for _, t := range passageTimes {
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: hora inválida %v", domain.ErrInvalidArgument, t)
		}
	}
	rs, err := c.catalog.RuleSetFor(date)
	if err != nil {
		return nil, err
	}
	b := &DailyBreakdown{Date: date, RuleSet: rs, RawTotal: decimal.Zero, Total: decimal.Zero}
	if b.Exemption = exemption(vehicle, date, rs); b.Exemption != NotExempt {
		return b, nil
	}

	if b.Windows, err = sweep(rs, orderedUnique(passageTimes)); err != nil {
		return nil, err
	}
	for _, w := range b.Windows {
		b.RawTotal = b.RawTotal.Add(w.Fee)
	}
	b.Total = decimal.Min(b.RawTotal, rs.MaxDailyFee)
	b.Capped = b.RawTotal.GreaterThan(rs.MaxDailyFee)
	return b, nil
}

// sweep recorre las horas ordenadas: una hora posterior al fin de la ventana abierta cierra la
// ventana y abre otra en esa hora; dentro de la ventana solo se conserva la tarifa máxima.
func sweep(rs *entity.RuleSet, times []civil.Time) ([]Window, error) {
	var windows []Window
	var cur *Window
	for _, t := range times {
		at := entity.SinceMidnight(t)
		if cur == nil || at > cur.End {
			if cur != nil {
				windows = append(windows, *cur)
			}
			cur = &Window{Start: t, End: at + rs.TollFreeWindow, Fee: decimal.Zero}
		}
		fee, err := rs.FeeAt(t)
		if err != nil {
			return nil, err
		}
		cur.Passages = append(cur.Passages, t)
		cur.Fee = decimal.Max(cur.Fee, fee)
	}
	// la última ventana nunca se cierra dentro del bucle
	if cur != nil {
		windows = append(windows, *cur)
	}
	return windows, nil
}

func orderedUnique(times []civil.Time) []civil.Time {
	out := slices.Clone(times)
	slices.SortFunc(out, func(a, b civil.Time) int {
		da, db := entity.SinceMidnight(a), entity.SinceMidnight(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return slices.Compact(out)
}

// RuleSetFor tarifario aplicable a la fecha.
func (c *Calculator) RuleSetFor(d civil.Date) (*entity.RuleSet, error) {
	return c.catalog.RuleSetFor(d)
}

// IsTollFreeDate indica si la fecha está exenta según la política del tarifario aplicable.
func (c *Calculator) IsTollFreeDate(d civil.Date) (Exemption, error) {
	rs, err := c.catalog.RuleSetFor(d)
	if err != nil {
		return NotExempt, err
	}
	return TollFreeDate(d, rs), nil
}
