package entity

import (
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TollFee-api/internal/domain"
)

// DatePolicy define qué fechas quedan libres de peaje. Cada regla se evalúa en orden:
// día de la semana, mes completo, festivo, víspera de festivo.
type DatePolicy struct {
	TollFreeWeekdays       []time.Weekday
	TollFreeMonths         []time.Month
	ExemptPublicHolidays   bool
	ExemptDayBeforeHoliday bool
}

// DefaultDatePolicy fines de semana, julio, festivos y vísperas.
func DefaultDatePolicy() DatePolicy {
	return DatePolicy{
		TollFreeWeekdays:       []time.Weekday{time.Saturday, time.Sunday},
		TollFreeMonths:         []time.Month{time.July},
		ExemptPublicHolidays:   true,
		ExemptDayBeforeHoliday: true,
	}
}

// IsTollFreeWeekday indica si el día de la semana está exento.
func (p DatePolicy) IsTollFreeWeekday(d time.Weekday) bool {
	for _, w := range p.TollFreeWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

// IsTollFreeMonth indica si el mes completo está exento.
func (p DatePolicy) IsTollFreeMonth(m time.Month) bool {
	for _, x := range p.TollFreeMonths {
		if x == m {
			return true
		}
	}
	return false
}

// Holiday festivo con nombre opcional.
type Holiday struct {
	Date civil.Date
	Name string
}

// RuleSet tarifario vigente desde ValidFrom (inclusive) hasta el siguiente tarifario.
// Se construye una vez y se trata como inmutable.
type RuleSet struct {
	ID                   string
	Name                 string
	ValidFrom            civil.Date
	MaxDailyFee          decimal.Decimal
	TollFreeWindow       time.Duration
	PublicHolidays       map[civil.Date]string
	TollFreeVehicleTypes map[VehicleType]bool
	Rules                []TollRule
	Policy               DatePolicy
}

// Validate verifica los invariantes del tarifario.
func (rs *RuleSet) Validate() error {
	if rs == nil {
		return fmt.Errorf("%w: tarifario nulo", domain.ErrConfiguration)
	}
	if !rs.ValidFrom.IsValid() {
		return fmt.Errorf("%w: valid_from inválido", domain.ErrConfiguration)
	}
	if rs.MaxDailyFee.IsNegative() {
		return fmt.Errorf("%w: tope diario negativo (%s)", domain.ErrConfiguration, rs.ValidFrom)
	}
	if rs.TollFreeWindow <= 0 {
		return fmt.Errorf("%w: ventana libre de peaje debe ser positiva (%s)", domain.ErrConfiguration, rs.ValidFrom)
	}
	if rs.TollFreeWindow%time.Second != 0 {
		return fmt.Errorf("%w: ventana libre de peaje en segundos enteros (%s: %s)", domain.ErrConfiguration, rs.ValidFrom, rs.TollFreeWindow)
	}
	for d := range rs.PublicHolidays {
		if !d.IsValid() {
			return fmt.Errorf("%w: festivo inválido %v", domain.ErrConfiguration, d)
		}
	}
	if err := ValidateRules(rs.Rules); err != nil {
		return fmt.Errorf("tarifario %s: %w", rs.ValidFrom, err)
	}
	return nil
}

// IsTollFreeVehicle indica si el tipo de vehículo está exento.
func (rs *RuleSet) IsTollFreeVehicle(t VehicleType) bool {
	return rs.TollFreeVehicleTypes[t]
}

// IsPublicHoliday indica si la fecha está en el calendario de festivos.
func (rs *RuleSet) IsPublicHoliday(d civil.Date) bool {
	_, ok := rs.PublicHolidays[d]
	return ok
}

// FeeAt tarifa de la primera franja que contiene la hora.
func (rs *RuleSet) FeeAt(t civil.Time) (decimal.Decimal, error) {
	for _, r := range rs.Rules {
		if r.Contains(t) {
			return r.Fee, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: ninguna franja cubre %s", domain.ErrConfiguration, FormatTimeOfDay(t))
}

// Holidays lista ordenada de festivos.
func (rs *RuleSet) Holidays() []Holiday {
	out := make([]Holiday, 0, len(rs.PublicHolidays))
	for d, name := range rs.PublicHolidays {
		out = append(out, Holiday{Date: d, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// VehicleTypesExempt lista ordenada de tipos exentos.
func (rs *RuleSet) VehicleTypesExempt() []VehicleType {
	out := make([]VehicleType, 0, len(rs.TollFreeVehicleTypes))
	for vt, exempt := range rs.TollFreeVehicleTypes {
		if exempt {
			out = append(out, vt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HolidaySet construye el mapa de festivos a partir de una lista.
func HolidaySet(holidays ...Holiday) map[civil.Date]string {
	m := make(map[civil.Date]string, len(holidays))
	for _, h := range holidays {
		m[h.Date] = h.Name
	}
	return m
}

// VehicleTypeSet construye el conjunto de tipos exentos.
func VehicleTypeSet(types ...VehicleType) map[VehicleType]bool {
	m := make(map[VehicleType]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}
