package toll

import (
	"cloud.google.com/go/civil"

	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// Exemption motivo por el que una pasada no paga.
type Exemption string

const (
	NotExempt              Exemption = ""
	ExemptVehicle          Exemption = "exempt_vehicle"
	ExemptWeekday          Exemption = "toll_free_weekday"
	ExemptMonth            Exemption = "toll_free_month"
	ExemptPublicHoliday    Exemption = "public_holiday"
	ExemptDayBeforeHoliday Exemption = "day_before_public_holiday"
)

// TollFreeDate evalúa la política de fechas del tarifario en orden; la primera coincidencia gana.
func TollFreeDate(d civil.Date, rs *entity.RuleSet) Exemption {
	p := rs.Policy
	if p.IsTollFreeWeekday(entity.Weekday(d)) {
		return ExemptWeekday
	}
	if p.IsTollFreeMonth(d.Month) {
		return ExemptMonth
	}
	if p.ExemptPublicHolidays && rs.IsPublicHoliday(d) {
		return ExemptPublicHoliday
	}
	if p.ExemptDayBeforeHoliday && rs.IsPublicHoliday(d.AddDays(1)) {
		return ExemptDayBeforeHoliday
	}
	return NotExempt
}

// exemption combina vehículo y fecha: el vehículo se evalúa primero.
func exemption(v *entity.Vehicle, d civil.Date, rs *entity.RuleSet) Exemption {
	if rs.IsTollFreeVehicle(v.Type) {
		return ExemptVehicle
	}
	return TollFreeDate(d, rs)
}
