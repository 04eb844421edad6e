package tolling

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// DefaultTollFreeWindow ventana aplicada cuando el tarifario no la declara.
const DefaultTollFreeWindow = time.Hour

// RuleSetFromDTO convierte la representación externa en un tarifario validado.
// Errores de formato son ErrInvalidArgument; tarifarios inconsistentes, ErrConfiguration.
func RuleSetFromDTO(in dto.RuleSetDTO) (*entity.RuleSet, error) {
	validFrom, err := entity.ParseDate(in.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("valid_from: %w", err)
	}
	if in.MaxDailyFee == nil {
		return nil, fmt.Errorf("%w: max_daily_fee requerido", domain.ErrInvalidArgument)
	}
	window := DefaultTollFreeWindow
	if in.TollFreeWindow != "" {
		if window, err = time.ParseDuration(in.TollFreeWindow); err != nil {
			return nil, fmt.Errorf("%w: toll_free_window %q", domain.ErrInvalidArgument, in.TollFreeWindow)
		}
	}

	rs := &entity.RuleSet{
		ID:                   in.ID,
		Name:                 in.Name,
		ValidFrom:            validFrom,
		MaxDailyFee:          *in.MaxDailyFee,
		TollFreeWindow:       window,
		PublicHolidays:       make(map[civil.Date]string, len(in.PublicHolidays)),
		TollFreeVehicleTypes: make(map[entity.VehicleType]bool, len(in.TollFreeVehicleTypes)),
		Rules:                make([]entity.TollRule, 0, len(in.Bands)),
		Policy:               entity.DefaultDatePolicy(),
	}
	if rs.Name == "" {
		rs.Name = "rules-" + validFrom.String()
	}
	for _, h := range in.PublicHolidays {
		d, err := entity.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("public_holidays: %w", err)
		}
		rs.PublicHolidays[d] = h.Name
	}
	for _, s := range in.TollFreeVehicleTypes {
		vt, err := entity.ParseVehicleType(s)
		if err != nil {
			return nil, fmt.Errorf("toll_free_vehicle_types: %w", err)
		}
		rs.TollFreeVehicleTypes[vt] = true
	}
	for i, b := range in.Bands {
		from, err := entity.ParseTimeOfDay(b.From)
		if err != nil {
			return nil, fmt.Errorf("bands[%d].from: %w", i, err)
		}
		to, err := entity.ParseTimeOfDay(b.To)
		if err != nil {
			return nil, fmt.Errorf("bands[%d].to: %w", i, err)
		}
		rs.Rules = append(rs.Rules, entity.TollRule{ValidFrom: from, ValidTo: to, Fee: b.Fee})
	}
	if in.DatePolicy != nil {
		if rs.Policy, err = datePolicyFromDTO(*in.DatePolicy); err != nil {
			return nil, err
		}
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

func datePolicyFromDTO(in dto.DatePolicyDTO) (entity.DatePolicy, error) {
	p := entity.DatePolicy{
		ExemptPublicHolidays:   in.ExemptPublicHolidays,
		ExemptDayBeforeHoliday: in.ExemptDayBeforeHoliday,
	}
	for _, s := range in.TollFreeWeekdays {
		d, err := entity.ParseWeekday(s)
		if err != nil {
			return p, fmt.Errorf("date_policy: %w", err)
		}
		p.TollFreeWeekdays = append(p.TollFreeWeekdays, d)
	}
	for _, s := range in.TollFreeMonths {
		m, err := entity.ParseMonth(s)
		if err != nil {
			return p, fmt.Errorf("date_policy: %w", err)
		}
		p.TollFreeMonths = append(p.TollFreeMonths, m)
	}
	return p, nil
}

// RuleSetToDTO representación externa de un tarifario.
func RuleSetToDTO(rs *entity.RuleSet) dto.RuleSetDTO {
	maxDailyFee := rs.MaxDailyFee
	out := dto.RuleSetDTO{
		ID:             rs.ID,
		Name:           rs.Name,
		ValidFrom:      rs.ValidFrom.String(),
		MaxDailyFee:    &maxDailyFee,
		TollFreeWindow: rs.TollFreeWindow.String(),
		DatePolicy:     datePolicyToDTO(rs.Policy),
	}
	for _, vt := range rs.VehicleTypesExempt() {
		out.TollFreeVehicleTypes = append(out.TollFreeVehicleTypes, string(vt))
	}
	for _, h := range rs.Holidays() {
		out.PublicHolidays = append(out.PublicHolidays, dto.HolidayDTO{Date: h.Date.String(), Name: h.Name})
	}
	for _, r := range rs.Rules {
		out.Bands = append(out.Bands, dto.TollBandDTO{
			From: entity.FormatTimeOfDay(r.ValidFrom),
			To:   entity.FormatTimeOfDay(r.ValidTo),
			Fee:  r.Fee,
		})
	}
	return out
}

func datePolicyToDTO(p entity.DatePolicy) *dto.DatePolicyDTO {
	out := &dto.DatePolicyDTO{
		TollFreeWeekdays:       []string{},
		TollFreeMonths:         []string{},
		ExemptPublicHolidays:   p.ExemptPublicHolidays,
		ExemptDayBeforeHoliday: p.ExemptDayBeforeHoliday,
	}
	for _, d := range p.TollFreeWeekdays {
		out.TollFreeWeekdays = append(out.TollFreeWeekdays, d.String())
	}
	for _, m := range p.TollFreeMonths {
		out.TollFreeMonths = append(out.TollFreeMonths, m.String())
	}
	return out
}

func toSummary(rs *entity.RuleSet) dto.RuleSetSummary {
	return dto.RuleSetSummary{
		ID:          rs.ID,
		Name:        rs.Name,
		ValidFrom:   rs.ValidFrom.String(),
		MaxDailyFee: rs.MaxDailyFee,
		Bands:       len(rs.Rules),
		Holidays:    len(rs.PublicHolidays),
	}
}
