// Package rulefile lee y escribe catálogos de tarifarios en YAML y vigila el archivo para recargarlo.
package rulefile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/domain"
)

// Document raíz del archivo YAML.
type Document struct {
	RuleSets []RuleSetDoc `yaml:"rule_sets"`
}

// RuleSetDoc tarifario en YAML. Los importes van como texto para no perder precisión.
type RuleSetDoc struct {
	Name                 string         `yaml:"name,omitempty"`
	ValidFrom            string         `yaml:"valid_from"`
	MaxDailyFee          string         `yaml:"max_daily_fee"`
	TollFreeWindow       string         `yaml:"toll_free_window,omitempty"`
	TollFreeVehicleTypes []string       `yaml:"toll_free_vehicle_types,omitempty"`
	PublicHolidays       []HolidayDoc   `yaml:"public_holidays,omitempty"`
	DatePolicy           *DatePolicyDoc `yaml:"date_policy,omitempty"`
	Bands                []BandDoc      `yaml:"bands"`
}

// HolidayDoc festivo.
type HolidayDoc struct {
	Date string `yaml:"date"`
	Name string `yaml:"name,omitempty"`
}

// DatePolicyDoc política de fechas libres de peaje.
type DatePolicyDoc struct {
	TollFreeWeekdays       []string `yaml:"toll_free_weekdays"`
	TollFreeMonths         []string `yaml:"toll_free_months"`
	ExemptPublicHolidays   bool     `yaml:"exempt_public_holidays"`
	ExemptDayBeforeHoliday bool     `yaml:"exempt_day_before_holiday"`
}

// BandDoc franja horaria.
type BandDoc struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Fee  string `yaml:"fee"`
}

func (d RuleSetDoc) toDTO() (dto.RuleSetDTO, error) {
	out := dto.RuleSetDTO{
		Name:                 d.Name,
		ValidFrom:            d.ValidFrom,
		TollFreeWindow:       d.TollFreeWindow,
		TollFreeVehicleTypes: d.TollFreeVehicleTypes,
	}
	maxDailyFee, err := parseAmount("max_daily_fee", d.MaxDailyFee)
	if err != nil {
		return out, err
	}
	out.MaxDailyFee = &maxDailyFee
	for _, h := range d.PublicHolidays {
		out.PublicHolidays = append(out.PublicHolidays, dto.HolidayDTO(h))
	}
	if d.DatePolicy != nil {
		p := dto.DatePolicyDTO(*d.DatePolicy)
		out.DatePolicy = &p
	}
	for i, b := range d.Bands {
		fee, err := parseAmount(fmt.Sprintf("bands[%d].fee", i), b.Fee)
		if err != nil {
			return out, err
		}
		out.Bands = append(out.Bands, dto.TollBandDTO{From: b.From, To: b.To, Fee: fee})
	}
	return out, nil
}

func fromDTO(in dto.RuleSetDTO) RuleSetDoc {
	d := RuleSetDoc{
		Name:                 in.Name,
		ValidFrom:            in.ValidFrom,
		TollFreeWindow:       in.TollFreeWindow,
		TollFreeVehicleTypes: in.TollFreeVehicleTypes,
	}
	if in.MaxDailyFee != nil {
		d.MaxDailyFee = in.MaxDailyFee.String()
	}
	for _, h := range in.PublicHolidays {
		d.PublicHolidays = append(d.PublicHolidays, HolidayDoc(h))
	}
	if in.DatePolicy != nil {
		p := DatePolicyDoc(*in.DatePolicy)
		d.DatePolicy = &p
	}
	for _, b := range in.Bands {
		d.Bands = append(d.Bands, BandDoc{From: b.From, To: b.To, Fee: b.Fee.String()})
	}
	return d
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s requerido", domain.ErrInvalidArgument, field)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", domain.ErrInvalidArgument, field, s)
	}
	return v, nil
}
