package dto

import "github.com/shopspring/decimal"

// TollBandDTO franja horaria "HH:MM"–"HH:MM" (ambas inclusive).
type TollBandDTO struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Fee  decimal.Decimal `json:"fee"`
}

// HolidayDTO festivo.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// DatePolicyDTO días y meses libres de peaje. Nombres en inglés ("Saturday", "July").
type DatePolicyDTO struct {
	TollFreeWeekdays       []string `json:"toll_free_weekdays"`
	TollFreeMonths         []string `json:"toll_free_months"`
	ExemptPublicHolidays   bool     `json:"exempt_public_holidays"`
	ExemptDayBeforeHoliday bool     `json:"exempt_day_before_holiday"`
}

// RuleSetDTO tarifario completo (entrada para crear y salida de consultas).
// TollFreeWindow en formato de duración Go ("1h", "45m"), en segundos enteros.
// MaxDailyFee es obligatorio; nil indica que no vino en la petición.
type RuleSetDTO struct {
	ID                   string           `json:"id,omitempty"`
	Name                 string           `json:"name"`
	ValidFrom            string           `json:"valid_from" validate:"required"`
	MaxDailyFee          *decimal.Decimal `json:"max_daily_fee" validate:"required"`
	TollFreeWindow       string           `json:"toll_free_window"`
	TollFreeVehicleTypes []string         `json:"toll_free_vehicle_types"`
	PublicHolidays       []HolidayDTO     `json:"public_holidays"`
	DatePolicy           *DatePolicyDTO   `json:"date_policy,omitempty"`
	Bands                []TollBandDTO    `json:"bands" validate:"required"`
}

// RuleSetSummary fila del listado de tarifarios.
type RuleSetSummary struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	ValidFrom   string          `json:"valid_from"`
	MaxDailyFee decimal.Decimal `json:"max_daily_fee"`
	Bands       int             `json:"bands"`
	Holidays    int             `json:"holidays"`
}

// RuleSetListResponse listado de tarifarios en orden de vigencia.
type RuleSetListResponse struct {
	Source string           `json:"source"`
	Items  []RuleSetSummary `json:"items"`
}

// ReloadResponse resultado de recargar el catálogo.
type ReloadResponse struct {
	Source   string `json:"source"`
	RuleSets int    `json:"rule_sets"`
}
