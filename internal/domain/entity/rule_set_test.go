package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

func validRuleSet() *entity.RuleSet {
	return &entity.RuleSet{
		ValidFrom:      entity.Date(2025, time.January, 1),
		MaxDailyFee:    decimal.NewFromInt(60),
		TollFreeWindow: time.Hour,
		PublicHolidays: entity.HolidaySet(
			entity.Holiday{Date: entity.Date(2025, time.December, 25), Name: "Juldagen"},
			entity.Holiday{Date: entity.Date(2025, time.January, 1), Name: "Nyårsdagen"},
		),
		TollFreeVehicleTypes: entity.VehicleTypeSet(entity.VehicleMotorbike),
		Rules: []entity.TollRule{
			entity.NewTollRule(6, 0, 17, 59, 10),
			entity.NewTollRule(18, 0, 5, 59, 0),
		},
	}
}

// ── TollRule ──────────────────────────────────────────────────────────────────

func TestTollRule_Contains(t *testing.T) {
	day := entity.NewTollRule(6, 0, 6, 29, 8)
	assert.True(t, day.Contains(entity.TimeOfDay(6, 0)))
	assert.True(t, day.Contains(entity.TimeOfDay(6, 29)))
	assert.False(t, day.Contains(entity.TimeOfDay(6, 30)))
	assert.False(t, day.Contains(entity.TimeOfDay(5, 59)))
	assert.False(t, day.WrapsMidnight())

	night := entity.NewTollRule(18, 30, 5, 59, 0)
	assert.True(t, night.WrapsMidnight())
	assert.True(t, night.Contains(entity.TimeOfDay(23, 59)))
	assert.True(t, night.Contains(entity.TimeOfDay(0, 0)))
	assert.True(t, night.Contains(entity.TimeOfDay(5, 59)))
	assert.False(t, night.Contains(entity.TimeOfDay(6, 0)))
	assert.False(t, night.Contains(entity.TimeOfDay(18, 29)))
}

func TestValidateRules_Particion(t *testing.T) {
	tests := []struct {
		name    string
		rules   []entity.TollRule
		wantErr bool
	}{
		{"dia completo", []entity.TollRule{entity.NewTollRule(0, 0, 23, 59, 5)}, false},
		{"cruce de medianoche", []entity.TollRule{
			entity.NewTollRule(6, 0, 17, 59, 5),
			entity.NewTollRule(18, 0, 5, 59, 0),
		}, false},
		{"sin franjas", nil, true},
		{"hueco", []entity.TollRule{
			entity.NewTollRule(6, 0, 17, 59, 5),
			entity.NewTollRule(18, 30, 5, 59, 0),
		}, true},
		{"solapamiento en el limite", []entity.TollRule{
			entity.NewTollRule(15, 0, 16, 59, 13),
			entity.NewTollRule(16, 59, 14, 59, 8),
		}, true},
		{"tarifa negativa", []entity.TollRule{entity.NewTollRule(0, 0, 23, 59, -1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateRules(tt.rules)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRules_SegundosNoPermitidos(t *testing.T) {
	r := entity.NewTollRule(0, 0, 23, 59, 5)
	r.ValidTo.Second = 30
	assert.ErrorIs(t, entity.ValidateRules([]entity.TollRule{r}), domain.ErrConfiguration)
}

// ── RuleSet ───────────────────────────────────────────────────────────────────

func TestRuleSet_Validate(t *testing.T) {
	require.NoError(t, validRuleSet().Validate())

	rs := validRuleSet()
	rs.TollFreeWindow = 0
	assert.ErrorIs(t, rs.Validate(), domain.ErrConfiguration, "ventana cero")

	rs = validRuleSet()
	rs.TollFreeWindow = 1500 * time.Millisecond
	assert.ErrorIs(t, rs.Validate(), domain.ErrConfiguration, "ventana con fracción de segundo")

	rs = validRuleSet()
	rs.TollFreeWindow = 500 * time.Millisecond
	assert.ErrorIs(t, rs.Validate(), domain.ErrConfiguration, "ventana menor a un segundo")

	rs = validRuleSet()
	rs.MaxDailyFee = decimal.NewFromInt(-5)
	assert.ErrorIs(t, rs.Validate(), domain.ErrConfiguration, "tope negativo")

	rs = validRuleSet()
	rs.Rules = rs.Rules[:1]
	assert.ErrorIs(t, rs.Validate(), domain.ErrConfiguration, "franjas incompletas")

	var nilSet *entity.RuleSet
	assert.ErrorIs(t, nilSet.Validate(), domain.ErrConfiguration)
}

func TestRuleSet_Consultas(t *testing.T) {
	rs := validRuleSet()

	assert.True(t, rs.IsTollFreeVehicle(entity.VehicleMotorbike))
	assert.False(t, rs.IsTollFreeVehicle(entity.VehicleCar))
	assert.True(t, rs.IsPublicHoliday(entity.Date(2025, time.December, 25)))
	assert.False(t, rs.IsPublicHoliday(entity.Date(2025, time.December, 24)))

	fee, err := rs.FeeAt(entity.TimeOfDay(12, 0))
	require.NoError(t, err)
	assert.Equal(t, "10", fee.String())

	holidays := rs.Holidays()
	require.Len(t, holidays, 2)
	assert.Equal(t, "Nyårsdagen", holidays[0].Name, "festivos ordenados por fecha")
	assert.Equal(t, []entity.VehicleType{entity.VehicleMotorbike}, rs.VehicleTypesExempt())
}

func TestDatePolicy_Default(t *testing.T) {
	p := entity.DefaultDatePolicy()
	assert.True(t, p.IsTollFreeWeekday(time.Saturday))
	assert.True(t, p.IsTollFreeWeekday(time.Sunday))
	assert.False(t, p.IsTollFreeWeekday(time.Monday))
	assert.True(t, p.IsTollFreeMonth(time.July))
	assert.False(t, p.IsTollFreeMonth(time.August))
	assert.True(t, p.ExemptPublicHolidays)
	assert.True(t, p.ExemptDayBeforeHoliday)
}

// ── Parsing ───────────────────────────────────────────────────────────────────

func TestParseVehicleType(t *testing.T) {
	vt, err := entity.ParseVehicleType("motorbike")
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleMotorbike, vt)

	_, err = entity.ParseVehicleType("spaceship")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestParseFechasYHoras(t *testing.T) {
	tm, err := entity.ParseTimeOfDay("06:15")
	require.NoError(t, err)
	assert.Equal(t, entity.TimeOfDay(6, 15), tm)

	tm, err = entity.ParseTimeOfDay("06:15:30")
	require.NoError(t, err)
	assert.Equal(t, 30, tm.Second)
	assert.Equal(t, "06:15:30", entity.FormatTimeOfDay(tm))

	_, err = entity.ParseTimeOfDay("25:00")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	dt, err := entity.ParseDateTime("2025-03-17T06:15:00")
	require.NoError(t, err)
	assert.Equal(t, entity.Date(2025, time.March, 17), dt.Date)
	assert.Equal(t, entity.TimeOfDay(6, 15), dt.Time)

	dt, err = entity.ParseDateTime("2025-03-17 06:15")
	require.NoError(t, err)
	assert.Equal(t, entity.TimeOfDay(6, 15), dt.Time)

	d, err := entity.ParseDate("2025-03-17")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, entity.Weekday(d))

	_, err = entity.ParseDate("17/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Equal(t, 6*time.Hour+15*time.Minute+30*time.Second, entity.SinceMidnight(tm))
}

func TestParseWeekdayYMonth(t *testing.T) {
	d, err := entity.ParseWeekday("Saturday")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)

	d, err = entity.ParseWeekday("sun")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	m, err := entity.ParseMonth("jul")
	require.NoError(t, err)
	assert.Equal(t, time.July, m)

	_, err = entity.ParseMonth("Juli")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
