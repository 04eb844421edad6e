package toll_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
	"github.com/jhoicas/TollFee-api/internal/domain/toll"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// 2025-03-17 es lunes, sin festivos cercanos.
var weekday = entity.Date(2025, time.March, 17)

func newCalculator(t *testing.T) *toll.Calculator {
	t.Helper()
	return toll.NewCalculator(toll.DefaultCatalog())
}

func at(t *testing.T, s string) civil.DateTime {
	t.Helper()
	dt, err := entity.ParseDateTime(s)
	require.NoError(t, err)
	return dt
}

func times(t *testing.T, values ...string) []civil.Time {
	t.Helper()
	out := make([]civil.Time, 0, len(values))
	for _, v := range values {
		tm, err := entity.ParseTimeOfDay(v)
		require.NoError(t, err)
		out = append(out, tm)
	}
	return out
}

func car() *entity.Vehicle { return entity.NewVehicle(entity.VehicleCar) }

func assertFee(t *testing.T, expected int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, decimal.NewFromInt(expected).String(), got.String(), msgAndArgs...)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateTollForPassage
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTollForPassage_FranjasHorarias(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		passage  string
		expected int64
	}{
		{"2025-03-17 06:15", 8},
		{"2025-03-17 06:45", 13},
		{"2025-03-17 07:30", 18},
		{"2025-03-17 08:10", 13},
		{"2025-03-17 09:30", 8},
		{"2025-03-17 15:10", 13},
		{"2025-03-17 16:00", 18},
		{"2025-03-17 17:30", 13},
		{"2025-03-17 18:15", 8},
		{"2025-03-17 19:00", 0},
		{"2025-03-17 03:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.passage, func(t *testing.T) {
			fee, err := calc.CalculateTollForPassage(car(), at(t, tt.passage))
			require.NoError(t, err)
			assertFee(t, tt.expected, fee)
		})
	}
}

// expectedBandFee tabla de referencia por minuto del día.
func expectedBandFee(minute int) int64 {
	h, m := minute/60, minute%60
	hm := h*100 + m
	switch {
	case hm >= 600 && hm <= 629:
		return 8
	case hm >= 630 && hm <= 659:
		return 13
	case hm >= 700 && hm <= 759:
		return 18
	case hm >= 800 && hm <= 829:
		return 13
	case hm >= 830 && hm <= 1459:
		return 8
	case hm >= 1500 && hm <= 1529:
		return 13
	case hm >= 1530 && hm <= 1659:
		return 18
	case hm >= 1700 && hm <= 1759:
		return 13
	case hm >= 1800 && hm <= 1829:
		return 8
	}
	return 0
}

func TestCalculateTollForPassage_TodoElDia(t *testing.T) {
	calc := newCalculator(t)
	for minute := 0; minute < 24*60; minute++ {
		for _, sec := range []int{0, 59} {
			dt := civil.DateTime{Date: weekday, Time: civil.Time{Hour: minute / 60, Minute: minute % 60, Second: sec}}
			fee, err := calc.CalculateTollForPassage(car(), dt)
			require.NoError(t, err)
			assertFee(t, expectedBandFee(minute), fee, dt.String())
		}
	}
}

func TestCalculateTollForPassage_FinDeSemana(t *testing.T) {
	calc := newCalculator(t)
	for _, s := range []string{"2025-03-15 06:15", "2025-03-16 07:30"} {
		fee, err := calc.CalculateTollForPassage(car(), at(t, s))
		require.NoError(t, err)
		assertFee(t, 0, fee, s)
	}
}

func TestCalculateTollForPassage_VehiculoExento(t *testing.T) {
	calc := newCalculator(t)
	for _, vt := range []entity.VehicleType{
		entity.VehicleMotorbike, entity.VehicleTractor, entity.VehicleEmergency,
		entity.VehicleDiplomat, entity.VehicleForeign, entity.VehicleMilitary,
	} {
		q, err := calc.QuotePassage(entity.NewVehicle(vt), at(t, "2025-03-17 07:30"))
		require.NoError(t, err)
		assertFee(t, 0, q.Fee, string(vt))
		assert.Equal(t, toll.ExemptVehicle, q.Exemption)
	}
}

func TestCalculateTollForPassage_PoliticaDeFechas(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		name      string
		passage   string
		exemption toll.Exemption
	}{
		{"julio", "2025-07-01 06:15", toll.ExemptMonth},
		{"navidad", "2025-12-25 06:15", toll.ExemptPublicHoliday},
		{"vispera de nochebuena", "2025-12-23 06:15", toll.ExemptDayBeforeHoliday},
		{"sabado", "2025-03-15 06:15", toll.ExemptWeekday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.QuotePassage(car(), at(t, tt.passage))
			require.NoError(t, err)
			assertFee(t, 0, q.Fee)
			assert.Equal(t, tt.exemption, q.Exemption)
		})
	}
}

func TestCalculateTollForPassage_PoliticaDesactivada(t *testing.T) {
	rs := toll.DefaultRuleSet2025()
	rs.Policy = entity.DatePolicy{TollFreeWeekdays: []time.Weekday{time.Saturday, time.Sunday}}
	catalog, err := toll.NewCatalog(rs)
	require.NoError(t, err)
	calc := toll.NewCalculator(catalog)

	for _, s := range []string{"2025-07-01 06:15", "2025-12-25 06:15", "2025-12-23 06:15"} {
		fee, err := calc.CalculateTollForPassage(car(), at(t, s))
		require.NoError(t, err)
		assertFee(t, 8, fee, s)
	}
}

func TestCalculateTollForPassage_VehiculoNulo(t *testing.T) {
	calc := newCalculator(t)
	_, err := calc.CalculateTollForPassage(nil, at(t, "2025-03-17 06:15"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCalculateTollForPassage_SinTarifarioVigente(t *testing.T) {
	calc := newCalculator(t)
	_, err := calc.CalculateTollForPassage(car(), at(t, "2024-12-31 06:15"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCalculatePassage_UsaVehiculoYHora(t *testing.T) {
	calc := newCalculator(t)
	fee, err := calc.CalculatePassage(entity.Passage{Vehicle: car(), At: at(t, "2025-03-17 07:00")})
	require.NoError(t, err)
	assertFee(t, 18, fee)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateTotalDailyToll
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTotalDailyToll_Argumentos(t *testing.T) {
	calc := newCalculator(t)

	_, err := calc.CalculateTotalDailyToll(nil, weekday, times(t, "06:15"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument, "vehículo nulo")

	_, err = calc.CalculateTotalDailyToll(car(), weekday, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument, "horas nulas")

	fee, err := calc.CalculateTotalDailyToll(car(), weekday, []civil.Time{})
	require.NoError(t, err)
	assertFee(t, 0, fee, "lista vacía")
}

func TestCalculateTotalDailyToll_Escenarios(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		name     string
		times    []string
		expected int64
	}{
		{"ventanas disjuntas", []string{"06:15", "17:15"}, 21},
		{"misma ventana cobra el maximo", []string{"06:15", "06:45"}, 13},
		{"tope diario", []string{"06:10", "07:15", "08:20", "15:35", "16:40"}, 60},
		{"borde exacto de la ventana", []string{"06:15", "07:15"}, 18},
		{"un minuto despues del borde", []string{"06:15", "07:16"}, 26},
		{"ventana no se extiende con cada pasada", []string{"06:00", "06:50", "07:10"}, 31},
		{"solo pasadas nocturnas", []string{"01:00", "22:00"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := calc.CalculateTotalDailyToll(car(), weekday, times(t, tt.times...))
			require.NoError(t, err)
			assertFee(t, tt.expected, fee)
		})
	}
}

func TestCalculateTotalDailyToll_DuplicadosNoCambianResultado(t *testing.T) {
	calc := newCalculator(t)
	base, err := calc.CalculateTotalDailyToll(car(), weekday, times(t, "06:15", "08:45", "17:15"))
	require.NoError(t, err)
	dup, err := calc.CalculateTotalDailyToll(car(), weekday, times(t, "06:15", "06:15", "08:45", "17:15", "17:15", "17:15"))
	require.NoError(t, err)
	assert.True(t, base.Equal(dup), "base=%s dup=%s", base, dup)
}

func TestCalculateTotalDailyToll_OrdenIndiferente(t *testing.T) {
	calc := newCalculator(t)
	ordered := []string{"06:10", "07:15", "08:20", "15:35", "16:40"}
	expected, err := calc.CalculateTotalDailyToll(car(), weekday, times(t, ordered...))
	require.NoError(t, err)

	perms := [][]string{
		{"16:40", "15:35", "08:20", "07:15", "06:10"},
		{"08:20", "06:10", "16:40", "07:15", "15:35"},
		{"15:35", "16:40", "06:10", "08:20", "07:15"},
	}
	for _, p := range perms {
		got, err := calc.CalculateTotalDailyToll(car(), weekday, times(t, p...))
		require.NoError(t, err)
		assert.True(t, expected.Equal(got), "permutación %v", p)
	}
}

func TestCalculateTotalDailyToll_ExentosDevuelvenCero(t *testing.T) {
	calc := newCalculator(t)
	passages := times(t, "06:15", "07:30", "16:00")

	fee, err := calc.CalculateTotalDailyToll(entity.NewVehicle(entity.VehicleMotorbike), weekday, passages)
	require.NoError(t, err)
	assertFee(t, 0, fee, "moto")

	fee, err = calc.CalculateTotalDailyToll(car(), entity.Date(2025, time.March, 15), passages)
	require.NoError(t, err)
	assertFee(t, 0, fee, "sábado")
}

func TestDailyBreakdown_Ventanas(t *testing.T) {
	calc := newCalculator(t)
	b, err := calc.DailyBreakdown(car(), weekday, times(t, "06:45", "06:10", "07:15", "08:20", "15:35", "16:40", "06:10"))
	require.NoError(t, err)

	require.Len(t, b.Windows, 5)
	assert.Equal(t, times(t, "06:10", "06:45"), b.Windows[0].Passages)
	assertFee(t, 13, b.Windows[0].Fee)
	assert.Equal(t, entity.TimeOfDay(7, 15), b.Windows[1].Start)
	assertFee(t, 18, b.Windows[1].Fee)
	assertFee(t, 80, b.RawTotal)
	assertFee(t, 60, b.Total)
	assert.True(t, b.Capped)
	assert.Equal(t, toll.NotExempt, b.Exemption)
}

func TestCalculateTotalDailyToll_VentanaCercaDeMedianoche(t *testing.T) {
	rs := flatRuleSet(entity.Date(2025, time.January, 1), 10)
	catalog, err := toll.NewCatalog(rs)
	require.NoError(t, err)
	calc := toll.NewCalculator(catalog)

	fee, err := calc.CalculateTotalDailyToll(car(), weekday, times(t, "23:30", "23:59"))
	require.NoError(t, err)
	assertFee(t, 10, fee, "la ventana abierta a las 23:30 cubre el resto del día")
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de tarifario
// ──────────────────────────────────────────────────────────────────────────────

// flatRuleSet tarifario con una sola franja de día completo y sin exenciones de fecha.
func flatRuleSet(validFrom civil.Date, fee int64) *entity.RuleSet {
	return &entity.RuleSet{
		ValidFrom:      validFrom,
		MaxDailyFee:    decimal.NewFromInt(100),
		TollFreeWindow: time.Hour,
		Rules:          []entity.TollRule{entity.NewTollRule(0, 0, 23, 59, fee)},
	}
}

func TestCalculator_SeleccionaTarifarioPorFecha(t *testing.T) {
	catalog, err := toll.NewCatalog(
		flatRuleSet(entity.Date(2026, time.January, 1), 20),
		toll.DefaultRuleSet2025(),
	)
	require.NoError(t, err)
	calc := toll.NewCalculator(catalog)

	fee, err := calc.CalculateTollForPassage(car(), at(t, "2025-12-29 07:30"))
	require.NoError(t, err)
	assertFee(t, 18, fee, "2025 usa el tarifario por defecto")

	fee, err = calc.CalculateTollForPassage(car(), at(t, "2026-01-03 03:00"))
	require.NoError(t, err)
	assertFee(t, 20, fee, "2026 usa el tarifario plano, sin fines de semana exentos")

	rs, err := calc.RuleSetFor(entity.Date(2026, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, entity.Date(2026, time.January, 1), rs.ValidFrom)
}

func TestCalculator_IsTollFreeDate(t *testing.T) {
	calc := newCalculator(t)

	ex, err := calc.IsTollFreeDate(entity.Date(2025, time.April, 29))
	require.NoError(t, err)
	assert.Equal(t, toll.ExemptDayBeforeHoliday, ex, "víspera de Valborgsmässoafton")

	ex, err = calc.IsTollFreeDate(weekday)
	require.NoError(t, err)
	assert.Equal(t, toll.NotExempt, ex)
}
