package rulefile_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
	"github.com/jhoicas/TollFee-api/internal/domain/toll"
	"github.com/jhoicas/TollFee-api/internal/infrastructure/rulefile"
	"github.com/jhoicas/TollFee-api/pkg/logger"
)

const sampleYAML = `
rule_sets:
  - name: tarifa-2026
    valid_from: 2026-01-01
    max_daily_fee: "70"
    toll_free_window: 45m
    toll_free_vehicle_types: [Emergency, Bus]
    public_holidays:
      - date: 2026-01-06
        name: Trettondedag jul
    date_policy:
      toll_free_weekdays: [Sunday]
      toll_free_months: []
      exempt_public_holidays: true
      exempt_day_before_holiday: false
    bands:
      - {from: "06:00", to: "18:29", fee: 15.50}
      - {from: "18:30", to: "05:59", fee: 0}
  - valid_from: 2025-01-01
    max_daily_fee: 60
    bands:
      - {from: "00:00", to: "23:59", fee: 8}
`

func TestParse(t *testing.T) {
	sets, err := rulefile.Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, sets, 2)

	rs := sets[0]
	assert.Equal(t, "tarifa-2026", rs.Name)
	assert.Equal(t, entity.Date(2026, time.January, 1), rs.ValidFrom)
	assert.Equal(t, 45*time.Minute, rs.TollFreeWindow)
	assert.Equal(t, "15.5", rs.Rules[0].Fee.String())
	assert.True(t, rs.IsTollFreeVehicle(entity.VehicleBus))
	assert.Equal(t, "Trettondedag jul", rs.PublicHolidays[entity.Date(2026, time.January, 6)])
	assert.Equal(t, []time.Weekday{time.Sunday}, rs.Policy.TollFreeWeekdays)
	assert.False(t, rs.Policy.ExemptDayBeforeHoliday)

	assert.Equal(t, "rules-2025-01-01", sets[1].Name, "nombre generado")
	assert.Equal(t, time.Hour, sets[1].TollFreeWindow, "ventana por defecto")
	assert.Equal(t, entity.DefaultDatePolicy(), sets[1].Policy)

	_, err = toll.NewCatalog(sets...)
	assert.NoError(t, err)
}

func TestParse_Errores(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"vacío", "", domain.ErrConfiguration},
		{"sin tarifarios", "rule_sets: []", domain.ErrConfiguration},
		{"campo desconocido", "rule_sets:\n  - valid_from: 2025-01-01\n    max_fee: 60\n", domain.ErrConfiguration},
		{"importe inválido", "rule_sets:\n  - valid_from: 2025-01-01\n    max_daily_fee: sesenta\n    bands: []\n", domain.ErrInvalidArgument},
		{"franjas con hueco", "rule_sets:\n  - valid_from: 2025-01-01\n    max_daily_fee: 60\n    bands:\n      - {from: \"06:00\", to: \"17:59\", fee: 8}\n", domain.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rulefile.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncode_IdaYVuelta(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rulefile.Encode(&buf, []*entity.RuleSet{toll.DefaultRuleSet2025()}))

	sets, err := rulefile.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, sets, 1)

	orig := toll.DefaultRuleSet2025()
	assert.Equal(t, orig.ValidFrom, sets[0].ValidFrom)
	assert.Equal(t, orig.PublicHolidays, sets[0].PublicHolidays)
	assert.Equal(t, orig.Policy, sets[0].Policy)
	assert.Equal(t, len(orig.Rules), len(sets[0].Rules))
	assert.True(t, orig.MaxDailyFee.Equal(sets[0].MaxDailyFee))
}

func TestSource_LoadRuleSets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rulesets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	src := rulefile.NewSource(path)
	assert.Equal(t, "file", src.Name())
	sets, err := src.LoadRuleSets(context.Background())
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	_, err = rulefile.NewSource(filepath.Join(t.TempDir(), "no-existe.yaml")).LoadRuleSets(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_RecargaAlModificar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rulesets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	var calls atomic.Int32
	w := rulefile.NewWatcher(path, func(context.Context) error {
		calls.Add(1)
		return nil
	}, logger.Nop()).WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// dar tiempo a que se registre el watch antes de escribir
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML+"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "otro.txt"), []byte("x"), 0o600))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}

func TestSource_ArchivoDeEjemplo(t *testing.T) {
	sets, err := rulefile.NewSource("../../../config/rulesets.yaml").LoadRuleSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)

	def := toll.DefaultRuleSet2025()
	assert.Equal(t, def.PublicHolidays, sets[0].PublicHolidays)
	assert.Equal(t, def.TollFreeVehicleTypes, sets[0].TollFreeVehicleTypes)
	assert.Equal(t, def.Policy, sets[0].Policy)
	for i := range def.Rules {
		assert.Equal(t, def.Rules[i].String(), sets[0].Rules[i].String())
	}
}
