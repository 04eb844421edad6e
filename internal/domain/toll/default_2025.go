package toll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// DefaultRuleSet2025 tarifario de Gotemburgo vigente desde 2025-01-01 (SEK).
func DefaultRuleSet2025() *entity.RuleSet {
	return &entity.RuleSet{
		Name:           "default-2025",
		ValidFrom:      entity.Date(2025, time.January, 1),
		MaxDailyFee:    decimal.NewFromInt(60),
		TollFreeWindow: time.Hour,
		PublicHolidays: entity.HolidaySet(
			entity.Holiday{Date: entity.Date(2025, time.January, 1), Name: "Nyårsdagen"},
			entity.Holiday{Date: entity.Date(2025, time.January, 6), Name: "Trettondedag jul"},
			entity.Holiday{Date: entity.Date(2025, time.April, 18), Name: "Långfredagen"},
			entity.Holiday{Date: entity.Date(2025, time.April, 19), Name: "Påskafton"},
			entity.Holiday{Date: entity.Date(2025, time.April, 20), Name: "Påskdagen"},
			entity.Holiday{Date: entity.Date(2025, time.April, 21), Name: "Annandag påsk"},
			entity.Holiday{Date: entity.Date(2025, time.April, 30), Name: "Valborgsmässoafton"},
			entity.Holiday{Date: entity.Date(2025, time.May, 1), Name: "Första maj"},
			entity.Holiday{Date: entity.Date(2025, time.May, 29), Name: "Kristi himmelfärdsdag"},
			entity.Holiday{Date: entity.Date(2025, time.June, 6), Name: "Sveriges nationaldag"},
			entity.Holiday{Date: entity.Date(2025, time.June, 7), Name: "Pingstafton"},
			entity.Holiday{Date: entity.Date(2025, time.June, 8), Name: "Pingstdagen"},
			entity.Holiday{Date: entity.Date(2025, time.June, 20), Name: "Midsommarafton"},
			entity.Holiday{Date: entity.Date(2025, time.June, 21), Name: "Midsommardagen"},
			entity.Holiday{Date: entity.Date(2025, time.November, 1), Name: "Alla helgons dag"},
			entity.Holiday{Date: entity.Date(2025, time.December, 24), Name: "Julafton"},
			entity.Holiday{Date: entity.Date(2025, time.December, 25), Name: "Juldagen"},
			entity.Holiday{Date: entity.Date(2025, time.December, 26), Name: "Annandag jul"},
			entity.Holiday{Date: entity.Date(2025, time.December, 31), Name: "Nyårsafton"},
		),
		TollFreeVehicleTypes: entity.VehicleTypeSet(
			entity.VehicleMotorbike,
			entity.VehicleTractor,
			entity.VehicleEmergency,
			entity.VehicleDiplomat,
			entity.VehicleForeign,
			entity.VehicleMilitary,
		),
		Rules: []entity.TollRule{
			entity.NewTollRule(6, 0, 6, 29, 8),
			entity.NewTollRule(6, 30, 6, 59, 13),
			entity.NewTollRule(7, 0, 7, 59, 18),
			entity.NewTollRule(8, 0, 8, 29, 13),
			entity.NewTollRule(8, 30, 14, 59, 8),
			entity.NewTollRule(15, 0, 15, 29, 13),
			entity.NewTollRule(15, 30, 16, 59, 18),
			entity.NewTollRule(17, 0, 17, 59, 13),
			entity.NewTollRule(18, 0, 18, 29, 8),
			entity.NewTollRule(18, 30, 5, 59, 0),
		},
		Policy: entity.DefaultDatePolicy(),
	}
}

// DefaultCatalog catálogo con únicamente el tarifario 2025.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRuleSet2025())
	if err != nil {
		panic("tarifario por defecto inválido: " + err.Error())
	}
	return c
}
