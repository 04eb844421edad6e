package dto

import "github.com/shopspring/decimal"

// PassageFeeRequest tarifa de una pasada. PassageTime en hora local: "2025-03-17T06:15" o con segundos.
type PassageFeeRequest struct {
	VehicleType string `json:"vehicle_type" validate:"required"`
	PassageTime string `json:"passage_time" validate:"required"`
}

// PassageFeeResponse tarifa calculada y tarifario aplicado.
type PassageFeeResponse struct {
	Fee              decimal.Decimal `json:"fee"`
	RuleSetValidFrom string          `json:"rule_set_valid_from"`
	TollFree         bool            `json:"toll_free"`
	Exemption        string          `json:"exemption,omitempty"`
}

// DailyTollRequest total de un día. Times es obligatorio (puede ser vacío).
type DailyTollRequest struct {
	VehicleType string   `json:"vehicle_type" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Times       []string `json:"times"`
}

// WindowResponse ventana libre de peaje dentro del total diario.
type WindowResponse struct {
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Passages []string        `json:"passages"`
	Fee      decimal.Decimal `json:"fee"`
}

// DailyTollResponse total diario con el desglose de ventanas.
type DailyTollResponse struct {
	Date             string           `json:"date"`
	RuleSetValidFrom string           `json:"rule_set_valid_from"`
	TotalFee         decimal.Decimal  `json:"total_fee"`
	RawTotal         decimal.Decimal  `json:"raw_total"`
	Capped           bool             `json:"capped"`
	TollFree         bool             `json:"toll_free"`
	Exemption        string           `json:"exemption,omitempty"`
	Windows          []WindowResponse `json:"windows"`
}
