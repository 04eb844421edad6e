package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Source   string `json:"rules_source"`
	RuleSets int    `json:"rule_sets"`
}
