package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	CalculationResult   *ScenarioResult      `json:"calculation_result"`
	Messages            []CalculationMessage `json:"messages"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

// ScenarioChange is one differing field between two scenario results.
type ScenarioChange struct {
	Op   string      `json:"op"`
	Path string      `json:"path"`
	From interface{} `json:"from,omitempty"`
	To   interface{} `json:"to,omitempty"`
}

type CompareResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Base                *ScenarioResult     `json:"base"`
	Variant             *ScenarioResult     `json:"variant"`
	Changes             []ScenarioChange    `json:"changes"`
}

type ErrorResponse struct {
	Status     int              `json:"status"`
	Message    string           `json:"message"`
	Violations []FieldViolation `json:"violations,omitempty"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
