package model

type CalculationRequest struct {
	TenantID string          `json:"tenant_id"`
	Inputs   *ScenarioInputs `json:"inputs"`
}

// CompareRequest asks for the field-level delta between two scenarios.
type CompareRequest struct {
	TenantID string          `json:"tenant_id"`
	Base     *ScenarioInputs `json:"base"`
	Variant  *ScenarioInputs `json:"variant"`
}
