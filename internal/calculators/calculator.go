package calculators

import "coffee-engine/internal/model"

// Stage defines the contract for one step of the scenario pipeline.
// Apply reads the inputs plus the output of earlier stages from res and
// fills in only its own part of res.
type Stage interface {
	Name() string
	Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage
}

// percentOf returns part as a percentage of whole, or 0 when whole is not
// positive.
func percentOf(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}
