package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
	LevelInfo     = "INFO"
)

// Finding codes emitted by the calculation stages.
const (
	CodeCapitalShortfall = "CAPITAL_SHORTFALL"
	CodeInvalidPricing   = "INVALID_PRICING"
	CodeCashBurn         = "CASH_BURN"
	CodeRunwayCritical   = "RUNWAY_CRITICAL"
	CodeRentRatioDanger  = "RENT_RATIO_DANGER"
	CodeRentRatioWarning = "RENT_RATIO_WARNING"
	CodeLaborRatioDanger = "LABOR_RATIO_DANGER"
	CodeCOGSRatioWarning = "COGS_RATIO_WARNING"
	CodeBelowBreakEven   = "BELOW_BREAK_EVEN"
	CodeSustainable      = "SUSTAINABLE"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeMissingInputs    = "MISSING_INPUTS"
)

// LevelRank orders levels by prominence, lower is more prominent.
func LevelRank(level string) int {
	switch level {
	case LevelCritical:
		return 0
	case LevelWarning:
		return 1
	default:
		return 2
	}
}
