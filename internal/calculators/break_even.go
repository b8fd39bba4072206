package calculators

import (
	"fmt"

	"coffee-engine/internal/model"
)

// BreakEven derives break-even volume and payback. It is INVALID when the
// average price does not exceed unit cost, since the contribution margin
// would be zero or negative.
func BreakEven(in model.ScenarioInputs, ue model.UnitEconomics, fin model.MonthlyFinancials) model.BreakEvenResult {
	if in.AveragePricePerCup <= ue.TotalUnitCost {
		return model.BreakEvenResult{Kind: model.BreakEvenInvalid}
	}

	fixed := fin.LaborCost + fin.TotalRent + fin.Utilities
	margin := in.AveragePricePerCup - ue.TotalUnitCost
	perMonth := fixed / margin
	perDay := perMonth / float64(in.OperatingDaysPerMonth)

	fig := &model.BreakEvenFigures{
		FixedCostsPerMonth:       fixed,
		ContributionMarginPerCup: margin,
		BreakEvenCupsPerDay:      perDay,
		BreakEvenCupsPerMonth:    perMonth,
		CupsSurplusPerDay:        float64(in.CupsPerDay) - perDay,
	}
	if fin.NetProfit > 0 {
		payback := in.CapitalExpenditure() / fin.NetProfit
		fig.PaybackMonths = &payback
	}

	return model.BreakEvenResult{Kind: model.BreakEvenComputed, Computed: fig}
}

type BreakEvenStage struct{}

func (s *BreakEvenStage) Name() string { return "break_even" }

func (s *BreakEvenStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.BreakEven = BreakEven(in, res.UnitEconomics, res.Financials)

	if !res.BreakEven.Valid() {
		return []model.CalculationMessage{{
			Level: model.LevelCritical,
			Code:  model.CodeInvalidPricing,
			Message: fmt.Sprintf("Average price $%.2f does not exceed unit cost $%.2f, break-even cannot be computed. Raise your price",
				in.AveragePricePerCup, res.UnitEconomics.TotalUnitCost),
		}}
	}

	if c := res.BreakEven.Computed; c.CupsSurplusPerDay < 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeBelowBreakEven,
			Message: fmt.Sprintf("Selling %.0f cups/day below break-even of %.0f cups/day", -c.CupsSurplusPerDay, c.BreakEvenCupsPerDay),
		}}
	}
	return nil
}
