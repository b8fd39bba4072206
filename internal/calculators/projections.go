package calculators

import (
	"math"

	"coffee-engine/internal/model"
)

const (
	cashCurveHorizonMonths = 24
	cashCurveTailMonths    = 4
	cashCurveMaxRunway     = 50
	volumeCurvePoints      = 50
	volumeCurveSpan        = 1.5
)

// CostStructure splits total monthly expenses into their components.
func CostStructure(fin model.MonthlyFinancials) []model.CostShare {
	lines := []struct {
		label  string
		amount float64
	}{
		{"COGS", fin.COGS},
		{"Labor", fin.LaborCost},
		{"Base Rent", fin.BaseRentCost},
		{"NNN", fin.NNNCost},
		{"Utilities", fin.Utilities},
	}

	out := make([]model.CostShare, len(lines))
	for i, l := range lines {
		out[i] = model.CostShare{
			Label:   l.label,
			Amount:  l.amount,
			Percent: percentOf(l.amount, fin.TotalExpenses),
		}
	}
	return out
}

// CashCurve extrapolates the cash balance linearly at a constant burn, a few
// months past exhaustion and capped at two years. Cash never goes below 0.
func CashCurve(cash, burn, runwayMonths float64) []model.CashPoint {
	n := int(math.Min(runwayMonths+cashCurveTailMonths, cashCurveHorizonMonths))
	if n <= 0 {
		return nil
	}
	out := make([]model.CashPoint, n)
	for m := 0; m < n; m++ {
		out[m] = model.CashPoint{
			Month: m,
			Cash:  math.Max(0, cash-burn*float64(m)),
		}
	}
	return out
}

// VolumeCurve samples monthly revenue and total cost across daily volumes
// from 0 to 1.5x the projected volume.
func VolumeCurve(in model.ScenarioInputs, ue model.UnitEconomics, fixedCosts float64) []model.VolumePoint {
	days := float64(in.OperatingDaysPerMonth)
	top := float64(in.CupsPerDay) * volumeCurveSpan

	out := make([]model.VolumePoint, volumeCurvePoints)
	for i := range out {
		x := top * float64(i) / float64(volumeCurvePoints-1)
		out[i] = model.VolumePoint{
			CupsPerDay: x,
			Revenue:    x * in.AveragePricePerCup * days,
			Cost:       x*ue.TotalUnitCost*days + fixedCosts,
		}
	}
	return out
}

func Projections(in model.ScenarioInputs, ue model.UnitEconomics, fin model.MonthlyFinancials, surv model.SurvivalStatus, be model.BreakEvenResult) model.Projections {
	p := model.Projections{CostStructure: CostStructure(fin)}

	if months, ok := surv.Runway(); ok && months > 0 && months < cashCurveMaxRunway {
		p.CashCurve = CashCurve(surv.AvailableCash, surv.Burning.MonthlyBurn, months)
	}
	if be.Valid() {
		p.VolumeCurve = VolumeCurve(in, ue, be.Computed.FixedCostsPerMonth)
	}
	return p
}

type ProjectionStage struct{}

func (s *ProjectionStage) Name() string { return "projections" }

func (s *ProjectionStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.Projections = Projections(in, res.UnitEconomics, res.Financials, res.Survival, res.BreakEven)
	return nil
}
