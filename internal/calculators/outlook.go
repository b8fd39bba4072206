package calculators

import "coffee-engine/internal/model"

// Net margin bands, in percent.
const (
	excellentMarginPct = 20
	goodMarginPct      = 10
	thinMarginPct      = 5
)

// Gross margin share of price above which unit economics read as healthy.
const healthyGrossMarginShare = 0.65

func MarginInsightFor(netMarginPct float64) model.MarginInsight {
	switch {
	case netMarginPct >= excellentMarginPct:
		return model.InsightExcellent
	case netMarginPct >= goodMarginPct:
		return model.InsightGood
	case netMarginPct >= thinMarginPct:
		return model.InsightThin
	default:
		return model.InsightHighRisk
	}
}

func Outlook(in model.ScenarioInputs, ue model.UnitEconomics, fin model.MonthlyFinancials, surv model.SurvivalStatus, be model.BreakEvenResult) model.Outlook {
	o := model.Outlook{
		MarginInsight:     MarginInsightFor(fin.NetMarginPct),
		GrossMarginPerCup: in.AveragePricePerCup - ue.TotalUnitCost,
	}
	if in.AveragePricePerCup > 0 {
		o.HealthyUnitEconomics = o.GrossMarginPerCup/in.AveragePricePerCup > healthyGrossMarginShare
	}
	if months, ok := surv.Runway(); ok {
		o.RunwayCritical = months <= criticalRunwayMonths
	}
	if be.Valid() && be.Computed.CupsSurplusPerDay < 0 {
		o.ExtraCupsPerDayNeeded = -be.Computed.CupsSurplusPerDay
	}
	return o
}

type OutlookStage struct{}

func (s *OutlookStage) Name() string { return "outlook" }

func (s *OutlookStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.Outlook = Outlook(in, res.UnitEconomics, res.Financials, res.Survival, res.BreakEven)
	return nil
}
