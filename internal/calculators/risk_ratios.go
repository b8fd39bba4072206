package calculators

import (
	"fmt"

	"coffee-engine/internal/model"
)

// Ratio thresholds, in percent of revenue.
const (
	rentDangerPct  = 15
	rentWarningPct = 10
	laborDangerPct = 35
	cogsWarningPct = 30
)

func RiskRatios(fin model.MonthlyFinancials) model.RiskRatios {
	rent := percentOf(fin.TotalRent, fin.Revenue)
	labor := percentOf(fin.LaborCost, fin.Revenue)
	cogs := percentOf(fin.COGS, fin.Revenue)

	return model.RiskRatios{
		Rent:  model.Ratio{Percent: rent, Tier: RentTier(rent)},
		Labor: model.Ratio{Percent: labor, Tier: LaborTier(labor)},
		COGS:  model.Ratio{Percent: cogs, Tier: COGSTier(cogs)},
	}
}

func RentTier(pct float64) model.Tier {
	switch {
	case pct > rentDangerPct:
		return model.TierDanger
	case pct >= rentWarningPct:
		return model.TierWarning
	default:
		return model.TierOK
	}
}

// LaborTier has no warning band.
func LaborTier(pct float64) model.Tier {
	if pct > laborDangerPct {
		return model.TierDanger
	}
	return model.TierOK
}

// COGSTier has no danger band.
func COGSTier(pct float64) model.Tier {
	if pct > cogsWarningPct {
		return model.TierWarning
	}
	return model.TierOK
}

type RiskRatioStage struct{}

func (s *RiskRatioStage) Name() string { return "risk_ratios" }

func (s *RiskRatioStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.Risk = RiskRatios(res.Financials)

	var msgs []model.CalculationMessage
	switch res.Risk.Rent.Tier {
	case model.TierDanger:
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeRentRatioDanger,
			Message: fmt.Sprintf("Rent is %.1f%% of revenue, you're working for the landlord. Target: <%d%%", res.Risk.Rent.Percent, rentDangerPct),
		})
	case model.TierWarning:
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeRentRatioWarning,
			Message: fmt.Sprintf("Rent is %.1f%% of revenue, elevated. Ideal target: <%d%%", res.Risk.Rent.Percent, rentWarningPct),
		})
	}

	if res.Risk.Labor.Tier == model.TierDanger {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeLaborRatioDanger,
			Message: fmt.Sprintf("Labor is %.1f%% of revenue. Reduce hours or headcount. Target: <%d%%", res.Risk.Labor.Percent, laborDangerPct),
		})
	}

	if res.Risk.COGS.Tier == model.TierWarning {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeCOGSRatioWarning,
			Message: fmt.Sprintf("COGS is %.1f%% of revenue. Negotiate better supplier pricing. Target: <%d%%", res.Risk.COGS.Percent, cogsWarningPct),
		})
	}

	return msgs
}
