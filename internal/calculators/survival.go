package calculators

import (
	"fmt"
	"math"

	"coffee-engine/internal/model"
)

// Runways at or below this many months are flagged as critical.
const criticalRunwayMonths = 6

// Survival classifies the shop as bankrupt before launch, burning cash, or
// sustainable. A capital shortfall wins regardless of profit.
func Survival(in model.ScenarioInputs, fin model.MonthlyFinancials) model.SurvivalStatus {
	cash := in.AvailableCash()
	st := model.SurvivalStatus{AvailableCash: cash}

	switch {
	case cash < 0:
		st.Kind = model.SurvivalBankrupt
		st.Bankrupt = &model.BankruptDetail{Shortfall: math.Abs(cash)}
	case fin.NetProfit < 0:
		// burn > 0 here, so the division is safe; zero cash gives zero runway
		burn := math.Abs(fin.NetProfit)
		st.Kind = model.SurvivalBurning
		st.Burning = &model.BurningDetail{
			MonthlyBurn:  burn,
			RunwayMonths: cash / burn,
		}
	default:
		st.Kind = model.SurvivalSustainable
		st.Sustainable = &model.SustainableDetail{MonthlyProfit: fin.NetProfit}
	}

	return st
}

type SurvivalStage struct{}

func (s *SurvivalStage) Name() string { return "survival" }

func (s *SurvivalStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.Survival = Survival(in, res.Financials)

	switch res.Survival.Kind {
	case model.SurvivalBankrupt:
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeCapitalShortfall,
			Message: fmt.Sprintf("Bankrupt before launch: you need $%.0f more capital to cover the initial investment", res.Survival.Bankrupt.Shortfall),
		}}
	case model.SurvivalBurning:
		b := res.Survival.Burning
		msgs := []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeCashBurn,
			Message: fmt.Sprintf("Losing $%.0f/month, %.1f months until zero cash", b.MonthlyBurn, b.RunwayMonths),
		}}
		if b.RunwayMonths <= criticalRunwayMonths {
			msgs = append(msgs, model.CalculationMessage{
				Level:   model.LevelWarning,
				Code:    model.CodeRunwayCritical,
				Message: fmt.Sprintf("Critical runway: %.1f months of operating cash left", b.RunwayMonths),
			})
		}
		return msgs
	default:
		return []model.CalculationMessage{{
			Level:   model.LevelInfo,
			Code:    model.CodeSustainable,
			Message: fmt.Sprintf("Sustainable model: net profit $%.0f/month", res.Survival.Sustainable.MonthlyProfit),
		}}
	}
}
