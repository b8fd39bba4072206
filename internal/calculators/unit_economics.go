package calculators

import "coffee-engine/internal/model"

// Recipe constants for one cup.
const (
	gramsPerPound      = 453
	beanGramsPerCup    = 20
	milkUnitsPerGallon = 128
	milkUnitsPerCup    = 10
	wasteFactor        = 1.1
)

// UnitEconomics derives the variable cost of one cup. milkPricePerUnit is the
// price of whichever milk the shop pours.
func UnitEconomics(beanPricePerLb, milkPricePerUnit, packagingPerCup float64) model.UnitEconomics {
	bean := (beanPricePerLb / gramsPerPound) * beanGramsPerCup * wasteFactor
	milk := (milkPricePerUnit / milkUnitsPerGallon) * milkUnitsPerCup * wasteFactor

	return model.UnitEconomics{
		BeanCostPerCup:      bean,
		MilkCostPerCup:      milk,
		PackagingCostPerCup: packagingPerCup,
		TotalUnitCost:       bean + milk + packagingPerCup,
	}
}

type UnitEconomicsStage struct{}

func (s *UnitEconomicsStage) Name() string { return "unit_economics" }

func (s *UnitEconomicsStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.UnitEconomics = UnitEconomics(in.BeanPrice, in.EffectiveMilkPrice(), in.PackagingCost)
	return nil
}
