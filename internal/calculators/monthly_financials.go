package calculators

import "coffee-engine/internal/model"

// Annual rent rates are spread evenly, not by days in month.
const monthsPerYear = 12

func MonthlyFinancials(in model.ScenarioInputs, ue model.UnitEconomics) model.MonthlyFinancials {
	days := float64(in.OperatingDaysPerMonth)
	cups := in.CupsPerDay * in.OperatingDaysPerMonth

	revenue := float64(cups) * in.AveragePricePerCup
	cogs := float64(cups) * ue.TotalUnitCost
	labor := float64(in.EmployeeCount) * in.HoursPerEmployeePerDay * days * in.HourlyWage * (1 + in.LaborBurdenRate)
	baseRent := (in.ShopArea * in.BaseRentRate) / monthsPerYear
	nnn := (in.ShopArea * in.NNNRate) / monthsPerYear
	totalRent := baseRent + nnn
	totalExpenses := cogs + labor + totalRent + in.Utilities
	netProfit := revenue - totalExpenses

	return model.MonthlyFinancials{
		MonthlyCupsSold: cups,
		Revenue:         revenue,
		COGS:            cogs,
		LaborCost:       labor,
		BaseRentCost:    baseRent,
		NNNCost:         nnn,
		TotalRent:       totalRent,
		Utilities:       in.Utilities,
		TotalExpenses:   totalExpenses,
		NetProfit:       netProfit,
		NetMarginPct:    percentOf(netProfit, revenue),
		ExpenseRatioPct: percentOf(totalExpenses, revenue),
	}
}

type MonthlyFinancialsStage struct{}

func (s *MonthlyFinancialsStage) Name() string { return "monthly_financials" }

func (s *MonthlyFinancialsStage) Apply(in model.ScenarioInputs, res *model.ScenarioResult) []model.CalculationMessage {
	res.Financials = MonthlyFinancials(in, res.UnitEconomics)
	return nil
}
