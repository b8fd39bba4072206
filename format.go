package main

import (
	"fmt"
	"io"
	"strings"

	"coffee-engine/internal/costschedule"
	"coffee-engine/internal/model"
	"coffee-engine/internal/report"
)

func printSummary(w io.Writer, res model.ScenarioResult) {
	fin := res.Financials

	fmt.Fprintln(w, "Coffee Shop Projection")
	fmt.Fprintln(w, strings.Repeat("=", 48))
	row(w, "Unit cost per cup", report.Cents(res.UnitEconomics.TotalUnitCost))
	row(w, "Monthly revenue", report.Currency(fin.Revenue))
	row(w, "Monthly expenses", report.Currency(fin.TotalExpenses))
	row(w, "Net profit", fmt.Sprintf("%s (%s)", report.Currency(fin.NetProfit), report.Percent(fin.NetMarginPct)))

	switch res.Survival.Kind {
	case model.SurvivalBankrupt:
		row(w, "Status", "BANKRUPT, short "+report.Currency(res.Survival.Bankrupt.Shortfall))
	case model.SurvivalBurning:
		row(w, "Status", fmt.Sprintf("BURNING %s/month, %s runway",
			report.Currency(res.Survival.Burning.MonthlyBurn), report.Months(res.Survival.Burning.RunwayMonths)))
	default:
		row(w, "Status", "SUSTAINABLE")
	}

	if res.BreakEven.Valid() {
		c := res.BreakEven.Computed
		row(w, "Break-even", fmt.Sprintf("%.0f cups/day", c.BreakEvenCupsPerDay))
		if c.PaybackMonths != nil {
			y, m := report.SplitMonths(*c.PaybackMonths)
			row(w, "Payback", fmt.Sprintf("%s (%dy %dm)", report.Months(*c.PaybackMonths), y, m))
		}
	} else {
		row(w, "Break-even", report.InvalidBreakEven)
	}

	row(w, "Rent / Labor / COGS", fmt.Sprintf("%s %s / %s %s / %s %s",
		report.Percent(res.Risk.Rent.Percent), res.Risk.Rent.Tier,
		report.Percent(res.Risk.Labor.Percent), res.Risk.Labor.Tier,
		report.Percent(res.Risk.COGS.Percent), res.Risk.COGS.Tier))

	if len(res.Findings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Findings")
		for _, f := range res.Findings {
			fmt.Fprintf(w, "  [%s] %s: %s\n", f.Level, f.Code, f.Message)
		}
	}
}

func printSchedule(w io.Writer, s costschedule.Schedule) {
	fmt.Fprintln(w, s.Title)
	for _, it := range s.Items {
		row(w, "  "+it.Label(), report.Currency(it.Cost))
	}
	row(w, "  Total", report.Currency(s.Total()))
	fmt.Fprintln(w)
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-44s %s\n", label, value)
}
