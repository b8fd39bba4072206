package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-engine/internal/costschedule"
	"coffee-engine/internal/engine"
	"coffee-engine/internal/model"
)

func mustSection(t *testing.T, doc Document, title string) Section {
	t.Helper()
	s, ok := doc.Section(title)
	require.True(t, ok, "section %q missing", title)
	return s
}

func mustLine(t *testing.T, s Section, label string) Line {
	t.Helper()
	l, ok := s.Line(label)
	require.True(t, ok, "line %q missing from %q", label, s.Title)
	return l
}

func TestBuild_DefaultsLayout(t *testing.T) {
	res := engine.ComputeScenario(model.DefaultInputs())
	doc := Build(res, Options{Title: "Plan", Footer: "Footer"})

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "Plan", doc.Title)

	var first []string
	for _, s := range doc.Pages[0].Sections {
		first = append(first, s.Title)
	}
	assert.Equal(t, []string{TitleSummary, TitleCapital, TitleLocation, TitleStaffing, TitleCOGS, TitleSales}, first)

	second := doc.Pages[1].Sections
	require.Len(t, second, 7)
	assert.Equal(t, "RENOVATION INVESTMENT: $185,000", second[0].Title)
	assert.Equal(t, "EQUIPMENT INVESTMENT: $85,000", second[1].Title)
	assert.Equal(t, TitleRisk, second[2].Title)
	assert.Equal(t, TitleBreakEven, second[3].Title)
	assert.Equal(t, TitleStatement, second[5].Title)
	assert.Equal(t, TitleNotes, second[6].Title)
}

func TestBuild_SummaryFigures(t *testing.T) {
	res := engine.ComputeScenario(model.DefaultInputs())
	doc := Build(res, Options{})
	summary := mustSection(t, doc, TitleSummary)

	assert.Equal(t, "$19,800", mustLine(t, summary, "Monthly Revenue:").Value)
	assert.Equal(t, "$22,277", mustLine(t, summary, "Monthly Expenses:").Value)

	profit := mustLine(t, summary, "Net Profit/Loss:")
	assert.Equal(t, "-$2,477", profit.Value)
	assert.Equal(t, "(-12.5% margin) - Loss", profit.Status)
	assert.Equal(t, ToneBad, profit.Tone)

	runway := mustLine(t, summary, "Cash Runway:")
	assert.Equal(t, "32.3 months", runway.Value)
	assert.Equal(t, "Burning $2,477/month", runway.Status)

	assert.Equal(t, "N/A", mustLine(t, summary, "Payback Period:").Value)
	assert.Equal(t, "$1.26/cup", mustLine(t, summary, "Unit Economics:").Value)
}

func TestBuild_NumbersComeFromResult(t *testing.T) {
	res := engine.ComputeScenario(model.DefaultInputs())
	doc := Build(res, Options{})
	stmt := mustSection(t, doc, TitleStatement)

	assert.Equal(t, Currency(res.Financials.Revenue), mustLine(t, stmt, "REVENUE").Value)
	assert.Equal(t, Currency(res.Financials.COGS), mustLine(t, stmt, "(-) Cost of Goods Sold").Value)
	assert.Equal(t, Currency(res.Financials.TotalExpenses), mustLine(t, stmt, "TOTAL EXPENSES").Value)
	assert.Equal(t, Currency(res.Financials.NetProfit), mustLine(t, stmt, "NET PROFIT/LOSS").Value)
	assert.Equal(t, "$4,533", mustLine(t, stmt, "(-) Cost of Goods Sold").Value)
	assert.Equal(t, "$3,800", mustLine(t, stmt, "(-) Rent").Value)

	risk := mustSection(t, doc, TitleRisk)
	rent := mustLine(t, risk, "Rent Ratio:")
	assert.Equal(t, "19.2% of Revenue", rent.Value)
	assert.Equal(t, "[DANGER: >15%]", rent.Status)
	assert.Equal(t, "[OK: Good]", mustLine(t, risk, "COGS Ratio:").Status)

	be := mustSection(t, doc, TitleBreakEven)
	assert.Equal(t, KindMetrics, be.Kind)
	assert.Equal(t, "$17,744", mustLine(t, be, "Fixed Costs/Month:").Value)
	assert.Equal(t, "139 cups/day (4,184/month)", mustLine(t, be, "Break-even Point:").Value)
	assert.Equal(t, "-19 below BE!", mustLine(t, be, "Your Projection:").Status)
}

func TestBuild_Schedules(t *testing.T) {
	doc := Build(engine.ComputeScenario(model.DefaultInputs()), Options{})

	reno := doc.Pages[1].Sections[0]
	assert.Equal(t, KindSchedule, reno.Kind)
	require.Len(t, reno.Lines, 6)
	assert.Equal(t, "Design & Permits (Architect/MEP/Fire)", reno.Lines[0].Label)
	assert.Equal(t, "$22,000", reno.Lines[0].Value)
	assert.Equal(t, "Standard total: $170,000 | Your budget: $185,000", reno.Note)

	equip := doc.Pages[1].Sections[1]
	require.Len(t, equip.Lines, 7)
	assert.Equal(t, "Standard total: $86,000 | Your budget: $85,000 | $1,000 under the standard", equip.Note)
}

type fixedSchedules map[string]costschedule.Schedule

func (f fixedSchedules) Get(name string) (costschedule.Schedule, bool) {
	s, ok := f[name]
	return s, ok
}

func TestBuild_CustomScheduleSource(t *testing.T) {
	src := fixedSchedules{
		costschedule.Renovation: {Name: costschedule.Renovation, Items: []costschedule.Item{{Name: "Everything", Cost: 100000}}},
	}
	doc := Build(engine.ComputeScenario(model.DefaultInputs()), Options{Schedules: src})

	reno := doc.Pages[1].Sections[0]
	require.Len(t, reno.Lines, 1)
	assert.Equal(t, "Standard total: $100,000 | Your budget: $185,000", reno.Note)
	assert.Empty(t, doc.Pages[1].Sections[1].Lines)
}

func TestBuild_ShortfallComesFirst(t *testing.T) {
	in := model.DefaultInputs()
	in.Capital = 50000
	in.RenovationBudget = 60000
	in.EquipmentBudget = 0

	doc := Build(engine.ComputeScenario(in), Options{})

	first := doc.Pages[0].Sections[0]
	assert.Equal(t, TitleShortfall, first.Title)
	assert.Equal(t, KindNotice, first.Kind)
	assert.Equal(t, "$10,000", mustLine(t, first, "Shortfall:").Value)

	capital := mustSection(t, doc, TitleCapital)
	cash := mustLine(t, capital, "Operating Cash:")
	assert.Equal(t, "-$10,000", cash.Value)
	assert.Equal(t, "SHORTFALL!", cash.Status)

	assert.Equal(t, "None - capital shortfall", mustLine(t, mustSection(t, doc, TitleSummary), "Cash Runway:").Value)
}

func TestBuild_InvalidBreakEvenNotice(t *testing.T) {
	in := model.DefaultInputs()
	in.AveragePricePerCup = 1.0

	doc := Build(engine.ComputeScenario(in), Options{})
	be := mustSection(t, doc, TitleBreakEven)

	assert.Equal(t, KindNotice, be.Kind)
	status := mustLine(t, be, "Status:")
	assert.Equal(t, InvalidBreakEven, status.Value)
	assert.Equal(t, "[CRITICAL]", status.Status)
	_, ok := be.Line("Fixed Costs/Month:")
	assert.False(t, ok)
}

func TestBuild_ProfitablePayback(t *testing.T) {
	in := model.DefaultInputs()
	in.AveragePricePerCup = 7.5
	in.CupsPerDay = 200
	generated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	doc := Build(engine.ComputeScenario(in), Options{GeneratedAt: generated, Author: "Test", Disclaimer: "Not advice."})
	summary := mustSection(t, doc, TitleSummary)

	payback := mustLine(t, summary, "Payback Period:")
	assert.Equal(t, "13.7 months (1y 1m)", payback.Value)
	assert.Equal(t, "Est. February 2027", payback.Status)

	runway := mustLine(t, summary, "Cash Runway:")
	assert.Equal(t, "Unlimited", runway.Value)
	assert.Equal(t, "Excellent - investment ready", mustLine(t, summary, "Margin Outlook:").Value)

	be := mustSection(t, doc, TitleBreakEven)
	assert.Equal(t, "+105 above BE", mustLine(t, be, "Your Projection:").Status)
	assert.Equal(t, "13.7 months (1.1 years)", mustLine(t, be, "Payback Period:").Value)

	notes := mustSection(t, doc, TitleNotes)
	assert.Equal(t, "This report was generated by Test.", notes.Lines[0].Value)
	assert.Equal(t, "Generated January 1, 2026", notes.Lines[1].Value)
	assert.Equal(t, "Not advice.", notes.Lines[len(notes.Lines)-1].Value)
}

func TestBuild_PaybackBeyondHorizon(t *testing.T) {
	in := model.DefaultInputs()
	in.CupsPerDay = 140
	res := engine.ComputeScenario(in)
	require.NotNil(t, res.BreakEven.Computed.PaybackMonths)
	require.Greater(t, *res.BreakEven.Computed.PaybackMonths, float64(MaxPaybackMonths))

	doc := Build(res, Options{GeneratedAt: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)})

	payback := mustLine(t, mustSection(t, doc, TitleSummary), "Payback Period:")
	assert.Equal(t, "N/A", payback.Value)
	assert.Empty(t, payback.Status)

	_, ok := mustSection(t, doc, TitleBreakEven).Line("Payback Period:")
	assert.False(t, ok)
}

func TestBuild_AtInputBounds(t *testing.T) {
	in := model.ScenarioInputs{
		Capital:                1e12,
		RenovationBudget:       1e12,
		EquipmentBudget:        1e12,
		ShopArea:               1e7,
		BaseRentRate:           1e5,
		NNNRate:                1e5,
		Utilities:              1e9,
		EmployeeCount:          10000,
		HoursPerEmployeePerDay: 24,
		HourlyWage:             1e5,
		LaborBurdenRate:        1,
		MilkPrice:              1e4,
		OatMilkPrice:           1e4,
		MilkType:               model.MilkOat,
		BeanPrice:              1e5,
		PackagingCost:          1e4,
		AveragePricePerCup:     1e5,
		CupsPerDay:             10000000,
		OperatingDaysPerMonth:  31,
	}
	res, err := engine.Compute(in)
	require.NoError(t, err)

	var doc Document
	require.NotPanics(t, func() {
		doc = Build(res, Options{GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	})
	assert.NotContains(t, mustLine(t, mustSection(t, doc, TitleSummary), "Monthly Revenue:").Value, "n/a")
}
