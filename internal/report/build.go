package report

import (
	"fmt"
	"strings"
	"time"

	"coffee-engine/internal/costschedule"
	"coffee-engine/internal/model"
)

// Section titles used by Build.
const (
	TitleShortfall  = "CAPITAL SHORTFALL"
	TitleSummary    = "EXECUTIVE SUMMARY"
	TitleCapital    = "INPUT PARAMETERS - CAPITAL & INVESTMENT"
	TitleLocation   = "INPUT PARAMETERS - LOCATION & REAL ESTATE"
	TitleStaffing   = "INPUT PARAMETERS - STAFFING"
	TitleCOGS       = "INPUT PARAMETERS - COST OF GOODS SOLD"
	TitleSales      = "INPUT PARAMETERS - SALES PROJECTIONS"
	TitleRisk       = "RISK ANALYSIS"
	TitleBreakEven  = "BREAK-EVEN ANALYSIS"
	TitleCostShares = "COST STRUCTURE"
	TitleStatement  = "MONTHLY PROFIT & LOSS STATEMENT"
	TitleNotes      = "NOTES"
)

// InvalidBreakEven is the status value shown when break-even is undefined.
const InvalidBreakEven = "INVALID - Price below unit cost"

// ScheduleSource supplies the reference capex schedules.
type ScheduleSource interface {
	Get(name string) (costschedule.Schedule, bool)
}

type Options struct {
	Title       string
	Subtitle    string
	Footer      string
	Author      string
	Disclaimer  string
	GeneratedAt time.Time
	Schedules   ScheduleSource
}

type builtinSchedules struct{}

func (builtinSchedules) Get(name string) (costschedule.Schedule, bool) {
	return costschedule.Builtin(name)
}

// Build lays out res as a two-page report. It formats the figures in res and
// never derives new ones.
func Build(res model.ScenarioResult, opts Options) Document {
	if opts.Title == "" {
		opts.Title = "Coffee Shop Business Plan"
	}
	if opts.Schedules == nil {
		opts.Schedules = builtinSchedules{}
	}

	b := builder{res: res, opts: opts}
	return Document{
		Title:       opts.Title,
		Subtitle:    opts.Subtitle,
		Footer:      opts.Footer,
		Author:      opts.Author,
		GeneratedAt: opts.GeneratedAt,
		Pages:       []Page{b.overviewPage(), b.analysisPage()},
	}
}

type builder struct {
	res  model.ScenarioResult
	opts Options
}

func (b builder) overviewPage() Page {
	var sections []Section
	if b.res.Survival.Kind == model.SurvivalBankrupt {
		sections = append(sections, b.shortfall())
	}
	sections = append(sections,
		b.summary(),
		b.capital(),
		b.location(),
		b.staffing(),
		b.cogs(),
		b.sales(),
	)
	return Page{Sections: sections}
}

func (b builder) analysisPage() Page {
	in := b.res.Inputs
	return Page{Sections: []Section{
		b.schedule(costschedule.Renovation, "RENOVATION INVESTMENT", in.RenovationBudget),
		b.schedule(costschedule.Equipment, "EQUIPMENT INVESTMENT", in.EquipmentBudget),
		b.risk(),
		b.breakEven(),
		b.costShares(),
		b.statement(),
		b.notes(),
	}}
}

func (b builder) shortfall() Section {
	s := b.res.Survival
	return Section{
		Title: TitleShortfall,
		Kind:  KindNotice,
		Lines: []Line{
			{Label: "Shortfall:", Value: Currency(s.Bankrupt.Shortfall), Status: "[CRITICAL]", Tone: ToneBad},
			{Label: "Operating Cash:", Value: Currency(s.AvailableCash), Tone: ToneBad},
		},
		Note: fmt.Sprintf("Bankrupt before launch: capital does not cover renovation and equipment. Raise %s more capital or reduce the build-out.",
			Currency(s.Bankrupt.Shortfall)),
	}
}

func (b builder) summary() Section {
	fin := b.res.Financials

	profitStatus, profitTone := "Profitable", ToneGood
	if fin.NetProfit < 0 {
		profitStatus, profitTone = "Loss", ToneBad
	}

	lines := []Line{
		{Label: "Monthly Revenue:", Value: Currency(fin.Revenue)},
		{Label: "Monthly Expenses:", Value: Currency(fin.TotalExpenses)},
		{
			Label:  "Net Profit/Loss:",
			Value:  Currency(fin.NetProfit),
			Status: fmt.Sprintf("(%s margin) - %s", Percent(fin.NetMarginPct), profitStatus),
			Tone:   profitTone,
		},
		b.runwayLine(),
		b.paybackLine(),
		{Label: "Margin Outlook:", Value: insightText(b.res.Outlook.MarginInsight), Tone: insightTone(b.res.Outlook.MarginInsight)},
		b.unitEconomicsLine(),
	}
	return Section{Title: TitleSummary, Kind: KindMetrics, Lines: lines}
}

// payback returns the payback period when one exists and falls within
// MaxPaybackMonths.
func (b builder) payback() (float64, bool) {
	if !b.res.BreakEven.Valid() || b.res.BreakEven.Computed.PaybackMonths == nil {
		return 0, false
	}
	m := *b.res.BreakEven.Computed.PaybackMonths
	if m > MaxPaybackMonths {
		return 0, false
	}
	return m, true
}

func (b builder) runwayLine() Line {
	l := Line{Label: "Cash Runway:"}
	switch b.res.Survival.Kind {
	case model.SurvivalBankrupt:
		l.Value, l.Tone = "None - capital shortfall", ToneBad
	case model.SurvivalSustainable:
		l.Value, l.Status, l.Tone = "Unlimited", "Cash-flow positive", ToneGood
	default:
		months, _ := b.res.Survival.Runway()
		l.Value = Months(months)
		l.Status = fmt.Sprintf("Burning %s/month", Currency(b.res.Survival.Burning.MonthlyBurn))
		l.Tone = ToneWarning
		if b.res.Outlook.RunwayCritical {
			l.Status = "[CRITICAL] " + l.Status
			l.Tone = ToneBad
		}
	}
	return l
}

func (b builder) paybackLine() Line {
	l := Line{Label: "Payback Period:", Value: "N/A"}
	m, ok := b.payback()
	if !ok {
		return l
	}
	years, months := SplitMonths(m)
	l.Value = fmt.Sprintf("%s (%dy %dm)", Months(m), years, months)
	if !b.opts.GeneratedAt.IsZero() {
		l.Status = "Est. " + PaybackDate(b.opts.GeneratedAt, m).Format("January 2006")
	}
	return l
}

func (b builder) unitEconomicsLine() Line {
	o := b.res.Outlook
	l := Line{
		Label: "Unit Economics:",
		Value: Cents(b.res.UnitEconomics.TotalUnitCost) + "/cup",
	}
	l.Status = Cents(o.GrossMarginPerCup) + " gross margin"
	if o.HealthyUnitEconomics {
		l.Status += " - Healthy"
		l.Tone = ToneGood
	}
	return l
}

func (b builder) capital() Section {
	in := b.res.Inputs
	cash := Line{Label: "Operating Cash:", Value: Currency(b.res.Survival.AvailableCash), Status: "OK", Tone: ToneGood}
	if b.res.Survival.AvailableCash < 0 {
		cash.Status, cash.Tone = "SHORTFALL!", ToneBad
	}
	return Section{Title: TitleCapital, Kind: KindMetrics, Lines: []Line{
		{Label: "Total Capital:", Value: Currency(in.Capital)},
		{Label: "Renovation Budget:", Value: Currency(in.RenovationBudget)},
		{Label: "Equipment Budget:", Value: Currency(in.EquipmentBudget)},
		cash,
	}}
}

func (b builder) location() Section {
	in, fin := b.res.Inputs, b.res.Financials
	return Section{Title: TitleLocation, Kind: KindMetrics, Lines: []Line{
		{Label: "Shop Size:", Value: printer.Sprintf("%.0f sqft", in.ShopArea)},
		{Label: "Base Rent:", Value: Cents(in.BaseRentRate) + "/sqft/year"},
		{Label: "NNN Charges:", Value: Cents(in.NNNRate) + "/sqft/year"},
		{Label: "Monthly Rent Total:", Value: Currency(fin.TotalRent)},
		{Label: "Utilities:", Value: Currency(fin.Utilities) + "/month"},
	}}
}

func (b builder) staffing() Section {
	in, fin := b.res.Inputs, b.res.Financials
	return Section{Title: TitleStaffing, Kind: KindMetrics, Lines: []Line{
		{Label: "Number of Employees:", Value: Count(in.EmployeeCount)},
		{Label: "Hours/Employee/Day:", Value: fmt.Sprintf("%.1f", in.HoursPerEmployeePerDay)},
		{Label: "Hourly Wage:", Value: Cents(in.HourlyWage)},
		{Label: "Labor Burden:", Value: fmt.Sprintf("%.0f%%", in.LaborBurdenRate*100)},
		{Label: "Monthly Labor Cost:", Value: Currency(fin.LaborCost)},
	}}
}

func (b builder) cogs() Section {
	in, ue, fin := b.res.Inputs, b.res.UnitEconomics, b.res.Financials
	milk := "Dairy"
	if in.MilkType == model.MilkOat {
		milk = "Oat"
	}
	return Section{Title: TitleCOGS, Kind: KindMetrics, Lines: []Line{
		{Label: "Milk Price:", Value: Cents(in.EffectiveMilkPrice()) + "/gallon", Status: milk},
		{Label: "Coffee Beans:", Value: Cents(in.BeanPrice) + "/lb"},
		{Label: "Packaging:", Value: Cents(in.PackagingCost) + "/cup"},
		{Label: "Unit Cost per Cup:", Value: Cents(ue.TotalUnitCost)},
		{Label: "Monthly COGS:", Value: Currency(fin.COGS)},
	}}
}

func (b builder) sales() Section {
	in, fin := b.res.Inputs, b.res.Financials
	return Section{Title: TitleSales, Kind: KindMetrics, Lines: []Line{
		{Label: "Average Price/Cup:", Value: Cents(in.AveragePricePerCup)},
		{Label: "Cups Sold/Day:", Value: Count(in.CupsPerDay)},
		{Label: "Operating Days/Month:", Value: Count(in.OperatingDaysPerMonth)},
		{Label: "Monthly Cups Sold:", Value: Count(fin.MonthlyCupsSold)},
	}}
}

func (b builder) schedule(name, title string, budget float64) Section {
	s := Section{Title: fmt.Sprintf("%s: %s", title, Currency(budget)), Kind: KindSchedule}

	sched, ok := b.opts.Schedules.Get(name)
	if !ok {
		return s
	}
	for _, it := range sched.Items {
		s.Lines = append(s.Lines, Line{Label: it.Label(), Value: Currency(it.Cost), Style: StyleItem})
	}
	cmp := sched.Compare(budget)
	s.Note = fmt.Sprintf("Standard total: %s | Your budget: %s", Currency(cmp.Standard), Currency(cmp.Budget))
	if cmp.UnderStandard() {
		s.Note += fmt.Sprintf(" | %s under the standard", Currency(-cmp.Variance))
	}
	return s
}

func (b builder) risk() Section {
	r := b.res.Risk
	return Section{Title: TitleRisk, Kind: KindMetrics, Lines: []Line{
		ratioLine("Rent Ratio:", r.Rent, "[DANGER: >15%]", "[WARNING: >10%]", "[OK: Healthy]"),
		ratioLine("Labor Ratio:", r.Labor, "[DANGER: >35%]", "", "[OK: Controlled]"),
		ratioLine("COGS Ratio:", r.COGS, "", "[WARNING: >30%]", "[OK: Good]"),
	}}
}

func ratioLine(label string, r model.Ratio, danger, warning, ok string) Line {
	l := Line{Label: label, Value: Percent(r.Percent) + " of Revenue"}
	switch r.Tier {
	case model.TierDanger:
		l.Status, l.Tone = danger, ToneBad
	case model.TierWarning:
		l.Status, l.Tone = warning, ToneWarning
	default:
		l.Status, l.Tone = ok, ToneGood
	}
	return l
}

func (b builder) breakEven() Section {
	s := Section{Title: TitleBreakEven, Kind: KindMetrics}
	in := b.res.Inputs

	if !b.res.BreakEven.Valid() {
		s.Kind = KindNotice
		s.Lines = []Line{
			{Label: "Status:", Value: InvalidBreakEven, Status: "[CRITICAL]", Tone: ToneBad},
			{Label: "Average Price/Cup:", Value: Cents(in.AveragePricePerCup)},
			{Label: "Unit Cost per Cup:", Value: Cents(b.res.UnitEconomics.TotalUnitCost)},
		}
		s.Note = "Every cup sold loses money. Raise your price above unit cost."
		return s
	}

	c := b.res.BreakEven.Computed
	projection := Line{Label: "Your Projection:", Value: Count(in.CupsPerDay) + " cups/day"}
	switch {
	case c.CupsSurplusPerDay > 0:
		projection.Status, projection.Tone = fmt.Sprintf("+%.0f above BE", c.CupsSurplusPerDay), ToneGood
	case c.CupsSurplusPerDay < 0:
		projection.Status, projection.Tone = fmt.Sprintf("%.0f below BE!", c.CupsSurplusPerDay), ToneBad
	default:
		projection.Status = "At break-even"
	}

	s.Lines = []Line{
		{Label: "Fixed Costs/Month:", Value: Currency(c.FixedCostsPerMonth)},
		{Label: "Contribution Margin/Cup:", Value: Cents(c.ContributionMarginPerCup)},
		{Label: "Break-even Point:", Value: printer.Sprintf("%.0f cups/day (%.0f/month)", c.BreakEvenCupsPerDay, c.BreakEvenCupsPerMonth)},
		projection,
	}
	if m, ok := b.payback(); ok {
		s.Lines = append(s.Lines, Line{Label: "Payback Period:", Value: fmt.Sprintf("%s (%.1f years)", Months(m), m/12)})
	}
	return s
}

func (b builder) costShares() Section {
	s := Section{Title: TitleCostShares, Kind: KindMetrics}
	for _, cs := range b.res.Projections.CostStructure {
		s.Lines = append(s.Lines, Line{
			Label:  cs.Label + ":",
			Value:  Currency(cs.Amount),
			Status: Percent(cs.Percent) + " of expenses",
		})
	}
	return s
}

func (b builder) statement() Section {
	fin := b.res.Financials
	tone := ToneGood
	if fin.NetProfit < 0 {
		tone = ToneBad
	}
	return Section{Title: TitleStatement, Kind: KindStatement, Lines: []Line{
		{Label: "REVENUE", Value: Currency(fin.Revenue), Style: StyleTotal},
		{Label: "(-) Cost of Goods Sold", Value: Currency(fin.COGS), Style: StyleItem},
		{Label: "(-) Labor", Value: Currency(fin.LaborCost), Style: StyleItem},
		{Label: "(-) Rent", Value: Currency(fin.TotalRent), Style: StyleItem},
		{Label: "(-) Utilities", Value: Currency(fin.Utilities), Style: StyleItem},
		{Label: "TOTAL EXPENSES", Value: Currency(fin.TotalExpenses), Style: StyleTotal},
		{Label: "NET PROFIT/LOSS", Value: Currency(fin.NetProfit), Tone: tone, Style: StyleResult},
		{Label: "Net Margin", Value: Percent(fin.NetMarginPct), Tone: tone},
	}}
}

func (b builder) notes() Section {
	var lines []Line
	if b.opts.Author != "" {
		lines = append(lines, Line{Value: "This report was generated by " + b.opts.Author + "."})
	}
	if !b.opts.GeneratedAt.IsZero() {
		lines = append(lines, Line{Value: "Generated " + b.opts.GeneratedAt.Format("January 2, 2006")})
	}
	lines = append(lines, Line{Value: "Reference capex schedules reflect typical US specialty coffee build-outs."})
	if d := strings.TrimSpace(b.opts.Disclaimer); d != "" {
		lines = append(lines, Line{Value: d})
	}
	return Section{Title: TitleNotes, Kind: KindNotes, Lines: lines}
}

func insightText(i model.MarginInsight) string {
	switch i {
	case model.InsightExcellent:
		return "Excellent - investment ready"
	case model.InsightGood:
		return "Good fundamentals"
	case model.InsightThin:
		return "Thin margins - review costs"
	default:
		return "High risk - review COGS"
	}
}

func insightTone(i model.MarginInsight) Tone {
	switch i {
	case model.InsightExcellent, model.InsightGood:
		return ToneGood
	case model.InsightThin:
		return ToneWarning
	default:
		return ToneBad
	}
}
