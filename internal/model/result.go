package model

type UnitEconomics struct {
	BeanCostPerCup      float64 `json:"bean_cost_per_cup"`
	MilkCostPerCup      float64 `json:"milk_cost_per_cup"`
	PackagingCostPerCup float64 `json:"packaging_cost_per_cup"`
	TotalUnitCost       float64 `json:"total_unit_cost"`
}

type MonthlyFinancials struct {
	MonthlyCupsSold int     `json:"monthly_cups_sold"`
	Revenue         float64 `json:"revenue"`
	COGS            float64 `json:"cogs"`
	LaborCost       float64 `json:"labor_cost"`
	BaseRentCost    float64 `json:"base_rent_cost"`
	NNNCost         float64 `json:"nnn_cost"`
	TotalRent       float64 `json:"total_rent"`
	Utilities       float64 `json:"utilities"`
	TotalExpenses   float64 `json:"total_expenses"`
	NetProfit       float64 `json:"net_profit"`
	NetMarginPct    float64 `json:"net_margin_pct"`
	ExpenseRatioPct float64 `json:"expense_ratio_pct"`
}

type Tier string

const (
	TierOK      Tier = "OK"
	TierWarning Tier = "WARNING"
	TierDanger  Tier = "DANGER"
)

// Ratio is a cost line expressed as a percentage of revenue.
type Ratio struct {
	Percent float64 `json:"percent"`
	Tier    Tier    `json:"tier"`
}

type RiskRatios struct {
	Rent  Ratio `json:"rent"`
	Labor Ratio `json:"labor"`
	COGS  Ratio `json:"cogs"`
}

type SurvivalKind string

const (
	SurvivalBankrupt    SurvivalKind = "BANKRUPT"
	SurvivalBurning     SurvivalKind = "BURNING"
	SurvivalSustainable SurvivalKind = "SUSTAINABLE"
)

type BankruptDetail struct {
	Shortfall float64 `json:"shortfall"`
}

type BurningDetail struct {
	MonthlyBurn  float64 `json:"monthly_burn"`
	RunwayMonths float64 `json:"runway_months"`
}

type SustainableDetail struct {
	MonthlyProfit float64 `json:"monthly_profit"`
}

// SurvivalStatus is a tagged variant: exactly one detail matching Kind is set.
type SurvivalStatus struct {
	Kind          SurvivalKind       `json:"kind"`
	AvailableCash float64            `json:"available_cash"`
	Bankrupt      *BankruptDetail    `json:"bankrupt,omitempty"`
	Burning       *BurningDetail     `json:"burning,omitempty"`
	Sustainable   *SustainableDetail `json:"sustainable,omitempty"`
}

// Runway returns the finite runway in months. ok is false unless the shop
// is burning cash; sustainable shops have no runway figure at all.
func (s SurvivalStatus) Runway() (months float64, ok bool) {
	if s.Kind != SurvivalBurning || s.Burning == nil {
		return 0, false
	}
	return s.Burning.RunwayMonths, true
}

type BreakEvenKind string

const (
	BreakEvenComputed BreakEvenKind = "COMPUTED"
	BreakEvenInvalid  BreakEvenKind = "INVALID"
)

type BreakEvenFigures struct {
	FixedCostsPerMonth       float64  `json:"fixed_costs_per_month"`
	ContributionMarginPerCup float64  `json:"contribution_margin_per_cup"`
	BreakEvenCupsPerDay      float64  `json:"break_even_cups_per_day"`
	BreakEvenCupsPerMonth    float64  `json:"break_even_cups_per_month"`
	CupsSurplusPerDay        float64  `json:"cups_surplus_per_day"`
	PaybackMonths            *float64 `json:"payback_months"`
}

// BreakEvenResult is INVALID when price does not exceed unit cost; Computed
// is nil in that case.
type BreakEvenResult struct {
	Kind     BreakEvenKind     `json:"kind"`
	Computed *BreakEvenFigures `json:"computed,omitempty"`
}

func (b BreakEvenResult) Valid() bool {
	return b.Kind == BreakEvenComputed && b.Computed != nil
}

type MarginInsight string

const (
	InsightExcellent MarginInsight = "EXCELLENT"
	InsightGood      MarginInsight = "GOOD"
	InsightThin      MarginInsight = "THIN"
	InsightHighRisk  MarginInsight = "HIGH_RISK"
)

// Outlook holds the qualitative reading of the numbers.
type Outlook struct {
	MarginInsight         MarginInsight `json:"margin_insight"`
	GrossMarginPerCup     float64       `json:"gross_margin_per_cup"`
	HealthyUnitEconomics  bool          `json:"healthy_unit_economics"`
	RunwayCritical        bool          `json:"runway_critical"`
	ExtraCupsPerDayNeeded float64       `json:"extra_cups_per_day_needed"`
}

type CostShare struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

type CashPoint struct {
	Month int     `json:"month"`
	Cash  float64 `json:"cash"`
}

type VolumePoint struct {
	CupsPerDay float64 `json:"cups_per_day"`
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
}

// Projections are linear extrapolations over the derived figures.
type Projections struct {
	CostStructure []CostShare   `json:"cost_structure"`
	CashCurve     []CashPoint   `json:"cash_curve,omitempty"`
	VolumeCurve   []VolumePoint `json:"volume_curve,omitempty"`
}

// ScenarioResult bundles the inputs with every derived structure.
type ScenarioResult struct {
	Inputs        ScenarioInputs       `json:"inputs"`
	UnitEconomics UnitEconomics        `json:"unit_economics"`
	Financials    MonthlyFinancials    `json:"financials"`
	Risk          RiskRatios           `json:"risk"`
	Survival      SurvivalStatus       `json:"survival"`
	BreakEven     BreakEvenResult      `json:"break_even"`
	Outlook       Outlook              `json:"outlook"`
	Projections   Projections          `json:"projections"`
	Findings      []CalculationMessage `json:"findings"`
}
