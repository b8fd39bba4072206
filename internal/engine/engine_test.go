package engine

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"coffee-engine/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func findingCodes(msgs []model.CalculationMessage) []string {
	codes := make([]string, len(msgs))
	for i, m := range msgs {
		codes[i] = m.Code
	}
	return codes
}

func TestScenarioADefaults(t *testing.T) {
	res := ComputeScenario(model.DefaultInputs())

	if !approx(res.UnitEconomics.TotalUnitCost, 1.2591942604856512) {
		t.Fatalf("expected unit cost 1.259194, got %f", res.UnitEconomics.TotalUnitCost)
	}
	if res.Financials.MonthlyCupsSold != 3600 {
		t.Fatalf("expected 3600 cups, got %d", res.Financials.MonthlyCupsSold)
	}
	if res.Financials.Revenue != 19800 {
		t.Fatalf("expected revenue 19800, got %f", res.Financials.Revenue)
	}
	if !approx(res.Financials.TotalExpenses, 22277.099337748346) {
		t.Fatalf("expected total expenses 22277.10, got %f", res.Financials.TotalExpenses)
	}
	if !approx(res.Financials.NetProfit, -2477.0993377483464) {
		t.Fatalf("expected net profit -2477.10, got %f", res.Financials.NetProfit)
	}

	if res.Survival.Kind != model.SurvivalBurning {
		t.Fatalf("expected BURNING, got %s", res.Survival.Kind)
	}
	if !approx(res.Survival.Burning.RunwayMonths, 32.29583843525591) {
		t.Fatalf("expected runway 32.30, got %f", res.Survival.Burning.RunwayMonths)
	}

	if !res.BreakEven.Valid() {
		t.Fatal("expected break-even to be computed")
	}
	if !approx(res.BreakEven.Computed.BreakEvenCupsPerDay, 139.47035138996975) {
		t.Fatalf("expected 139.47 cups/day, got %f", res.BreakEven.Computed.BreakEvenCupsPerDay)
	}
	if res.BreakEven.Computed.PaybackMonths != nil {
		t.Fatal("expected no payback while losing money")
	}

	if res.Risk.Rent.Tier != model.TierDanger || res.Risk.Labor.Tier != model.TierDanger || res.Risk.COGS.Tier != model.TierOK {
		t.Fatalf("unexpected tiers rent=%s labor=%s cogs=%s", res.Risk.Rent.Tier, res.Risk.Labor.Tier, res.Risk.COGS.Tier)
	}

	want := []string{
		model.CodeCashBurn,
		model.CodeBelowBreakEven,
		model.CodeRentRatioDanger,
		model.CodeLaborRatioDanger,
	}
	if got := findingCodes(res.Findings); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected findings %v, got %v", want, got)
	}
	for i, f := range res.Findings {
		if f.ID != i {
			t.Fatalf("finding %d has id %d", i, f.ID)
		}
	}
}

func TestScenarioBInvalidPricing(t *testing.T) {
	in := model.DefaultInputs()
	in.AveragePricePerCup = 1.00

	res := ComputeScenario(in)

	if res.BreakEven.Kind != model.BreakEvenInvalid {
		t.Fatalf("expected INVALID break-even, got %s", res.BreakEven.Kind)
	}
	if res.BreakEven.Computed != nil {
		t.Fatal("expected no break-even figures")
	}
	if res.Survival.Kind != model.SurvivalBurning {
		t.Fatalf("expected BURNING, got %s", res.Survival.Kind)
	}
	if !approx(res.Financials.NetProfit, -18677.099337748346) {
		t.Fatalf("expected net profit -18677.10, got %f", res.Financials.NetProfit)
	}
	if len(res.Findings) == 0 || res.Findings[0].Code != model.CodeInvalidPricing {
		t.Fatalf("expected INVALID_PRICING first, got %v", findingCodes(res.Findings))
	}
	if res.Findings[0].Level != model.LevelCritical {
		t.Fatalf("expected CRITICAL, got %s", res.Findings[0].Level)
	}
}

func TestScenarioCBankrupt(t *testing.T) {
	in := model.DefaultInputs()
	in.Capital = 50000
	in.RenovationBudget = 60000
	in.EquipmentBudget = 0

	res := ComputeScenario(in)

	if res.Survival.Kind != model.SurvivalBankrupt {
		t.Fatalf("expected BANKRUPT, got %s", res.Survival.Kind)
	}
	if res.Survival.Bankrupt.Shortfall != 10000 {
		t.Fatalf("expected shortfall 10000, got %f", res.Survival.Bankrupt.Shortfall)
	}
	if res.Findings[0].Code != model.CodeCapitalShortfall {
		t.Fatalf("expected CAPITAL_SHORTFALL first, got %s", res.Findings[0].Code)
	}
}

func TestShortfallPrecedesInvalidPricing(t *testing.T) {
	in := model.DefaultInputs()
	in.Capital = 0
	in.AveragePricePerCup = 0.5

	res := ComputeScenario(in)

	codes := findingCodes(res.Findings)
	if len(codes) < 2 || codes[0] != model.CodeCapitalShortfall || codes[1] != model.CodeInvalidPricing {
		t.Fatalf("expected shortfall then pricing, got %v", codes)
	}
}

func TestProfitableScenario(t *testing.T) {
	in := model.DefaultInputs()
	in.AveragePricePerCup = 7.5
	in.CupsPerDay = 200

	res := ComputeScenario(in)

	if res.Survival.Kind != model.SurvivalSustainable {
		t.Fatalf("expected SUSTAINABLE, got %s", res.Survival.Kind)
	}
	if _, ok := res.Survival.Runway(); ok {
		t.Fatal("sustainable scenario must not report a runway")
	}
	p := res.BreakEven.Computed.PaybackMonths
	if p == nil || !approx(*p, 13.705003250610288) {
		t.Fatalf("expected payback 13.71 months, got %v", p)
	}
	if res.Outlook.MarginInsight != model.InsightExcellent {
		t.Fatalf("expected EXCELLENT, got %s", res.Outlook.MarginInsight)
	}
	last := res.Findings[len(res.Findings)-1]
	if last.Code != model.CodeSustainable || last.Level != model.LevelInfo {
		t.Fatalf("expected trailing SUSTAINABLE info, got %s/%s", last.Code, last.Level)
	}
}

func TestInvariants(t *testing.T) {
	scenarios := []model.ScenarioInputs{model.DefaultInputs()}
	for _, price := range []float64{0, 1, 3.25, 5.5, 9} {
		for _, cups := range []int{0, 60, 120, 400} {
			in := model.DefaultInputs()
			in.AveragePricePerCup = price
			in.CupsPerDay = cups
			scenarios = append(scenarios, in)
		}
	}

	for _, in := range scenarios {
		res := ComputeScenario(in)
		f := res.Financials

		if f.TotalExpenses != f.COGS+f.LaborCost+f.TotalRent+f.Utilities {
			t.Fatalf("expense identity broken for %+v", in)
		}
		if f.NetProfit != f.Revenue-f.TotalExpenses {
			t.Fatalf("profit identity broken for %+v", in)
		}
		if res.BreakEven.Valid() != (in.AveragePricePerCup > res.UnitEconomics.TotalUnitCost) {
			t.Fatalf("break-even validity mismatch at price %f", in.AveragePricePerCup)
		}
		if f.Revenue == 0 && (res.Risk.Rent.Percent != 0 || res.Risk.Labor.Percent != 0 || res.Risk.COGS.Percent != 0) {
			t.Fatal("ratios must be 0 on zero revenue")
		}
		if res.Findings == nil {
			t.Fatal("findings must never be nil")
		}
		for i := 1; i < len(res.Findings); i++ {
			if model.LevelRank(res.Findings[i-1].Level) > model.LevelRank(res.Findings[i].Level) {
				t.Fatalf("findings out of order: %v", findingCodes(res.Findings))
			}
		}
	}
}

func TestComputeScenarioIdempotent(t *testing.T) {
	in := model.DefaultInputs()
	a := ComputeScenario(in)
	b := ComputeScenario(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated calls produced different results")
	}
}

func TestComputeScenarioConcurrent(t *testing.T) {
	want := ComputeScenario(model.DefaultInputs())

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := ComputeScenario(model.DefaultInputs()); !reflect.DeepEqual(got, want) {
				errs <- "concurrent result differs"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestComputeRejectsInvalidInputs(t *testing.T) {
	in := model.DefaultInputs()
	in.OperatingDaysPerMonth = 0
	in.AveragePricePerCup = math.NaN()
	in.MilkType = "soy"

	_, err := Compute(in)
	if !errors.Is(err, model.ErrInvalidInputs) {
		t.Fatalf("expected ErrInvalidInputs, got %v", err)
	}
	var ie *model.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InputError, got %T", err)
	}
	want := []string{"milk_type", "average_price_per_cup", "operating_days_per_month"}
	if !reflect.DeepEqual(ie.Fields(), want) {
		t.Fatalf("expected fields %v, got %v", want, ie.Fields())
	}
}

func TestComputeRejectsOverflowingInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.ScenarioInputs)
		want   []string
	}{
		{
			name: "rent product overflows",
			mutate: func(in *model.ScenarioInputs) {
				in.ShopArea = 1e200
				in.BaseRentRate = 1e200
			},
			want: []string{"shop_area", "base_rent_rate"},
		},
		{
			name: "revenue and expenses overflow",
			mutate: func(in *model.ScenarioInputs) {
				in.AveragePricePerCup = 1e308
				in.CupsPerDay = 1000
			},
			want: []string{"average_price_per_cup"},
		},
		{
			name: "monthly cups wrap",
			mutate: func(in *model.ScenarioInputs) {
				in.CupsPerDay = math.MaxInt32
			},
			want: []string{"cups_per_day"},
		},
		{
			name: "shift longer than a day",
			mutate: func(in *model.ScenarioInputs) {
				in.HoursPerEmployeePerDay = 25
			},
			want: []string{"hours_per_employee_per_day"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs()
			tt.mutate(&in)

			_, err := Compute(in)
			var ie *model.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InputError, got %v", err)
			}
			if !reflect.DeepEqual(ie.Fields(), tt.want) {
				t.Fatalf("expected fields %v, got %v", tt.want, ie.Fields())
			}
		})
	}
}

func maxInputs() model.ScenarioInputs {
	return model.ScenarioInputs{
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
		MilkType:               model.MilkDairy,
		BeanPrice:              1e5,
		PackagingCost:          1e4,
		AveragePricePerCup:     1e5,
		CupsPerDay:             10000000,
		OperatingDaysPerMonth:  31,
	}
}

func TestComputeAtInputBoundsStaysFinite(t *testing.T) {
	res, err := Compute(maxInputs())
	if err != nil {
		t.Fatalf("expected bounds to validate, got %v", err)
	}

	fin := res.Financials
	if fin.MonthlyCupsSold != 310000000 {
		t.Fatalf("expected 310000000 cups, got %d", fin.MonthlyCupsSold)
	}
	for name, v := range map[string]float64{
		"revenue":        fin.Revenue,
		"cogs":           fin.COGS,
		"labor":          fin.LaborCost,
		"total_rent":     fin.TotalRent,
		"total_expenses": fin.TotalExpenses,
		"net_profit":     fin.NetProfit,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("expected finite %s, got %v", name, v)
		}
	}
	if res.Survival.Kind != model.SurvivalBankrupt {
		t.Fatalf("expected BANKRUPT, got %s", res.Survival.Kind)
	}
	if !res.BreakEven.Valid() {
		t.Fatal("expected computed break-even")
	}
}

func TestProcess(t *testing.T) {
	in := model.DefaultInputs()
	resp := Process(&model.CalculationRequest{TenantID: "test-tenant", Inputs: &in})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationMetadata.TenantID != "test-tenant" {
		t.Fatalf("expected tenant_id test-tenant, got %s", resp.CalculationMetadata.TenantID)
	}
	if resp.CalculationMetadata.CalculationID == "" {
		t.Fatal("expected a calculation id")
	}
	if resp.CalculationResult == nil {
		t.Fatal("expected a result")
	}
	if len(resp.Messages) != len(resp.CalculationResult.Findings) {
		t.Fatalf("expected %d messages, got %d", len(resp.CalculationResult.Findings), len(resp.Messages))
	}
}

func TestProcessMissingInputs(t *testing.T) {
	resp := Process(&model.CalculationRequest{TenantID: "t"})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult != nil {
		t.Fatal("expected no result")
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Code != model.CodeMissingInputs {
		t.Fatalf("expected MISSING_INPUTS, got %v", findingCodes(resp.Messages))
	}
}

func TestProcessInvalidInputs(t *testing.T) {
	in := model.DefaultInputs()
	in.HoursPerEmployeePerDay = 0
	in.LaborBurdenRate = 1.5

	resp := Process(&model.CalculationRequest{Inputs: &in})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp.Messages))
	}
	for i, m := range resp.Messages {
		if m.Code != model.CodeInvalidInput || m.Level != model.LevelCritical || m.ID != i {
			t.Fatalf("unexpected message %+v", m)
		}
	}
}

func TestCompare(t *testing.T) {
	base := model.DefaultInputs()
	variant := model.DefaultInputs()
	variant.CupsPerDay = 150

	resp, err := Compare(&model.CompareRequest{TenantID: "t", Base: &base, Variant: &variant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Changes) == 0 {
		t.Fatal("expected changes")
	}
	found := false
	for _, c := range resp.Changes {
		if c.Path == "/inputs/cups_per_day" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected cups_per_day change")
	}

	if _, err := Compare(&model.CompareRequest{Base: &base}); !IsMissingScenario(err) {
		t.Fatalf("expected missing scenario error, got %v", err)
	}

	bad := model.DefaultInputs()
	bad.OperatingDaysPerMonth = 40
	if _, err := Compare(&model.CompareRequest{Base: &base, Variant: &bad}); !errors.Is(err, model.ErrInvalidInputs) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
