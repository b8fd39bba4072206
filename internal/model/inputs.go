package model

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type MilkType string

const (
	MilkDairy MilkType = "dairy"
	MilkOat   MilkType = "oat"
)

// ScenarioInputs is the full parameter snapshot for one projection. It is
// passed by value; callers validate it once before handing it to the engine.
// Upper bounds keep every derived monthly figure finite and the monthly cup
// count within int range.
type ScenarioInputs struct {
	// Capital & investment
	Capital          float64 `json:"capital" yaml:"capital" toml:"capital" validate:"finite,gte=0,lte=1000000000000"`
	RenovationBudget float64 `json:"renovation_budget" yaml:"renovation_budget" toml:"renovation_budget" validate:"finite,gte=0,lte=1000000000000"`
	EquipmentBudget  float64 `json:"equipment_budget" yaml:"equipment_budget" toml:"equipment_budget" validate:"finite,gte=0,lte=1000000000000"`

	// Location & real estate. Rent rates are per area unit per year.
	ShopArea     float64 `json:"shop_area" yaml:"shop_area" toml:"shop_area" validate:"finite,gte=0,lte=10000000"`
	BaseRentRate float64 `json:"base_rent_rate" yaml:"base_rent_rate" toml:"base_rent_rate" validate:"finite,gte=0,lte=100000"`
	NNNRate      float64 `json:"nnn_rate" yaml:"nnn_rate" toml:"nnn_rate" validate:"finite,gte=0,lte=100000"`
	Utilities    float64 `json:"utilities" yaml:"utilities" toml:"utilities" validate:"finite,gte=0,lte=1000000000"`

	// Staffing
	EmployeeCount          int     `json:"employee_count" yaml:"employee_count" toml:"employee_count" validate:"gte=0,lte=10000"`
	HoursPerEmployeePerDay float64 `json:"hours_per_employee_per_day" yaml:"hours_per_employee_per_day" toml:"hours_per_employee_per_day" validate:"finite,gt=0,lte=24"`
	HourlyWage             float64 `json:"hourly_wage" yaml:"hourly_wage" toml:"hourly_wage" validate:"finite,gte=0,lte=100000"`
	LaborBurdenRate        float64 `json:"labor_burden_rate" yaml:"labor_burden_rate" toml:"labor_burden_rate" validate:"finite,gte=0,lte=1"`

	// Cost of goods
	MilkPrice     float64  `json:"milk_price" yaml:"milk_price" toml:"milk_price" validate:"finite,gte=0,lte=10000"`
	OatMilkPrice  float64  `json:"oat_milk_price" yaml:"oat_milk_price" toml:"oat_milk_price" validate:"finite,gte=0,lte=10000"`
	MilkType      MilkType `json:"milk_type" yaml:"milk_type" toml:"milk_type" validate:"oneof=dairy oat"`
	BeanPrice     float64  `json:"bean_price" yaml:"bean_price" toml:"bean_price" validate:"finite,gte=0,lte=100000"`
	PackagingCost float64  `json:"packaging_cost" yaml:"packaging_cost" toml:"packaging_cost" validate:"finite,gte=0,lte=10000"`

	// Sales
	AveragePricePerCup    float64 `json:"average_price_per_cup" yaml:"average_price_per_cup" toml:"average_price_per_cup" validate:"finite,gte=0,lte=100000"`
	CupsPerDay            int     `json:"cups_per_day" yaml:"cups_per_day" toml:"cups_per_day" validate:"gte=0,lte=10000000"`
	OperatingDaysPerMonth int     `json:"operating_days_per_month" yaml:"operating_days_per_month" toml:"operating_days_per_month" validate:"gte=1,lte=31"`
}

// DefaultInputs is the first-run / reset scenario.
func DefaultInputs() ScenarioInputs {
	return ScenarioInputs{
		Capital:                350000,
		RenovationBudget:       185000,
		EquipmentBudget:        85000,
		ShopArea:               800,
		BaseRentRate:           45.00,
		NNNRate:                12.00,
		Utilities:              1200,
		EmployeeCount:          3,
		HoursPerEmployeePerDay: 8.0,
		HourlyWage:             15.00,
		LaborBurdenRate:        0.18,
		MilkPrice:              4.48,
		OatMilkPrice:           5.20,
		MilkType:               MilkDairy,
		BeanPrice:              14.50,
		PackagingCost:          0.17,
		AveragePricePerCup:     5.50,
		CupsPerDay:             120,
		OperatingDaysPerMonth:  30,
	}
}

// EffectiveMilkPrice returns the price of the selected milk type.
func (in ScenarioInputs) EffectiveMilkPrice() float64 {
	if in.MilkType == MilkOat {
		return in.OatMilkPrice
	}
	return in.MilkPrice
}

// AvailableCash is the operating cash left after capital expenditure.
func (in ScenarioInputs) AvailableCash() float64 {
	return in.Capital - in.RenovationBudget - in.EquipmentBudget
}

// CapitalExpenditure is renovation plus equipment.
func (in ScenarioInputs) CapitalExpenditure() float64 {
	return in.RenovationBudget + in.EquipmentBudget
}

var ErrInvalidInputs = errors.New("invalid scenario inputs")

// FieldViolation names one offending input field.
type FieldViolation struct {
	Field string      `json:"field"`
	Rule  string      `json:"rule"`
	Param string      `json:"param,omitempty"`
	Value interface{} `json:"value"`
}

func (v FieldViolation) String() string {
	if v.Param != "" {
		return fmt.Sprintf("%s=%v violates %s=%s", v.Field, v.Value, v.Rule, v.Param)
	}
	return fmt.Sprintf("%s=%v violates %s", v.Field, v.Value, v.Rule)
}

type InputError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return ErrInvalidInputs.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InputError) Unwrap() error { return ErrInvalidInputs }

// Fields returns the offending field names in declaration order.
func (e *InputError) Fields() []string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = v.Field
	}
	return names
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Validate checks every field invariant and reports all violations at once.
func (in ScenarioInputs) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInputs, err)
	}
	ie := &InputError{Violations: make([]FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		ie.Violations = append(ie.Violations, FieldViolation{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return ie
}
