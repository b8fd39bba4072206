package costschedule

import "sort"

// Item is one line of a reference capex schedule.
type Item struct {
	Name   string  `json:"name" yaml:"name"`
	Detail string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	Cost   float64 `json:"cost" yaml:"cost"`
}

// Schedule is a named reference breakdown of typical build-out costs.
type Schedule struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}

const (
	Renovation = "renovation"
	Equipment  = "equipment"
)

var builtin = map[string]Schedule{
	Renovation: {
		Name:  Renovation,
		Title: "Renovation Breakdown",
		Items: []Item{
			{Name: "Design & Permits", Detail: "Architect/MEP/Fire", Cost: 22000},
			{Name: "Demolition & Site Prep", Cost: 10000},
			{Name: "Plumbing", Detail: "Floor Drains/Grease Trap", Cost: 45000},
			{Name: "Electrical", Detail: "Panel/Circuits/LED", Cost: 35000},
			{Name: "Flooring, Walls & Ceiling", Cost: 30000},
			{Name: "Millwork & Custom Bar Build", Cost: 28000},
		},
	},
	Equipment: {
		Name:  Equipment,
		Title: "Equipment Breakdown",
		Items: []Item{
			{Name: "Espresso Machine", Detail: "2-3 Group", Cost: 24000},
			{Name: "Grinders", Detail: "2 Espresso + 1 Bulk", Cost: 8000},
			{Name: "Water Filtration + Ice Machine", Cost: 9000},
			{Name: "Refrigeration", Detail: "Under-counter/Walk-in", Cost: 15000},
			{Name: "Oven, Blender & Prep Equipment", Cost: 12000},
			{Name: "Commercial Dishwasher", Cost: 8000},
			{Name: "POS System & Technology", Cost: 10000},
		},
	},
}

// Builtin returns the embedded reference schedule. The returned value owns
// its item slice.
func Builtin(name string) (Schedule, bool) {
	s, ok := builtin[name]
	if !ok {
		return Schedule{}, false
	}
	return s.clone(), true
}

// Names lists the embedded schedules in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s Schedule) clone() Schedule {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

// Label renders the item name with its detail in parentheses.
func (it Item) Label() string {
	if it.Detail == "" {
		return it.Name
	}
	return it.Name + " (" + it.Detail + ")"
}

func (s Schedule) Total() float64 {
	var total float64
	for _, it := range s.Items {
		total += it.Cost
	}
	return total
}

// Comparison sets a budget against the schedule's standard total.
type Comparison struct {
	Schedule Schedule `json:"schedule"`
	Standard float64  `json:"standard"`
	Budget   float64  `json:"budget"`
	Variance float64  `json:"variance"`
}

// UnderStandard reports whether the budget falls short of the standard total.
func (c Comparison) UnderStandard() bool {
	return c.Variance < 0
}

// Compare returns budget minus the standard total as Variance.
func (s Schedule) Compare(budget float64) Comparison {
	std := s.Total()
	return Comparison{
		Schedule: s,
		Standard: std,
		Budget:   budget,
		Variance: budget - std,
	}
}
