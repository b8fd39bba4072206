package calculators

var pipeline = []Stage{
	&UnitEconomicsStage{},
	&MonthlyFinancialsStage{},
	&SurvivalStage{},
	&BreakEvenStage{},
	&RiskRatioStage{},
	&OutlookStage{},
	&ProjectionStage{},
}

var registry = func() map[string]Stage {
	m := make(map[string]Stage, len(pipeline))
	for _, s := range pipeline {
		m[s.Name()] = s
	}
	return m
}()

func Get(name string) (Stage, bool) {
	s, ok := registry[name]
	return s, ok
}

// Pipeline returns the stages in execution order.
func Pipeline() []Stage {
	out := make([]Stage, len(pipeline))
	copy(out, pipeline)
	return out
}
