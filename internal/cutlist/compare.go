package cutlist

import (
	"fmt"

	"github.com/piwi3910/polyhouse/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings Settings
}

// ComparisonResult holds the plan and its statistics for a scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Plan       Plan
	BarsUsed   int
	StockUsed  float64
	Efficiency float64
}

// CompareScenarios cuts m under each scenario, in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, m model.Model) []ComparisonResult {
	pieces := Pieces(m)
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		plan := New(scenario.Settings).Optimize(pieces)
		results = append(results, ComparisonResult{
			Scenario:   scenario,
			Plan:       plan,
			BarsUsed:   len(plan.Bars),
			StockUsed:  plan.StockUsed(),
			Efficiency: plan.Efficiency(),
		})
	}
	return results
}

// BuildDefaultScenarios varies the algorithm and the stock length around
// base: 6 m and 12 m are the common mill lengths of GI pipe.
func BuildDefaultScenarios(base Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{{Name: "Current Settings", Settings: base}}

	alt := base
	if base.Algorithm == AlgorithmGenetic {
		alt.Algorithm = AlgorithmFirstFit
		scenarios = append(scenarios, ComparisonScenario{Name: "First Fit Decreasing", Settings: alt})
	} else {
		alt.Algorithm = AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{Name: "Genetic Algorithm", Settings: alt})
	}

	for _, length := range []float64{6, 12} {
		if length == base.StockLength {
			continue
		}
		s := base
		s.StockLength = length
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%.0f m stock", length),
			Settings: s,
		})
	}
	return scenarios
}
