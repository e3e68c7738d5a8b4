// Package reconcile turns extracted figures and user edits into internally
// consistent statement values. Entry points are pure: each takes a state and
// returns the fully reconciled successor, applying effects in a fixed order
// (working notes, then line-item totals, then dependent totals, then the tax
// provision).
package reconcile

import "math"

// Consistency tolerance for revenue/cost/gross-profit triangulation: a figure
// is accepted when it is within 2% of the reference or within one whole unit.
// Tuned against observed extraction output; do not re-derive.
const (
	tolerancePercent = 0.02
	toleranceUnits   = 1.0
)

func tolerance(reference float64) float64 {
	return math.Max(toleranceUnits, math.Abs(reference)*tolerancePercent)
}

func consistent(actual, expected float64) bool {
	return math.Abs(actual-expected) <= tolerance(expected)
}

// Triangulate resolves the revenue / cost-of-sales / gross-profit triple when
// one figure is missing or inconsistent with the other two. Cost is returned
// as a negative figure, matching statement presentation.
func Triangulate(revenue, cost, gross float64) (float64, float64, float64) {
	switch {
	case gross != 0 && cost != 0 && (revenue == 0 || !consistent(revenue, gross+math.Abs(cost))):
		revenue = gross + math.Abs(cost)
	case revenue != 0 && gross != 0 && (cost == 0 || !consistent(cost, -(revenue-gross))):
		cost = -(revenue - gross)
	case gross == 0 && revenue != 0 && cost != 0:
		gross = revenue - math.Abs(cost)
	}
	return revenue, cost, gross
}
