// Package insights derives qualitative insights and milestone markers from
// completed projection results. All functions are pure.
package insights

import "github.com/dmitrijs2005/glidepath/internal/client/models"

// Income milestones checked against the deterministic projection's post-tax
// real income, in dollars.
const (
	LivableIncomeThreshold  = 75000
	ComfortableLifeThreshold = 200000
)

// Band classifies the mean Monte Carlo success probability.
type Band int

const (
	BandLow Band = iota
	BandModerate
	BandHigh
)

// Advice returns the fixed advisory message for the band.
func (b Band) Advice() string {
	switch b {
	case BandHigh:
		return "High success rate indicates good retirement plan."
	case BandModerate:
		return "Moderate success rate. Consider fine-tuning your strategy."
	default:
		return "Low success rate in Monte Carlo analysis. Consider reducing withdrawal rate or increasing savings."
	}
}

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandModerate:
		return "moderate"
	default:
		return "low"
	}
}

// FirstBelowTarget scans the success-probability sequence in period order and
// returns the 1-based index of the first period strictly below target. The
// second return is false when every period meets or exceeds the target. Only
// the first crossing is reported even if the sequence recovers later.
func FirstBelowTarget(rates []float64, target float64) (int, bool) {
	for i, rate := range rates {
		if rate < target {
			return i + 1, true
		}
	}
	return 0, false
}

// MeanSuccessRate returns the arithmetic mean of the success probabilities.
// An empty sequence yields 0 rather than NaN.
func MeanSuccessRate(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates))
}

// Classify buckets the mean success probability: below 0.70 is low, above
// 0.90 is high, everything between (inclusive on both ends) is moderate.
func Classify(rates []float64) Band {
	mean := MeanSuccessRate(rates)
	switch {
	case mean < 0.7:
		return BandLow
	case mean > 0.9:
		return BandHigh
	default:
		return BandModerate
	}
}

// Milestones holds the first period labels at which post-tax real income
// reaches each income threshold. An empty label means the threshold was
// never reached.
type Milestones struct {
	LivableIncome   string
	ComfortableLife string
}

// IncomeMilestones scans the deterministic projection in period order and
// reports, independently per threshold, the first period whose post-tax real
// income reaches or exceeds it.
func IncomeMilestones(projection models.BasicProjection) Milestones {
	var m Milestones
	for _, label := range projection.SortedLabels() {
		income := projection[label].RealIncome
		if m.LivableIncome == "" && income >= LivableIncomeThreshold {
			m.LivableIncome = label
		}
		if m.ComfortableLife == "" && income >= ComfortableLifeThreshold {
			m.ComfortableLife = label
		}
	}
	return m
}

// Report aggregates everything the client derives from a completed Monte
// Carlo result and its parallel deterministic projection.
type Report struct {
	MeanSuccessRate float64
	Band            Band
	// FirstBelowTarget is the 1-based period index of the first target
	// crossing; 0 when no period falls below the target.
	FirstBelowTarget int
	Milestones       Milestones
}

// Derive builds a Report from the two completed projections and the
// configured target threshold.
func Derive(mc *models.MonteCarloResult, projection models.BasicProjection, target float64) Report {
	r := Report{
		MeanSuccessRate: MeanSuccessRate(mc.SuccessRates),
		Band:            Classify(mc.SuccessRates),
		Milestones:      IncomeMilestones(projection),
	}
	if idx, ok := FirstBelowTarget(mc.SuccessRates, target); ok {
		r.FirstBelowTarget = idx
	}
	return r
}
