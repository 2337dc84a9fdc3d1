package insights

import (
	"testing"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestFirstBelowTarget_ReportsFirstCrossingOnly(t *testing.T) {
	// Year 3 dips below and year 4 recovers; only the dip is reported.
	idx, ok := FirstBelowTarget([]float64{0.95, 0.92, 0.88, 0.91}, 0.9)
	require.True(t, ok)
	require.Equal(t, 3, idx)
}

func TestFirstBelowTarget_AllAboveTarget(t *testing.T) {
	idx, ok := FirstBelowTarget([]float64{0.95, 0.92}, 0.9)
	require.False(t, ok)
	require.Zero(t, idx)
}

func TestFirstBelowTarget_ExactlyAtTargetDoesNotCross(t *testing.T) {
	_, ok := FirstBelowTarget([]float64{0.9, 0.9}, 0.9)
	require.False(t, ok)
}

func TestFirstBelowTarget_Empty(t *testing.T) {
	_, ok := FirstBelowTarget(nil, 0.9)
	require.False(t, ok)
}

func TestMeanSuccessRate_EmptyIsZeroNotNaN(t *testing.T) {
	require.Zero(t, MeanSuccessRate(nil))
}

func TestClassify_Bands(t *testing.T) {
	require.Equal(t, BandLow, Classify([]float64{0.5, 0.6}))
	require.Equal(t, BandHigh, Classify([]float64{0.95, 0.97}))
	require.Equal(t, BandModerate, Classify([]float64{0.8}))

	// Both boundaries are inclusive on the moderate side.
	require.Equal(t, BandModerate, Classify([]float64{0.7}))
	require.Equal(t, BandModerate, Classify([]float64{0.9}))
}

func TestClassify_EmptyIsLow(t *testing.T) {
	require.Equal(t, BandLow, Classify(nil))
}

func TestBand_Advice(t *testing.T) {
	require.Contains(t, BandLow.Advice(), "Low success rate")
	require.Contains(t, BandModerate.Advice(), "fine-tuning")
	require.Contains(t, BandHigh.Advice(), "good retirement plan")
}

func TestIncomeMilestones_IndependentThresholds(t *testing.T) {
	projection := models.BasicProjection{
		"Year-1": {RealIncome: 40000},
		"Year-2": {RealIncome: 80000},
		"Year-3": {RealIncome: 210000},
	}
	m := IncomeMilestones(projection)
	require.Equal(t, "Year-2", m.LivableIncome)
	require.Equal(t, "Year-3", m.ComfortableLife)
}

func TestIncomeMilestones_ExactThresholdCounts(t *testing.T) {
	projection := models.BasicProjection{
		"Year-1": {RealIncome: 75000},
	}
	m := IncomeMilestones(projection)
	require.Equal(t, "Year-1", m.LivableIncome)
	require.Empty(t, m.ComfortableLife)
}

func TestIncomeMilestones_NeverReached(t *testing.T) {
	projection := models.BasicProjection{
		"Year-1": {RealIncome: 30000},
		"Year-2": {RealIncome: 35000},
	}
	m := IncomeMilestones(projection)
	require.Empty(t, m.LivableIncome)
	require.Empty(t, m.ComfortableLife)
}

func TestIncomeMilestones_ScansInPeriodOrder(t *testing.T) {
	// Year-10 sorts after Year-2 numerically, not lexically.
	projection := models.BasicProjection{
		"Year-10": {RealIncome: 90000},
		"Year-2":  {RealIncome: 80000},
		"Year-1":  {RealIncome: 10000},
	}
	m := IncomeMilestones(projection)
	require.Equal(t, "Year-2", m.LivableIncome)
}

func TestDerive_CombinesEverything(t *testing.T) {
	mc := &models.MonteCarloResult{SuccessRates: []float64{0.95, 0.92, 0.88, 0.91}}
	projection := models.BasicProjection{
		"Year-1": {RealIncome: 40000},
		"Year-2": {RealIncome: 80000},
	}

	report := Derive(mc, projection, 0.9)
	require.InDelta(t, 0.915, report.MeanSuccessRate, 1e-9)
	require.Equal(t, BandHigh, report.Band)
	require.Equal(t, 3, report.FirstBelowTarget)
	require.Equal(t, "Year-2", report.Milestones.LivableIncome)
	require.Empty(t, report.Milestones.ComfortableLife)
}
