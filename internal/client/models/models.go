// Package models defines the client-side domain types for GlidePath:
// computation categories, simulation parameters and results, entitlements,
// and profile records.
package models

import (
	"sort"
	"strconv"
	"strings"
)

// Category identifies one of the two computation kinds.
type Category string

const (
	CategoryBasic      Category = "basic"
	CategoryMonteCarlo Category = "monte_carlo"
)

// Categories lists the known categories in presentation order.
func Categories() []Category {
	return []Category{CategoryBasic, CategoryMonteCarlo}
}

// Title returns a human-readable name for the category.
func (c Category) Title() string {
	if c == CategoryMonteCarlo {
		return "Monte Carlo"
	}
	return "Basic"
}

// ParameterSet carries the inputs of a projection run. Both categories share
// one set: the deterministic projection reads APY/Inflation, the Monte Carlo
// projection reads the mean/sd pairs instead.
type ParameterSet struct {
	Balance            float64 `json:"balance"`
	APY                float64 `json:"apy"`
	Draw               float64 `json:"draw"`
	Duration           int     `json:"duration"`
	CurrentExpenses    float64 `json:"curr_exp"`
	TaxRate            float64 `json:"tax_rate"`
	Inflation          float64 `json:"inflation"`
	AnnualContrib      float64 `json:"annual_contrib,omitempty"`
	AnnualContribYears int     `json:"annual_contrib_years,omitempty"`
	DrawdownStart      int     `json:"drawdown_start,omitempty"`
	APYMean            float64 `json:"apy_mean,omitempty"`
	APYSD              float64 `json:"apy_sd,omitempty"`
	InflationMean      float64 `json:"inflation_mean,omitempty"`
	InflationSD        float64 `json:"inflation_sd,omitempty"`
	Simulations        int     `json:"simulations,omitempty"`
	TargetSuccessRate  float64 `json:"target_success_rate,omitempty"`
}

// DefaultParameters mirrors the form defaults of the web client.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Balance:           1000000,
		APY:               0.07,
		Draw:              0.04,
		Duration:          30,
		CurrentExpenses:   50000,
		TaxRate:           0.22,
		Inflation:         0.025,
		APYMean:           0.07,
		APYSD:             0.15,
		InflationMean:     0.025,
		InflationSD:       0.01,
		Simulations:       1000,
		TargetSuccessRate: 0.9,
	}
}

// YearRow is one period of the deterministic projection.
//
// The wire key for RealIncome really does contain a space; it is a quirk of
// the computation API that every consumer has to reproduce.
type YearRow struct {
	Principal      float64 `json:"principal"`
	Income         float64 `json:"income"`
	RealIncome     float64 `json:"real_income cap"`
	ProjectedSpend float64 `json:"projected_spend"`
	Surplus        float64 `json:"surplus"`
	Status         string  `json:"status"`
}

// BasicProjection maps "Year-N" labels to projection rows.
type BasicProjection map[string]YearRow

// SortedLabels returns the period labels ordered by their numeric suffix,
// e.g. Year-1, Year-2, ..., Year-10.
func (p BasicProjection) SortedLabels() []string {
	labels := make([]string, 0, len(p))
	for label := range p {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return yearIndex(labels[i]) < yearIndex(labels[j])
	})
	return labels
}

func yearIndex(label string) int {
	_, suffix, ok := strings.Cut(label, "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

// MonteCarloResult holds per-period success probabilities in [0,1],
// ordered by period.
type MonteCarloResult struct {
	SuccessRates []float64 `json:"success_rates"`
}

// ComputationOutput is the tagged union of the two result kinds. Exactly one
// of Basic/MonteCarlo is non-nil, matching Category.
type ComputationOutput struct {
	Category   Category          `json:"category"`
	Basic      BasicProjection   `json:"basic,omitempty"`
	MonteCarlo *MonteCarloResult `json:"monte_carlo,omitempty"`
}

// SubscriptionStatus is the remote-reported legacy subscription state.
type SubscriptionStatus string

const (
	SubscriptionNone    SubscriptionStatus = "none"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// Entitlement is the set of facts determining whether an authenticated
// session may trigger a paid computation. Accounting is server-authoritative;
// the client only ever replaces this wholesale from a fetch.
type Entitlement struct {
	Credits            int
	SubscriptionStatus SubscriptionStatus
	Unlimited          bool
	MembershipVerified bool
	MembershipTier     string
}

// Badge returns the short status string shown next to the user's identity.
func (e Entitlement) Badge() string {
	switch {
	case e.MembershipVerified:
		return "member"
	case e.Unlimited:
		return "unlimited"
	case e.SubscriptionStatus == SubscriptionActive:
		return "subscribed"
	default:
		return strconv.Itoa(e.Credits) + " credits"
	}
}

// ProfileInput carries the user-editable profile fields.
type ProfileInput struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	CreatedDate string `json:"date_created,omitempty"`
}

// Profile is a durable, user-owned record simulations can be attached to.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	CreatedDate string `json:"date_created"`
	CreatedAt   string `json:"created_at"`
}

// SavedSimulation is a simulation attached to a profile. Results stay opaque
// to list views; only the category and timestamps are interpreted.
type SavedSimulation struct {
	ID        string            `json:"id"`
	ProfileID string            `json:"client_id"`
	Category  Category          `json:"type"`
	CreatedAt string            `json:"created_at"`
	Params    ParameterSet      `json:"parameters"`
	Output    ComputationOutput `json:"results"`
}
