package api

import (
	"context"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
)

// RunRequest is the payload of a computation run: the parameter set plus the
// optional identity and profile association.
type RunRequest struct {
	Params    models.ParameterSet
	UserID    string
	ProfileID string
}

// SimulationPayload is what gets attached to a profile on save: the cached
// parameters and results of the most recent run of a category.
type SimulationPayload struct {
	Parameters models.ParameterSet      `json:"parameters"`
	Results    models.ComputationOutput `json:"results"`
}

// MembershipStatus is the outcome of a membership code exchange.
type MembershipStatus struct {
	IsMember bool
	Tier     string
}

// CheckoutResult is the response to a credit-purchase request. Exactly one of
// RedirectURL or CreditsGranted is meaningful: a fully satisfying promotional
// code grants credits directly with no redirect.
type CheckoutResult struct {
	RedirectURL    string
	CreditsGranted int
}

// Client is the remote computation/profile API consumed by the application
// services. All methods honor context cancellation and map remote failures
// to the sentinel errors in this package.
type Client interface {
	Ping(ctx context.Context) error

	RunBasic(ctx context.Context, req RunRequest) (models.BasicProjection, error)
	RunMonteCarlo(ctx context.Context, req RunRequest) (*models.MonteCarloResult, error)

	Entitlement(ctx context.Context, userID string) (models.Entitlement, error)

	Profiles(ctx context.Context, userID string) ([]models.Profile, error)
	CreateProfile(ctx context.Context, userID string, in models.ProfileInput) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID, profileID string, in models.ProfileInput) (models.Profile, error)
	DeleteProfile(ctx context.Context, userID, profileID string) error

	SaveSimulation(ctx context.Context, userID, profileID string, category models.Category, payload SimulationPayload) (models.SavedSimulation, error)
	Simulations(ctx context.Context, userID, profileID string) ([]models.SavedSimulation, error)
	DeleteSimulation(ctx context.Context, userID, profileID, simulationID string) error
	Report(ctx context.Context, userID, profileID string) ([]byte, error)

	MembershipAuthURL(ctx context.Context) (string, error)
	MembershipCallback(ctx context.Context, userID, code string) (MembershipStatus, error)
	JoinCampaign(ctx context.Context, userID, tier string) (string, error)

	Checkout(ctx context.Context, userID, planID, promoCode string) (CheckoutResult, error)

	Close() error
}
