package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/entitlement"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/logging"
)

var (
	// ErrFreeLimitReached is the gating rejection for guests. No network
	// call has been made when this is returned.
	ErrFreeLimitReached = errors.New("free simulation limit reached, please log in or sign up for more runs")

	// ErrNoCreditsRemaining is the gating rejection for authenticated users
	// without unlimited access, an active subscription, or credits.
	ErrNoCreditsRemaining = errors.New("no credits remaining, please purchase more credits or subscribe")
)

// RunService drives one computation run end to end, in fixed order: gating
// check, remote request, result cache write, accounting update. Accounting is
// never applied before the remote outcome is known.
type RunService struct {
	client api.Client
	sess   *session.Session
	engine *entitlement.Engine
	log    logging.Logger
}

func NewRunService(client api.Client, sess *session.Session, engine *entitlement.Engine, log logging.Logger) *RunService {
	return &RunService{client: client, sess: sess, engine: engine, log: log}
}

// RunBasic runs a deterministic projection.
func (s *RunService) RunBasic(ctx context.Context, params models.ParameterSet) (models.BasicProjection, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}

	ident := s.sess.Identity()
	req := api.RunRequest{Params: params, UserID: ident.UserID}

	projection, err := s.client.RunBasic(ctx, req)
	if err != nil {
		return nil, s.runError(models.CategoryBasic, err)
	}

	output := models.ComputationOutput{Category: models.CategoryBasic, Basic: projection}
	s.sess.Results.Record(models.CategoryBasic, params, output)
	s.account(ctx, ident.UserID)
	return projection, nil
}

// RunMonteCarlo runs a probabilistic projection. A selected profile, if any,
// is associated with the request.
func (s *RunService) RunMonteCarlo(ctx context.Context, params models.ParameterSet) (*models.MonteCarloResult, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}

	ident := s.sess.Identity()
	req := api.RunRequest{Params: params, UserID: ident.UserID, ProfileID: s.sess.SelectedProfile()}

	result, err := s.client.RunMonteCarlo(ctx, req)
	if err != nil {
		return nil, s.runError(models.CategoryMonteCarlo, err)
	}

	output := models.ComputationOutput{Category: models.CategoryMonteCarlo, MonteCarlo: result}
	s.sess.Results.Record(models.CategoryMonteCarlo, params, output)
	s.account(ctx, ident.UserID)
	return result, nil
}

// gate rejects the run locally when the session is not entitled to one.
func (s *RunService) gate(ctx context.Context) error {
	ident := s.sess.Identity()
	allowed, err := s.engine.MayRun(ctx, ident.UserID)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}
	if ident.IsGuest() {
		return ErrFreeLimitReached
	}
	return ErrNoCreditsRemaining
}

// runError converts a remote run failure into a category-specific message.
// Neither branch has consumed entitlement; no accounting runs on failure.
func (s *RunService) runError(category models.Category, err error) error {
	if errors.Is(err, api.ErrPaymentRequired) {
		return fmt.Errorf("%s simulation rejected: %w", category.Title(), err)
	}
	return fmt.Errorf("failed to fetch %s simulation results: %w", category.Title(), err)
}

// account applies post-run accounting. The run itself already succeeded, so
// an accounting refresh failure is logged rather than surfaced as a run
// failure; the server-side books are correct either way.
func (s *RunService) account(ctx context.Context, userID string) {
	if err := s.engine.AccountRun(ctx, userID); err != nil {
		s.log.Warn(ctx, "post-run accounting failed", "error", err)
	}
}
