package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/browser"
	"github.com/dmitrijs2005/glidepath/internal/client/entitlement"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/logging"
)

// PurchaseOutcome reports how a credit purchase concluded: the user was sent
// to an external checkout page, or a promotional code granted credits
// directly with no redirect.
type PurchaseOutcome struct {
	RedirectURL    string
	CreditsGranted int
}

// CheckoutService submits credit-purchase requests.
type CheckoutService struct {
	client   api.Client
	sess     *session.Session
	engine   *entitlement.Engine
	launcher browser.Launcher
	log      logging.Logger
}

func NewCheckoutService(client api.Client, sess *session.Session, engine *entitlement.Engine,
	launcher browser.Launcher, log logging.Logger) *CheckoutService {
	return &CheckoutService{client: client, sess: sess, engine: engine, launcher: launcher, log: log}
}

// Purchase submits a plan purchase with an optional promotional code. When
// the code fully satisfies the request the credits are granted directly and
// the entitlement is refreshed; otherwise the browser is sent to the
// returned checkout page and the entitlement updates once the external flow
// completes server-side.
func (s *CheckoutService) Purchase(ctx context.Context, planID, promoCode string) (PurchaseOutcome, error) {
	ident := s.sess.Identity()
	if ident.IsGuest() {
		return PurchaseOutcome{}, fmt.Errorf("%w to purchase credits", ErrLoginRequired)
	}

	result, err := s.client.Checkout(ctx, ident.UserID, planID, promoCode)
	if err != nil {
		return PurchaseOutcome{}, fmt.Errorf("checkout failed: %w", err)
	}

	if result.CreditsGranted > 0 {
		if err := s.engine.Refresh(ctx, ident.UserID); err != nil {
			s.log.Warn(ctx, "entitlement refresh after credit grant failed", "error", err)
		}
		return PurchaseOutcome{CreditsGranted: result.CreditsGranted}, nil
	}

	if result.RedirectURL != "" {
		if _, err := s.launcher.Open(result.RedirectURL); err != nil {
			return PurchaseOutcome{RedirectURL: result.RedirectURL}, fmt.Errorf("opening checkout page: %w", err)
		}
	}
	return PurchaseOutcome{RedirectURL: result.RedirectURL}, nil
}
