package entitlement

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/repositories/runcount"
)

// FreeRunLimit is how many computation runs a guest session gets before it
// must sign in.
const FreeRunLimit = 5

// Fetcher retrieves the server-authoritative entitlement for a user.
// The api client satisfies this.
type Fetcher interface {
	Entitlement(ctx context.Context, userID string) (models.Entitlement, error)
}

// Engine gates computation runs and applies post-run accounting.
//
// Accounting is server-authoritative for authenticated users (the engine only
// re-fetches, never decrements locally) and counter-based for guests. The
// guest counter is persisted outside process memory and never transmitted to
// the remote service.
type Engine struct {
	store   *Store
	counter runcount.Repository
	fetcher Fetcher
}

// NewEngine binds the decision engine to the session's entitlement store, the
// persisted guest run counter, and the remote entitlement source.
func NewEngine(store *Store, counter runcount.Repository, fetcher Fetcher) *Engine {
	return &Engine{store: store, counter: counter, fetcher: fetcher}
}

// MayRun reports whether a new computation may be started. Guests are allowed
// while their persisted counter is below FreeRunLimit. Authenticated users
// are allowed on the first of: unlimited flag, active subscription, positive
// credits. Credits are not consulted for unlimited/subscribed users.
func (e *Engine) MayRun(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		runs, err := e.counter.Count(ctx)
		if err != nil {
			return false, fmt.Errorf("reading guest run counter: %w", err)
		}
		return runs < FreeRunLimit, nil
	}

	ent := e.store.Current()
	if ent.Unlimited {
		return true, nil
	}
	if ent.SubscriptionStatus == models.SubscriptionActive {
		return true, nil
	}
	return ent.Credits > 0, nil
}

// AccountRun applies post-run accounting. Call it only after the remote
// service accepted the run; gating rejections and transport failures must not
// consume entitlement.
func (e *Engine) AccountRun(ctx context.Context, userID string) error {
	if userID == "" {
		if _, err := e.counter.Increment(ctx); err != nil {
			return fmt.Errorf("advancing guest run counter: %w", err)
		}
		return nil
	}

	ent, err := e.fetcher.Entitlement(ctx, userID)
	if err != nil {
		return fmt.Errorf("refreshing entitlement: %w", err)
	}
	e.store.Replace(ent)
	return nil
}

// Refresh re-fetches the entitlement for an authenticated user outside the
// run path (payment events, membership verification).
func (e *Engine) Refresh(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	ent, err := e.fetcher.Entitlement(ctx, userID)
	if err != nil {
		return fmt.Errorf("refreshing entitlement: %w", err)
	}
	e.store.Replace(ent)
	return nil
}

// GuestRuns returns the persisted guest run count and whether the free limit
// has been reached.
func (e *Engine) GuestRuns(ctx context.Context) (int, bool, error) {
	runs, err := e.counter.Count(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("reading guest run counter: %w", err)
	}
	return runs, runs >= FreeRunLimit, nil
}
