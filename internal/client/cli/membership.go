package cli

import (
	"context"
	"errors"
	"fmt"
)

// Credits fetches the current entitlement from the backend and prints it.
// For guests it reports local free-run usage instead.
func (a *App) Credits(ctx context.Context) error {
	ident := a.sess.Identity()
	if ident.IsGuest() {
		runs, limitReached, err := a.engine.GuestRuns(ctx)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Guest: %d free run(s) used.", runs))
		if limitReached {
			printlnFn("Free limit reached. Log in or sign up to keep simulating.")
		}
		return nil
	}

	if err := a.engine.Refresh(ctx, ident.UserID); err != nil {
		return fmt.Errorf("fetching entitlement: %w", err)
	}

	e := a.sess.Entitlements.Current()
	printlnFn("Credits:", e.Credits)
	printlnFn("Subscription:", string(e.SubscriptionStatus))
	if e.Unlimited {
		printlnFn("Unlimited access: yes")
	}
	if e.MembershipVerified {
		tier := e.MembershipTier
		if tier == "" {
			tier = "member"
		}
		printlnFn("Membership: verified (" + tier + ")")
	}
	return nil
}

// Verify runs the popup membership handshake end to end.
func (a *App) Verify(ctx context.Context) error {
	printlnFn("Opening your browser to verify membership...")
	result, err := a.membership.Verify(ctx)
	if err != nil {
		return err
	}
	if !result.Verified {
		printlnFn("No active membership found for this account.")
		return nil
	}
	if result.Tier != "" {
		printlnFn("Membership verified, tier:", result.Tier)
	} else {
		printlnFn("Membership verified.")
	}
	return nil
}

// Join opens the campaign-join page in the browser: join [tier].
func (a *App) Join(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.New("usage: join [tier]")
	}
	tier := ""
	if len(args) == 1 {
		tier = args[0]
	}
	if err := a.membership.JoinCampaign(ctx, tier); err != nil {
		return err
	}
	printlnFn("Opening the campaign page in your browser. Run 'verify' once you have joined.")
	return nil
}
