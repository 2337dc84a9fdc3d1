package cli

import (
	"context"
	"errors"
	"fmt"
)

// Buy submits a credit purchase: buy <plan> [promo-code].
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: buy <plan> [promo-code]")
	}
	plan := args[0]
	promo := ""
	if len(args) == 2 {
		promo = args[1]
	}

	outcome, err := a.checkout.Purchase(ctx, plan, promo)
	if err != nil {
		return err
	}

	if outcome.CreditsGranted > 0 {
		printlnFn(fmt.Sprintf("Promo code accepted: %d credit(s) added to your account.", outcome.CreditsGranted))
		return nil
	}
	if outcome.RedirectURL != "" {
		printlnFn("Opening the checkout page in your browser. Credits appear after payment completes.")
		return nil
	}
	printlnFn("Checkout accepted.")
	return nil
}
