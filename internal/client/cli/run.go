package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/insights"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
)

var errUnknownParameter = errors.New("unknown parameter, type 'params' to list them")

// ShowParams prints the current parameter set.
func (a *App) ShowParams() error {
	p := a.params
	printlnFn("Shared:")
	printlnFn(fmt.Sprintf("  balance        %.0f", p.Balance))
	printlnFn(fmt.Sprintf("  draw           %.4f", p.Draw))
	printlnFn(fmt.Sprintf("  duration       %d", p.Duration))
	printlnFn(fmt.Sprintf("  curr_exp       %.0f", p.CurrentExpenses))
	printlnFn(fmt.Sprintf("  tax_rate       %.4f", p.TaxRate))
	printlnFn(fmt.Sprintf("  annual_contrib %.0f (for %d years, drawdown from year %d)",
		p.AnnualContrib, p.AnnualContribYears, p.DrawdownStart))
	printlnFn("Basic:")
	printlnFn(fmt.Sprintf("  apy            %.4f", p.APY))
	printlnFn(fmt.Sprintf("  inflation      %.4f", p.Inflation))
	printlnFn("Monte Carlo:")
	printlnFn(fmt.Sprintf("  apy_mean       %.4f", p.APYMean))
	printlnFn(fmt.Sprintf("  apy_sd         %.4f", p.APYSD))
	printlnFn(fmt.Sprintf("  inflation_mean %.4f", p.InflationMean))
	printlnFn(fmt.Sprintf("  inflation_sd   %.4f", p.InflationSD))
	printlnFn(fmt.Sprintf("  simulations    %d", p.Simulations))
	printlnFn(fmt.Sprintf("  target         %.2f", p.TargetSuccessRate))
	return nil
}

// SetParam updates one parameter: set <name> <value>.
func (a *App) SetParam(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <name> <value>")
	}
	name, raw := args[0], args[1]

	setInt := func(dst *int) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", name, err)
		}
		*dst = v
		return nil
	}
	setFloat := func(dst *float64) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", name, err)
		}
		*dst = v
		return nil
	}

	switch name {
	case "balance":
		return setFloat(&a.params.Balance)
	case "apy":
		return setFloat(&a.params.APY)
	case "draw":
		return setFloat(&a.params.Draw)
	case "duration":
		return setInt(&a.params.Duration)
	case "curr_exp":
		return setFloat(&a.params.CurrentExpenses)
	case "tax_rate":
		return setFloat(&a.params.TaxRate)
	case "inflation":
		return setFloat(&a.params.Inflation)
	case "annual_contrib":
		return setFloat(&a.params.AnnualContrib)
	case "contrib_years":
		return setInt(&a.params.AnnualContribYears)
	case "drawdown_start":
		return setInt(&a.params.DrawdownStart)
	case "apy_mean":
		return setFloat(&a.params.APYMean)
	case "apy_sd":
		return setFloat(&a.params.APYSD)
	case "inflation_mean":
		return setFloat(&a.params.InflationMean)
	case "inflation_sd":
		return setFloat(&a.params.InflationSD)
	case "simulations":
		return setInt(&a.params.Simulations)
	case "target":
		return setFloat(&a.params.TargetSuccessRate)
	default:
		return errUnknownParameter
	}
}

// RunBasic runs the deterministic projection and renders the per-year table.
func (a *App) RunBasic(ctx context.Context) error {
	projection, err := a.runs.RunBasic(ctx, a.params)
	if err != nil {
		if errors.Is(err, api.ErrPaymentRequired) {
			printlnFn(api.RemoteMessage(err, "The server declined the run: no credits left."))
			printlnFn("Use 'buy' to purchase credits or 'verify' to link a membership.")
			return nil
		}
		return err
	}

	printlnFn(fmt.Sprintf("%-8s %14s %12s %12s %12s %12s  %s",
		"Year", "Principal", "Income", "Real", "Spend", "Surplus", "Status"))
	for _, label := range projection.SortedLabels() {
		row := projection[label]
		printlnFn(fmt.Sprintf("%-8s %14.2f %12.2f %12.2f %12.2f %12.2f  %s",
			label, row.Principal, row.Income, row.RealIncome, row.ProjectedSpend, row.Surplus, row.Status))
	}
	return nil
}

// RunMonteCarlo runs the probabilistic projection and renders the per-year
// success probabilities.
func (a *App) RunMonteCarlo(ctx context.Context) error {
	result, err := a.runs.RunMonteCarlo(ctx, a.params)
	if err != nil {
		if errors.Is(err, api.ErrPaymentRequired) {
			printlnFn(api.RemoteMessage(err, "The server declined the run: no credits left."))
			printlnFn("Use 'buy' to purchase credits or 'verify' to link a membership.")
			return nil
		}
		return err
	}

	printlnFn(fmt.Sprintf("Success probability per year (%d simulations):", a.params.Simulations))
	for i, rate := range result.SuccessRates {
		marker := ""
		if rate < a.params.TargetSuccessRate {
			marker = "  <- below target"
		}
		printlnFn(fmt.Sprintf("  Year %2d: %5.1f%%%s", i+1, rate*100, marker))
	}
	return nil
}

// Insights derives milestones and qualitative advice from the most recent
// pair of unsaved results. Both slots must be populated.
func (a *App) Insights(ctx context.Context) error {
	basic := a.sess.Results.Peek(models.CategoryBasic)
	mc := a.sess.Results.Peek(models.CategoryMonteCarlo)
	if basic == nil || mc == nil {
		return errors.New("run both a basic and a Monte Carlo simulation first")
	}

	report := insights.Derive(mc.Output.MonteCarlo, basic.Output.Basic, mc.Parameters.TargetSuccessRate)

	printlnFn(fmt.Sprintf("Mean success rate: %.1f%% (%s)", report.MeanSuccessRate*100, report.Band))
	printlnFn(report.Band.Advice())

	if report.FirstBelowTarget > 0 {
		printlnFn(fmt.Sprintf("Success rate first drops below the %.0f%% target in year %d.",
			mc.Parameters.TargetSuccessRate*100, report.FirstBelowTarget))
	} else {
		printlnFn("Every year meets the target success rate.")
	}

	if y := report.Milestones.LivableIncome; y != "" {
		printlnFn(fmt.Sprintf("Post-tax real income reaches $%d (livable) at %s.", insights.LivableIncomeThreshold, y))
	}
	if y := report.Milestones.ComfortableLife; y != "" {
		printlnFn(fmt.Sprintf("Post-tax real income reaches $%d (comfortable) at %s.", insights.ComfortableLifeThreshold, y))
	}
	return nil
}
