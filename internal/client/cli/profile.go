package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/glidepath/internal/client/identity"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/services"
)

var errLoginRequired = errors.New("please log in first")

// requireSession gates commands that need an authenticated, unexpired
// session.
func (a *App) requireSession() error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	if a.account.Expired() {
		return identity.ErrTokenExpired
	}
	return nil
}

// Profiles lists the user's profiles, marking the selected save target.
func (a *App) Profiles(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	profiles, err := a.profiles.Refresh(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		printlnFn("No profiles yet. Create one with 'newprofile'.")
		return nil
	}

	selected := a.sess.SelectedProfile()
	for _, p := range profiles {
		marker := "  "
		if p.ID == selected {
			marker = "* "
		}
		printlnFn(fmt.Sprintf("%s%s  %s (age %d, created %s)", marker, p.ID, p.Name, p.Age, p.CreatedDate))
	}
	return nil
}

// NewProfile prompts for the profile fields and creates the profile.
func (a *App) NewProfile(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	in, err := a.promptProfileInput()
	if err != nil {
		return err
	}
	profile, err := a.profiles.Create(ctx, in)
	if err != nil {
		return err
	}
	printlnFn("Created profile", profile.Name, "with id", profile.ID)
	return nil
}

// EditProfile prompts for new field values and updates the profile.
func (a *App) EditProfile(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: editprofile <id>")
	}
	in, err := a.promptProfileInput()
	if err != nil {
		return err
	}
	profile, err := a.profiles.Update(ctx, args[0], in)
	if err != nil {
		return err
	}
	printlnFn("Updated profile", profile.Name)
	return nil
}

// DeleteProfile removes a profile and everything saved under it.
func (a *App) DeleteProfile(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: delprofile <id>")
	}
	if err := a.profiles.Delete(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Profile deleted.")
	return nil
}

// Use selects the save-target profile.
func (a *App) Use(args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: use <id>")
	}
	if !a.sess.SelectProfile(args[0]) {
		return errors.New("no such profile, run 'profiles' to list them")
	}
	printlnFn("Selected profile", args[0])
	return nil
}

// Save persists unsaved results to the selected profile: save <basic|mc|all>.
func (a *App) Save(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: save <basic|mc|all>")
	}
	profileID := a.sess.SelectedProfile()

	switch args[0] {
	case "basic":
		if err := a.profiles.Save(ctx, profileID, models.CategoryBasic); err != nil {
			return err
		}
		printlnFn("Basic simulation saved.")
	case "mc":
		if err := a.profiles.Save(ctx, profileID, models.CategoryMonteCarlo); err != nil {
			return err
		}
		printlnFn("Monte Carlo simulation saved.")
	case "all":
		report, err := a.profiles.SaveAll(ctx, profileID)
		if err != nil {
			return err
		}
		printlnFn(report.Summary())
	default:
		return errors.New("usage: save <basic|mc|all>")
	}
	return nil
}

// Sims lists the simulations saved under the selected profile.
func (a *App) Sims(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	profileID := a.sess.SelectedProfile()
	if profileID == "" {
		return services.ErrNoProfileSelected
	}
	sims, err := a.profiles.Simulations(ctx, profileID)
	if err != nil {
		return err
	}
	if len(sims) == 0 {
		printlnFn("No saved simulations for this profile.")
		return nil
	}
	for _, sim := range sims {
		printlnFn(fmt.Sprintf("%s  %-11s saved %s", sim.ID, sim.Category.Title(), sim.CreatedAt))
	}
	return nil
}

// DeleteSim removes one saved simulation from the selected profile.
func (a *App) DeleteSim(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: delsim <id>")
	}
	profileID := a.sess.SelectedProfile()
	if profileID == "" {
		return services.ErrNoProfileSelected
	}
	if err := a.profiles.DeleteSimulation(ctx, profileID, args[0]); err != nil {
		return err
	}
	printlnFn("Saved simulation deleted.")
	return nil
}

// Report downloads the consolidated PDF report for the selected profile into
// the working directory.
func (a *App) Report(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	profileID := a.sess.SelectedProfile()
	if profileID == "" {
		return services.ErrNoProfileSelected
	}
	path, err := a.profiles.Report(ctx, profileID, ".")
	if err != nil {
		return err
	}
	printlnFn("Report written to", path)
	return nil
}

func (a *App) promptProfileInput() (models.ProfileInput, error) {
	name, err := GetSimpleText(a.reader, "Profile name", os.Stdout)
	if err != nil {
		return models.ProfileInput{}, err
	}
	rawAge, err := GetSimpleText(a.reader, "Age", os.Stdout)
	if err != nil {
		return models.ProfileInput{}, err
	}
	age, err := strconv.Atoi(rawAge)
	if err != nil {
		return models.ProfileInput{}, errors.New("age must be a whole number")
	}
	return models.ProfileInput{Name: name, Age: age}, nil
}
