package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/logging"
)

var (
	// ErrNoProfileSelected rejects a save locally before any network call.
	ErrNoProfileSelected = errors.New("please select a profile first")

	// ErrNothingToSave rejects a save when the cache slot for the category
	// is empty.
	ErrNothingToSave = errors.New("run a simulation first, there is nothing to save")

	// ErrNoSavedSimulations rejects a report request for a profile with no
	// saved simulations.
	ErrNoSavedSimulations = errors.New("profile has no saved simulations to report on")

	errProfileFieldsRequired = errors.New("profile name and age are required")
)

// ProfileService is the gateway to the remote profile store. A successful
// save clears the corresponding cache slot and refreshes the profile list; a
// failed save leaves the slot intact so the user may retry.
type ProfileService struct {
	client api.Client
	sess   *session.Session
	log    logging.Logger
}

func NewProfileService(client api.Client, sess *session.Session, log logging.Logger) *ProfileService {
	return &ProfileService{client: client, sess: sess, log: log}
}

// Refresh fetches the profile list and replaces the session's cached copy.
func (s *ProfileService) Refresh(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.client.Profiles(ctx, s.sess.UserID())
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}
	s.sess.SetProfiles(profiles)
	return profiles, nil
}

// Create adds a profile and refreshes the cached list.
func (s *ProfileService) Create(ctx context.Context, in models.ProfileInput) (models.Profile, error) {
	if strings.TrimSpace(in.Name) == "" || in.Age <= 0 {
		return models.Profile{}, errProfileFieldsRequired
	}
	profile, err := s.client.CreateProfile(ctx, s.sess.UserID(), in)
	if err != nil {
		return models.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	s.refreshQuietly(ctx)
	return profile, nil
}

// Update edits an existing profile and refreshes the cached list.
func (s *ProfileService) Update(ctx context.Context, profileID string, in models.ProfileInput) (models.Profile, error) {
	if strings.TrimSpace(in.Name) == "" || in.Age <= 0 {
		return models.Profile{}, errProfileFieldsRequired
	}
	profile, err := s.client.UpdateProfile(ctx, s.sess.UserID(), profileID, in)
	if err != nil {
		return models.Profile{}, fmt.Errorf("updating profile: %w", err)
	}
	s.refreshQuietly(ctx)
	return profile, nil
}

// Delete removes a profile. The remote side cascades the delete to every
// simulation saved under it.
func (s *ProfileService) Delete(ctx context.Context, profileID string) error {
	if err := s.client.DeleteProfile(ctx, s.sess.UserID(), profileID); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	s.refreshQuietly(ctx)
	return nil
}

// Save attaches the cached unsaved result for category to the profile.
// Preconditions are checked locally; no network call is made when they fail.
// On success the cache slot is cleared; besides a newer run, that is the only
// path that removes a pending result.
func (s *ProfileService) Save(ctx context.Context, profileID string, category models.Category) error {
	if profileID == "" {
		return ErrNoProfileSelected
	}
	entry := s.sess.Results.Peek(category)
	if entry == nil {
		return ErrNothingToSave
	}

	payload := api.SimulationPayload{Parameters: entry.Parameters, Results: entry.Output}
	if _, err := s.client.SaveSimulation(ctx, s.sess.UserID(), profileID, category, payload); err != nil {
		return fmt.Errorf("saving %s simulation: %w", category.Title(), err)
	}

	s.sess.Results.Clear(category)
	s.refreshQuietly(ctx)
	return nil
}

// SaveOutcome is the per-category result of a compound save.
type SaveOutcome struct {
	Category models.Category
	Err      error
}

// SaveReport aggregates a compound save. Partial failure is reported
// descriptively, never escalated: successes are not rolled back.
type SaveReport struct {
	Outcomes []SaveOutcome
}

// Saved lists the categories that were persisted (and whose cache slots were
// cleared).
func (r SaveReport) Saved() []models.Category {
	var out []models.Category
	for _, o := range r.Outcomes {
		if o.Err == nil {
			out = append(out, o.Category)
		}
	}
	return out
}

// Failed lists the categories whose save failed (cache slots left intact).
func (r SaveReport) Failed() []SaveOutcome {
	var out []SaveOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Summary renders the combined success/failure message.
func (r SaveReport) Summary() string {
	var parts []string
	if saved := r.Saved(); len(saved) > 0 {
		titles := make([]string, len(saved))
		for i, c := range saved {
			titles[i] = c.Title()
		}
		parts = append(parts, fmt.Sprintf("saved: %s", strings.Join(titles, " and ")))
	}
	for _, o := range r.Failed() {
		parts = append(parts, fmt.Sprintf("%s failed: %s", o.Category.Title(), o.Err))
	}
	if len(parts) == 0 {
		return "nothing to save"
	}
	return strings.Join(parts, "; ")
}

// SaveAll attempts to persist every pending cache slot independently,
// continuing past individual failures. Only slots that succeeded are
// cleared. The returned error covers local preconditions only.
func (s *ProfileService) SaveAll(ctx context.Context, profileID string) (SaveReport, error) {
	if profileID == "" {
		return SaveReport{}, ErrNoProfileSelected
	}
	pending := s.sess.Results.Pending()
	if len(pending) == 0 {
		return SaveReport{}, ErrNothingToSave
	}

	var report SaveReport
	saved := 0
	for _, category := range pending {
		entry := s.sess.Results.Peek(category)
		payload := api.SimulationPayload{Parameters: entry.Parameters, Results: entry.Output}
		_, err := s.client.SaveSimulation(ctx, s.sess.UserID(), profileID, category, payload)
		if err == nil {
			s.sess.Results.Clear(category)
			saved++
		}
		report.Outcomes = append(report.Outcomes, SaveOutcome{Category: category, Err: err})
	}

	if saved > 0 {
		s.refreshQuietly(ctx)
	}
	return report, nil
}

// Simulations lists the simulations saved under a profile.
func (s *ProfileService) Simulations(ctx context.Context, profileID string) ([]models.SavedSimulation, error) {
	sims, err := s.client.Simulations(ctx, s.sess.UserID(), profileID)
	if err != nil {
		return nil, fmt.Errorf("fetching saved simulations: %w", err)
	}
	return sims, nil
}

// DeleteSimulation removes one saved simulation from a profile.
func (s *ProfileService) DeleteSimulation(ctx context.Context, profileID, simulationID string) error {
	if err := s.client.DeleteSimulation(ctx, s.sess.UserID(), profileID, simulationID); err != nil {
		return fmt.Errorf("deleting saved simulation: %w", err)
	}
	s.refreshQuietly(ctx)
	return nil
}

// Report downloads the consolidated PDF report for a profile into dir and
// returns the written path. The profile must hold at least one saved
// simulation; the check runs client-side so the common case fails fast with
// a clear message.
func (s *ProfileService) Report(ctx context.Context, profileID, dir string) (string, error) {
	sims, err := s.Simulations(ctx, profileID)
	if err != nil {
		return "", err
	}
	if len(sims) == 0 {
		return "", ErrNoSavedSimulations
	}

	data, err := s.client.Report(ctx, s.sess.UserID(), profileID)
	if err != nil {
		return "", fmt.Errorf("generating report: %w", err)
	}

	path := filepath.Join(dir, reportFileName(s.profileName(profileID)))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func (s *ProfileService) profileName(profileID string) string {
	for _, p := range s.sess.Profiles() {
		if p.ID == profileID {
			return p.Name
		}
	}
	return profileID
}

func reportFileName(name string) string {
	return "retirement_report_" + strings.ReplaceAll(name, " ", "_") + ".pdf"
}

// refreshQuietly refreshes the cached profile list after a mutation. The
// mutation itself already succeeded, so a refresh failure is only logged.
func (s *ProfileService) refreshQuietly(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "profile list refresh failed", "error", err)
	}
}
