package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
)

// HTTPClient is the concrete Client speaking the GlidePath JSON API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
}

// NewHTTPClient constructs a client for the API at baseURL. Each call is
// bounded by timeout on top of whatever deadline the caller's context has.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		timeout: timeout,
	}
}

func (c *HTTPClient) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// mapError converts a non-2xx response into a package error, preserving the
// server-provided message when the body carries one.
func mapError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	apiErr := &Error{Status: status, Message: payload.Error}
	switch status {
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %w", ErrPaymentRequired, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	default:
		return apiErr
	}
}

func userQuery(userID string) url.Values {
	q := url.Values{}
	if userID != "" {
		q.Set("user_id", userID)
	}
	return q
}

// Ping checks service liveness.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

type runPayload struct {
	models.ParameterSet
	UserID    string `json:"user_id,omitempty"`
	ProfileID string `json:"client_id,omitempty"`
}

// RunBasic requests a deterministic projection.
func (c *HTTPClient) RunBasic(ctx context.Context, req RunRequest) (models.BasicProjection, error) {
	var out models.BasicProjection
	payload := runPayload{ParameterSet: req.Params, UserID: req.UserID, ProfileID: req.ProfileID}
	if err := c.do(ctx, http.MethodPost, "/api/simulate", nil, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunMonteCarlo requests a probabilistic projection.
func (c *HTTPClient) RunMonteCarlo(ctx context.Context, req RunRequest) (*models.MonteCarloResult, error) {
	var out models.MonteCarloResult
	payload := runPayload{ParameterSet: req.Params, UserID: req.UserID, ProfileID: req.ProfileID}
	if err := c.do(ctx, http.MethodPost, "/api/monte-carlo", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type entitlementPayload struct {
	Credits            int     `json:"credits"`
	SubscriptionStatus string  `json:"subscription_status"`
	Unlimited          bool    `json:"unlimited"`
	PatreonMember      bool    `json:"patreon_member"`
	PatreonTier        *string `json:"patreon_tier"`
}

// Entitlement fetches the server-authoritative usage state for a user.
func (c *HTTPClient) Entitlement(ctx context.Context, userID string) (models.Entitlement, error) {
	var payload entitlementPayload
	if err := c.do(ctx, http.MethodGet, "/api/user-credits", userQuery(userID), nil, &payload); err != nil {
		return models.Entitlement{}, err
	}
	ent := models.Entitlement{
		Credits:            payload.Credits,
		SubscriptionStatus: models.SubscriptionStatus(payload.SubscriptionStatus),
		Unlimited:          payload.Unlimited,
		MembershipVerified: payload.PatreonMember,
	}
	if payload.PatreonTier != nil {
		ent.MembershipTier = *payload.PatreonTier
	}
	return ent, nil
}

type profileEnvelope struct {
	UserID      string             `json:"user_id"`
	ProfileData models.ProfileInput `json:"client_data"`
}

// Profiles lists all profiles owned by the user.
func (c *HTTPClient) Profiles(ctx context.Context, userID string) ([]models.Profile, error) {
	var out []models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/clients", userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProfile creates a new profile.
func (c *HTTPClient) CreateProfile(ctx context.Context, userID string, in models.ProfileInput) (models.Profile, error) {
	var out models.Profile
	body := profileEnvelope{UserID: userID, ProfileData: in}
	if err := c.do(ctx, http.MethodPost, "/api/clients", nil, body, &out); err != nil {
		return models.Profile{}, err
	}
	return out, nil
}

// UpdateProfile updates an existing profile.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID, profileID string, in models.ProfileInput) (models.Profile, error) {
	var out models.Profile
	body := profileEnvelope{UserID: userID, ProfileData: in}
	if err := c.do(ctx, http.MethodPut, "/api/clients/"+url.PathEscape(profileID), nil, body, &out); err != nil {
		return models.Profile{}, err
	}
	return out, nil
}

// DeleteProfile deletes a profile. The server cascades the delete to all
// simulations saved under it.
func (c *HTTPClient) DeleteProfile(ctx context.Context, userID, profileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/clients/"+url.PathEscape(profileID), userQuery(userID), nil, nil)
}

type saveSimulationPayload struct {
	UserID         string            `json:"user_id"`
	SimulationData SimulationPayload `json:"simulation_data"`
	Type           models.Category   `json:"type"`
}

// SaveSimulation attaches a simulation payload to a profile.
func (c *HTTPClient) SaveSimulation(ctx context.Context, userID, profileID string, category models.Category, payload SimulationPayload) (models.SavedSimulation, error) {
	var out models.SavedSimulation
	body := saveSimulationPayload{UserID: userID, SimulationData: payload, Type: category}
	path := "/api/clients/" + url.PathEscape(profileID) + "/simulations"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return models.SavedSimulation{}, err
	}
	return out, nil
}

// Simulations lists the simulations saved under a profile.
func (c *HTTPClient) Simulations(ctx context.Context, userID, profileID string) ([]models.SavedSimulation, error) {
	var out []models.SavedSimulation
	path := "/api/clients/" + url.PathEscape(profileID) + "/simulations"
	if err := c.do(ctx, http.MethodGet, path, userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSimulation removes one saved simulation from a profile.
func (c *HTTPClient) DeleteSimulation(ctx context.Context, userID, profileID, simulationID string) error {
	path := "/api/clients/" + url.PathEscape(profileID) + "/simulations/" + url.PathEscape(simulationID)
	return c.do(ctx, http.MethodDelete, path, userQuery(userID), nil, nil)
}

// Report requests the consolidated PDF report for a profile and returns the
// raw document bytes.
func (c *HTTPClient) Report(ctx context.Context, userID, profileID string) ([]byte, error) {
	body := map[string]string{"user_id": userID}
	path := "/api/clients/" + url.PathEscape(profileID) + "/report"
	return c.doRaw(ctx, http.MethodPost, path, nil, body)
}

// MembershipAuthURL fetches the third-party authorization URL that starts a
// membership verification handshake.
func (c *HTTPClient) MembershipAuthURL(ctx context.Context) (string, error) {
	var out struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/patreon/auth-url", nil, nil, &out); err != nil {
		return "", err
	}
	return out.AuthURL, nil
}

// MembershipCallback exchanges an authorization code for the user's
// membership status.
func (c *HTTPClient) MembershipCallback(ctx context.Context, userID, code string) (MembershipStatus, error) {
	body := map[string]string{"user_id": userID, "code": code}
	var out struct {
		Success  bool    `json:"success"`
		IsMember bool    `json:"is_member"`
		Tier     *string `json:"tier"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/patreon/callback", nil, body, &out); err != nil {
		return MembershipStatus{}, err
	}
	status := MembershipStatus{IsMember: out.IsMember}
	if out.Tier != nil {
		status.Tier = *out.Tier
	}
	return status, nil
}

// JoinCampaign requests a campaign-join authorization URL for the user.
func (c *HTTPClient) JoinCampaign(ctx context.Context, userID, tier string) (string, error) {
	body := map[string]string{"user_id": userID, "tier": tier}
	var out struct {
		Success bool   `json:"success"`
		AuthURL string `json:"auth_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/patreon/join-campaign", nil, body, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", &Error{Status: http.StatusBadRequest, Message: "campaign join was not accepted"}
	}
	return out.AuthURL, nil
}

// Checkout submits a credit-purchase request. A fully satisfying promotional
// code yields CreditsGranted with no redirect target.
func (c *HTTPClient) Checkout(ctx context.Context, userID, planID, promoCode string) (CheckoutResult, error) {
	body := map[string]string{"user_id": userID, "plan": planID}
	if promoCode != "" {
		body["promo_code"] = promoCode
	}
	var out struct {
		RedirectURL    string `json:"redirect_url"`
		CreditsGranted int    `json:"credits_granted"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/checkout", nil, body, &out); err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{RedirectURL: out.RedirectURL, CreditsGranted: out.CreditsGranted}, nil
}

// Close releases client resources.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
