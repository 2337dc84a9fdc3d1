package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/browser"
	"github.com/dmitrijs2005/glidepath/internal/client/entitlement"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func guestSession() *session.Session {
	return session.New()
}

func loggedInSession(userID, email string) *session.Session {
	sess := session.New()
	sess.SetIdentity(session.Identity{UserID: userID, Email: email})
	return sess
}

func newEngine(sess *session.Session, counter *fakeCounter, fc *fakeClient) *entitlement.Engine {
	return entitlement.NewEngine(sess.Entitlements, counter, fc)
}

// ---- fake run counter ----

type fakeCounter struct {
	Runs     int
	CountErr error
	IncErr   error
}

func (f *fakeCounter) Count(ctx context.Context) (int, error) {
	return f.Runs, f.CountErr
}

func (f *fakeCounter) Increment(ctx context.Context) (int, error) {
	if f.IncErr != nil {
		return 0, f.IncErr
	}
	f.Runs++
	return f.Runs, nil
}

func (f *fakeCounter) Reset(ctx context.Context) error {
	f.Runs = 0
	return nil
}

// ---- fake api client ----

type fakeClient struct {
	mu sync.Mutex

	PingErr error

	BasicRet   models.BasicProjection
	BasicErr   error
	BasicCalls int

	MonteCarloRet   *models.MonteCarloResult
	MonteCarloErr   error
	MonteCarloCalls int

	EntitlementRet   models.Entitlement
	EntitlementErr   error
	EntitlementCalls int

	ProfilesRet []models.Profile
	ProfilesErr error

	CreateProfileRet models.Profile
	CreateProfileErr error
	UpdateProfileRet models.Profile
	UpdateProfileErr error
	DeleteProfileErr error

	SaveErr           error
	SaveErrByCategory map[models.Category]error
	SaveCalls         []models.Category
	LastSavePayload   api.SimulationPayload
	LastSaveProfileID string

	SimulationsRet []models.SavedSimulation
	SimulationsErr error
	DeleteSimErr   error

	ReportRet []byte
	ReportErr error

	AuthURLRet string
	AuthURLErr error

	CallbackRet   api.MembershipStatus
	CallbackErr   error
	CallbackCalls int
	LastCode      string

	JoinRet string
	JoinErr error

	CheckoutRet   api.CheckoutResult
	CheckoutErr   error
	LastPlanID    string
	LastPromoCode string

	LastRunRequest api.RunRequest
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) RunBasic(ctx context.Context, req api.RunRequest) (models.BasicProjection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BasicCalls++
	f.LastRunRequest = req
	return f.BasicRet, f.BasicErr
}

func (f *fakeClient) RunMonteCarlo(ctx context.Context, req api.RunRequest) (*models.MonteCarloResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MonteCarloCalls++
	f.LastRunRequest = req
	return f.MonteCarloRet, f.MonteCarloErr
}

func (f *fakeClient) Entitlement(ctx context.Context, userID string) (models.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EntitlementCalls++
	return f.EntitlementRet, f.EntitlementErr
}

func (f *fakeClient) Profiles(ctx context.Context, userID string) ([]models.Profile, error) {
	return f.ProfilesRet, f.ProfilesErr
}

func (f *fakeClient) CreateProfile(ctx context.Context, userID string, in models.ProfileInput) (models.Profile, error) {
	return f.CreateProfileRet, f.CreateProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, userID, profileID string, in models.ProfileInput) (models.Profile, error) {
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) DeleteProfile(ctx context.Context, userID, profileID string) error {
	return f.DeleteProfileErr
}

func (f *fakeClient) SaveSimulation(ctx context.Context, userID, profileID string, category models.Category, payload api.SimulationPayload) (models.SavedSimulation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls = append(f.SaveCalls, category)
	f.LastSavePayload = payload
	f.LastSaveProfileID = profileID
	if err, ok := f.SaveErrByCategory[category]; ok {
		return models.SavedSimulation{}, err
	}
	return models.SavedSimulation{ID: "sim-1", ProfileID: profileID, Category: category}, f.SaveErr
}

func (f *fakeClient) Simulations(ctx context.Context, userID, profileID string) ([]models.SavedSimulation, error) {
	return f.SimulationsRet, f.SimulationsErr
}

func (f *fakeClient) DeleteSimulation(ctx context.Context, userID, profileID, simulationID string) error {
	return f.DeleteSimErr
}

func (f *fakeClient) Report(ctx context.Context, userID, profileID string) ([]byte, error) {
	return f.ReportRet, f.ReportErr
}

func (f *fakeClient) MembershipAuthURL(ctx context.Context) (string, error) {
	return f.AuthURLRet, f.AuthURLErr
}

func (f *fakeClient) MembershipCallback(ctx context.Context, userID, code string) (api.MembershipStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CallbackCalls++
	f.LastCode = code
	return f.CallbackRet, f.CallbackErr
}

func (f *fakeClient) callbackCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CallbackCalls
}

func (f *fakeClient) JoinCampaign(ctx context.Context, userID, tier string) (string, error) {
	return f.JoinRet, f.JoinErr
}

func (f *fakeClient) Checkout(ctx context.Context, userID, planID, promoCode string) (api.CheckoutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPlanID = planID
	f.LastPromoCode = promoCode
	return f.CheckoutRet, f.CheckoutErr
}

func (f *fakeClient) Close() error { return nil }

// ---- fake launcher ----

type fakeWindow struct {
	mu     sync.Mutex
	closed bool
}

func (w *fakeWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

type fakeLauncher struct {
	mu      sync.Mutex
	OpenErr error
	LastURL string
	Window  *fakeWindow
}

func (l *fakeLauncher) Open(url string) (browser.Window, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.OpenErr != nil {
		return nil, l.OpenErr
	}
	l.LastURL = url
	l.Window = &fakeWindow{}
	return l.Window, nil
}

func (l *fakeLauncher) OpenedURL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.LastURL
}

func sampleProjection() models.BasicProjection {
	return models.BasicProjection{
		"Year-1": {Principal: 1000000, Income: 40000, RealIncome: 39000, Status: "On Track"},
		"Year-2": {Principal: 1020000, Income: 41000, RealIncome: 39500, Status: "On Track"},
	}
}

func sampleMonteCarlo() *models.MonteCarloResult {
	return &models.MonteCarloResult{SuccessRates: []float64{0.95, 0.92, 0.88}}
}
