package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/browser"
	"github.com/dmitrijs2005/glidepath/internal/client/entitlement"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/logging"
	"github.com/google/uuid"
)

// HandshakeState is the membership handshake's position in its lifecycle.
// The state machine exists only for the duration of one attempt.
type HandshakeState int32

const (
	StateIdle HandshakeState = iota
	StateAuthorizationRequested
	StatePopupOpen
	StateAwaitingCallback
	StateVerified
	StateRejected
	StateFailed
)

func (s HandshakeState) String() string {
	switch s {
	case StateAuthorizationRequested:
		return "authorization-requested"
	case StatePopupOpen:
		return "popup-open"
	case StateAwaitingCallback:
		return "awaiting-callback"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	// ErrLoginRequired rejects membership and payment actions for guests.
	ErrLoginRequired = errors.New("please log in first")

	// ErrVerificationInProgress rejects a second handshake while one is
	// between authorization request and a terminal state.
	ErrVerificationInProgress = errors.New("a membership verification is already in progress")

	// ErrVerificationTimeout ends a handshake whose popup was abandoned.
	ErrVerificationTimeout = errors.New("membership verification timed out")
)

// VerifyResult is the outcome of a completed handshake. Verified=false with
// a nil error means the membership was checked and not found; that is
// informational, not a failure.
type VerifyResult struct {
	Verified bool
	Tier     string
}

// MembershipService coordinates the popup-mediated membership verification
// handshake. Only one handshake may be in flight per session; the external
// window and the message subscription are owned exclusively by the attempt
// and are released on every terminal transition.
type MembershipService struct {
	client   api.Client
	sess     *session.Session
	engine   *entitlement.Engine
	launcher browser.Launcher
	bus      *browser.Bus
	origin   string
	timeout  time.Duration
	log      logging.Logger

	mu       sync.Mutex
	state    HandshakeState
	inFlight bool
}

// NewMembershipService wires the coordinator. origin is the only message
// origin the handshake accepts; everything else is dropped silently.
func NewMembershipService(client api.Client, sess *session.Session, engine *entitlement.Engine,
	launcher browser.Launcher, bus *browser.Bus, origin string, timeout time.Duration, log logging.Logger) *MembershipService {
	return &MembershipService{
		client:   client,
		sess:     sess,
		engine:   engine,
		launcher: launcher,
		bus:      bus,
		origin:   origin,
		timeout:  timeout,
		log:      log,
	}
}

// State returns the current handshake state.
func (s *MembershipService) State() HandshakeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *MembershipService) setState(state HandshakeState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Verify runs one full handshake: fetch the authorization URL, open the
// external window, await the callback message, exchange the code, and on a
// verified membership refresh the session's entitlement.
func (s *MembershipService) Verify(ctx context.Context) (VerifyResult, error) {
	ident := s.sess.Identity()
	if ident.IsGuest() {
		return VerifyResult{}, fmt.Errorf("%w to verify your membership", ErrLoginRequired)
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return VerifyResult{}, ErrVerificationInProgress
	}
	s.inFlight = true
	s.state = StateAuthorizationRequested
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	authURL, err := s.client.MembershipAuthURL(ctx)
	if err != nil {
		s.setState(StateFailed)
		return VerifyResult{}, fmt.Errorf("starting membership verification: %w", err)
	}

	nonce := uuid.NewString()
	window, err := s.launcher.Open(withStateParam(authURL, nonce))
	if err != nil {
		s.setState(StateFailed)
		return VerifyResult{}, fmt.Errorf("opening authorization window: %w", err)
	}
	s.setState(StatePopupOpen)

	sub := s.bus.Subscribe()
	s.setState(StateAwaitingCallback)

	// Teardown is unconditional on every terminal transition; a leaked
	// subscription or window accumulates across repeated attempts.
	defer func() {
		sub.Cancel()
		if err := window.Close(); err != nil {
			s.log.Warn(ctx, "closing authorization window", "error", err)
		}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	for {
		select {
		case msg := <-sub.C:
			if msg.Origin != s.origin {
				// Security boundary: foreign origins are dropped and the
				// handshake keeps waiting.
				s.log.Warn(ctx, "ignoring callback from foreign origin", "origin", msg.Origin)
				continue
			}
			if msg.State != nonce {
				s.log.Warn(ctx, "ignoring callback with mismatched state nonce")
				continue
			}
			return s.exchange(ctx, ident.UserID, msg.Code)

		case <-timer.C:
			s.setState(StateFailed)
			return VerifyResult{}, ErrVerificationTimeout

		case <-ctx.Done():
			s.setState(StateFailed)
			return VerifyResult{}, ctx.Err()
		}
	}
}

func (s *MembershipService) exchange(ctx context.Context, userID, code string) (VerifyResult, error) {
	status, err := s.client.MembershipCallback(ctx, userID, code)
	if err != nil {
		s.setState(StateFailed)
		return VerifyResult{}, fmt.Errorf("verifying membership: %w", err)
	}

	if !status.IsMember {
		// Membership not found is informational; entitlement is untouched.
		s.setState(StateRejected)
		return VerifyResult{}, nil
	}

	s.setState(StateVerified)
	if err := s.engine.Refresh(ctx, userID); err != nil {
		s.log.Warn(ctx, "entitlement refresh after verification failed", "error", err)
	}
	return VerifyResult{Verified: true, Tier: status.Tier}, nil
}

// JoinCampaign starts the campaign-join flow: the remote side hands back an
// authorization URL and the browser is sent there. Unlike Verify this is a
// plain redirect flow with no callback to await.
func (s *MembershipService) JoinCampaign(ctx context.Context, tier string) error {
	ident := s.sess.Identity()
	if ident.IsGuest() {
		return fmt.Errorf("%w to join the campaign", ErrLoginRequired)
	}

	authURL, err := s.client.JoinCampaign(ctx, ident.UserID, tier)
	if err != nil {
		return fmt.Errorf("joining campaign: %w", err)
	}
	if _, err := s.launcher.Open(authURL); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

func withStateParam(authURL, nonce string) string {
	u, err := url.Parse(authURL)
	if err != nil {
		return authURL
	}
	q := u.Query()
	q.Set("state", nonce)
	u.RawQuery = q.Encode()
	return u.String()
}
