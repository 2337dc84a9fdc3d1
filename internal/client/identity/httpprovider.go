package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HTTPProvider talks to the identity service's REST surface.
type HTTPProvider struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		timeout: timeout,
	}
}

type tokenResponse struct {
	IDToken string `json:"id_token"`
}

func (p *HTTPProvider) SignIn(ctx context.Context, email string, password []byte) (Account, error) {
	return p.credentialCall(ctx, "/v1/signin", email, password)
}

func (p *HTTPProvider) SignUp(ctx context.Context, email string, password []byte) (Account, error) {
	return p.credentialCall(ctx, "/v1/signup", email, password)
}

func (p *HTTPProvider) ResetPassword(ctx context.Context, email string) error {
	_, err := p.post(ctx, "/v1/reset", map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}
	return nil
}

// SignOut is local: the provider issues stateless tokens, so signing out is
// the client forgetting them.
func (p *HTTPProvider) SignOut(ctx context.Context) error {
	return nil
}

func (p *HTTPProvider) credentialCall(ctx context.Context, path, email string, password []byte) (Account, error) {
	body, err := p.post(ctx, path, map[string]string{"email": email, "password": string(password)})
	if err != nil {
		return Account{}, err
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return Account{}, fmt.Errorf("decoding identity response: %w", err)
	}
	return accountFromToken(tr.IDToken)
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("identity service error (status %d)", resp.StatusCode)
	}
	return body, nil
}

// accountFromToken extracts uid, email and expiry from the provider's ID
// token. The signature is the provider's and the computation API's concern;
// the client parses without verifying, it only needs the claims.
func accountFromToken(token string) (Account, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Account{}, fmt.Errorf("parsing identity token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Account{}, fmt.Errorf("unexpected identity token claims")
	}

	acc := Account{Token: token}
	if sub, err := claims.GetSubject(); err == nil {
		acc.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		acc.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		acc.ExpiresAt = exp.Time
	}
	if acc.UserID == "" {
		return Account{}, fmt.Errorf("identity token carries no subject")
	}
	return acc, nil
}
