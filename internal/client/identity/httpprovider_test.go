package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newTestProvider(t *testing.T, handler http.Handler) *HTTPProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPProvider(srv.URL, 5*time.Second)
}

func TestSignIn_ExtractsClaimsFromToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub":   "user-123",
		"email": "alice@example.com",
		"exp":   exp.Unix(),
	})

	var gotPath string
	var gotBody map[string]string
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id_token": token})
	}))

	acc, err := p.SignIn(context.Background(), "alice@example.com", []byte("pw"))
	require.NoError(t, err)

	require.Equal(t, "/v1/signin", gotPath)
	require.Equal(t, "alice@example.com", gotBody["email"])
	require.Equal(t, "pw", gotBody["password"])

	require.Equal(t, "user-123", acc.UserID)
	require.Equal(t, "alice@example.com", acc.Email)
	require.Equal(t, token, acc.Token)
	require.Equal(t, exp.Unix(), acc.ExpiresAt.Unix())
	require.False(t, acc.Expired())
}

func TestSignIn_Unauthorized_InvalidCredentials(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := p.SignIn(context.Background(), "alice@example.com", []byte("wrong"))
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_UsesSignupEndpoint(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-456"})

	var gotPath string
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"id_token": token})
	}))

	acc, err := p.SignUp(context.Background(), "bob@example.com", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "/v1/signup", gotPath)
	require.Equal(t, "user-456", acc.UserID)
}

func TestSignIn_TokenWithoutSubject_Rejected(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"email": "x@example.com"})

	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id_token": token})
	}))

	_, err := p.SignIn(context.Background(), "x@example.com", []byte("pw"))
	require.Error(t, err)
}

func TestResetPassword_BadRequest_InvalidCredentials(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	err := p.ResetPassword(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut_IsLocal(t *testing.T) {
	p := NewHTTPProvider("http://127.0.0.1:1", time.Second)
	require.NoError(t, p.SignOut(context.Background()))
}

func TestAccount_Expired(t *testing.T) {
	require.False(t, Account{}.Expired())
	require.True(t, Account{ExpiresAt: time.Now().Add(-time.Minute)}.Expired())
	require.False(t, Account{ExpiresAt: time.Now().Add(time.Minute)}.Expired())
}
