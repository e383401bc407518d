package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fortex/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	claims *services.CustomClaims
	err    error
}

func (f *fakeVerifier) Validate(ctx context.Context, token string) (*services.CustomClaims, error) {
	return f.claims, f.err
}

func runAuthn(t *testing.T, verifier *fakeVerifier, authorization string) (*httptest.ResponseRecorder, *services.CustomClaims) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *services.CustomClaims
	next := func(c echo.Context) error {
		seen, _ = ResolveClaims(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}

	err := Authn(verifier)(next)(c)
	require.NoError(t, err)
	return rec, seen
}

func TestAuthnNoHeaderPassesThrough(t *testing.T) {
	rec, claims := runAuthn(t, &fakeVerifier{}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, claims)
}

func TestAuthnMalformedHeaderPassesThrough(t *testing.T) {
	rec, claims := runAuthn(t, &fakeVerifier{}, "Basic abc123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, claims)
}

func TestAuthnInvalidTokenRejected(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("expired")}
	rec, claims := runAuthn(t, verifier, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestAuthnValidTokenBindsClaims(t *testing.T) {
	verifier := &fakeVerifier{claims: &services.CustomClaims{AccountID: 42, IdentityKey: "0xabc"}}
	rec, claims := runAuthn(t, verifier, "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "0xabc", claims.IdentityKey)
}

func TestResolveClaimsMissing(t *testing.T) {
	_, err := ResolveClaims(context.Background())
	assert.Error(t, err)
}
