package handler

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"fortex/internal/models"
	"fortex/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthClaims ctxKey = "AUTH_CLAIMS"

// Authn binds the bearer token's claims into the request context. It does
// NOT terminate unauthenticated requests; handlers that need an account
// resolve it per request, never from shared state.
func Authn(verifier interface {
	Validate(ctx context.Context, token string) (*services.CustomClaims, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			claims, err := verifier.Validate(c.Request().Context(), token)
			if err != nil {
				// a client error, but no details leak past this point
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthClaims, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveClaims(ctx context.Context) (*services.CustomClaims, error) {
	claims, ok := ctx.Value(ctxKeyAuthClaims).(*services.CustomClaims)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	return claims, nil
}

func ResolveValidAccount(ctx context.Context, container *do.Injector) (*models.Account, error) {
	claims, err := ResolveClaims(ctx)
	if err != nil {
		return nil, err
	}

	serviceAccount, err := do.Invoke[*services.ServiceAccount](container)
	if err != nil {
		return nil, err
	}

	account, err := serviceAccount.FindAccountByID(ctx, claims.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		// stale session pointing at a record that no longer resolves
		return nil, errorx.Wrap(errors.New("account not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return account, nil
}
