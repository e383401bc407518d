package handler

import (
	"fortex/internal/models"
	"fortex/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"fortex/internal/interfaces"
)

type groupAuth struct {
	container *do.Injector
}

type verifyPayload struct {
	Payload *models.VerifyProof `json:"payload"`
	Action  string              `json:"action"`
}

func (gr *groupAuth) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	limiter, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rate, _ := serviceConfig.GetIntConfig(ctx, services.CONFIG_VERIFY_RATE_PER_MIN, services.DEFAULT_VERIFY_RATE_PER_MIN)
	if err := limiter.Allow(ctx, services.LimitKeyVerify(c.RealIP()), redis_rate.PerMinute(rate)); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload verifyPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	verifier, err := do.Invoke[*services.Verifier](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	identity, err := verifier.Verify(payload.Payload, payload.Action)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAccount, err := do.Invoke[*services.ServiceAccount](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	account, err := serviceAccount.FindOrCreateAccount(ctx, identity)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	authentication, err := do.Invoke[*services.Authentication](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	token, err := authentication.CreateToken(account)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"user":  account,
	}, nil)
}

func (gr *groupAuth) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	claims, err := ResolveClaims(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	authentication, err := do.Invoke[*services.Authentication](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := authentication.Revoke(ctx, claims); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"success": true,
	}, nil)
}
