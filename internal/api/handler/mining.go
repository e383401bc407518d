package handler

import (
	"errors"
	"net/http"

	"fortex/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupMining struct {
	container *do.Injector
}

type claimPayload struct {
	Amount int64 `json:"amount"`
}

func (gr *groupMining) Claim(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload claimPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceMining, err := do.Invoke[*services.ServiceMining](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceMining.Claim(ctx, account, payload.Amount)

	var cooldownErr *services.CooldownError
	if errors.As(err, &cooldownErr) {
		// expected rejection with countdown data for the client timer
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"message":          "Mining on cooldown",
			"secondsUntilMine": cooldownErr.SecondsUntilMine,
			"nextMineTime":     cooldownErr.NextMineTime,
		})
	}
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"success":      true,
		"newBalance":   updated.Balance,
		"nextMineTime": updated.NextClaimAt,
	}, nil)
}

func (gr *groupMining) AddBalance(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload claimPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceMining, err := do.Invoke[*services.ServiceMining](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceMining.Add(ctx, account, payload.Amount, "balance:add")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"success":    true,
		"newBalance": updated.Balance,
	}, nil)
}
