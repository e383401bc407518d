package handler

import (
	"database/sql"
	"errors"

	"fortex/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAccount struct {
	container *do.Injector
}

func (gr *groupAccount) Me(c echo.Context) error {
	account, err := ResolveValidAccount(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, account, nil)
}

func (gr *groupAccount) GetByIdentityKey(c echo.Context) error {
	ctx := c.Request().Context()

	serviceAccount, err := do.Invoke[*services.ServiceAccount](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	account, err := serviceAccount.FindAccountByIdentityKey(ctx, c.Param("identityKey"))
	if errors.Is(err, sql.ErrNoRows) {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, account, nil)
}

func (gr *groupAccount) Membership(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceMining, err := do.Invoke[*services.ServiceMining](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceMining.UpgradeMembership(ctx, account, c.Param("tier"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"success":    true,
		"membership": updated.Membership,
		"user":       updated,
	}, nil)
}
