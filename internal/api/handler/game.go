package handler

import (
	"errors"
	"log"
	"net/http"

	"fortex/internal/models"
	"fortex/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

type groupGame struct {
	container *do.Injector
}

func (gr *groupGame) GetGames(c echo.Context) error {
	ctx := c.Request().Context()

	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	// attempts state only for authenticated callers
	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		games, err := serviceGame.GetGames(ctx)
		if err != nil {
			return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
		}
		return httpx.RestAbort(c, map[string]interface{}{"games": games}, nil)
	}

	games, err := serviceGame.GetGamesWithAttempts(ctx, account)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	lastWin, err := serviceGame.LastWin(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Println(err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"games":    games,
		"last_win": lastWin,
	}, nil)
}

func (gr *groupGame) Show(c echo.Context) error {
	ctx := c.Request().Context()

	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	game, err := serviceGame.GetGame(ctx, c.Param("game"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, game, nil)
}

func (gr *groupGame) Play(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := ResolveValidAccount(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var input models.PlayInput
	if err := c.Bind(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceGame.Play(ctx, account, c.Param("game"), input)

	var attemptsErr *services.AttemptsError
	if errors.As(err, &attemptsErr) {
		// expected rejection with countdown data for the client timer
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"message":           "No attempts left",
			"secondsUntilReset": attemptsErr.SecondsUntilReset,
			"resetsAt":          attemptsErr.ResetsAt,
		})
	}
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
