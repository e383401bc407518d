package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"fortex/internal/datastore"
	"fortex/internal/datastore/redis_store"
	"fortex/internal/models"
	"fortex/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// AttemptsError is the expected rejection when a game's attempts window is
// exhausted; it carries the countdown to the next refill.
type AttemptsError struct {
	SecondsUntilReset int64
	ResetsAt          time.Time
}

func (e *AttemptsError) Error() string {
	return fmt.Sprintf("no attempts left for %ds", e.SecondsUntilReset)
}

type ServiceGame struct {
	container  *do.Injector
	postgresDB *bun.DB
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	cache      caching.Cache

	serviceConfig *ServiceConfig
	serviceMining *ServiceMining
	serviceReward *ServiceReward
}

func NewServiceGame(container *do.Injector) (*ServiceGame, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-cache")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceMining, err := do.Invoke[*ServiceMining](container)
	if err != nil {
		return nil, err
	}

	serviceReward, err := do.Invoke[*ServiceReward](container)
	if err != nil {
		return nil, err
	}

	return &ServiceGame{container, postgresDB, redisDB, rs, cache, serviceConfig, serviceMining, serviceReward}, nil
}

func (service *ServiceGame) GetGames(ctx context.Context) ([]*models.Game, error) {
	callback := func() ([]*models.Game, error) {
		return datastore.GetGames(ctx, service.postgresDB)
	}
	return caching.UseCache(ctx, service.cache, DBKeyGames(), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceGame) GetGame(ctx context.Context, slug string) (*models.Game, error) {
	callback := func() (*models.Game, error) {
		return datastore.GetGameBySlug(ctx, service.postgresDB, slug)
	}

	game, err := caching.UseCache(ctx, service.cache, DBKeyGame(slug), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("game not found"), errorx.NotExist)
	}

	return game, err
}

// GetGamesWithAttempts decorates the game list with the caller's remaining
// attempts so the client can grey out depleted games without extra calls.
func (service *ServiceGame) GetGamesWithAttempts(ctx context.Context, account *models.Account) ([]*models.Game, error) {
	games, err := service.GetGames(ctx)
	if err != nil {
		return nil, err
	}

	attempts, err := datastore.GetGameAttemptsByAccount(ctx, service.postgresDB, account.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	byGame := make(map[string]*models.GameAttempt, len(attempts))
	for _, attempt := range attempts {
		byGame[attempt.GameSlug] = attempt
	}

	now := time.Now()
	for _, game := range games {
		max, window := service.gameLimits(ctx, game)
		remaining := max

		if attempt, ok := byGame[game.Slug]; ok {
			remaining = attempt.AttemptsRemaining
			if now.Sub(attempt.WindowStartedAt) >= window {
				remaining = max
			}
		}

		r := remaining
		game.AttemptsRemaining = &r
	}

	return games, nil
}

// ConsumeAttempt advances the per-(account, game) attempts window and
// persists the result. The redsync mutex serializes the read-modify-write
// against a double-submitting client.
func (service *ServiceGame) ConsumeAttempt(ctx context.Context, account *models.Account, game *models.Game) (*models.GameAttempt, error) {
	mutex := service.rs.NewMutex(LockKeyGameAttempt(account.ID, game.Slug))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrGameAttemptLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	max, window := service.gameLimits(ctx, game)
	now := time.Now()

	attempt, err := datastore.GetGameAttempt(ctx, service.postgresDB, account.ID, game.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		attempt = models.NewGameAttempt(account.ID, game.Slug, max, now)
	} else if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	ok, resetsAt := attempt.Advance(now, max, window)
	if !ok {
		return nil, &AttemptsError{
			SecondsUntilReset: models.SecondsUntil(resetsAt, now),
			ResetsAt:          resetsAt,
		}
	}

	if err := datastore.UpsertGameAttempt(ctx, service.postgresDB, attempt); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return attempt, nil
}

// Play consumes an attempt, settles the reward server-side and pays it out
// through the cooldown-free ledger path.
func (service *ServiceGame) Play(ctx context.Context, account *models.Account, slug string, input models.PlayInput) (*models.PlayResult, error) {
	game, err := service.GetGame(ctx, slug)
	if err != nil {
		return nil, err
	}

	attempt, err := service.ConsumeAttempt(ctx, account, game)
	if err != nil {
		return nil, err
	}

	reward, outcome := service.serviceReward.Compute(game, input)

	newBalance := account.Balance
	if reward > 0 {
		updated, err := service.serviceMining.Add(ctx, account, reward, "game:"+game.Slug)
		if err != nil {
			return nil, err
		}
		newBalance = updated.Balance

		err = redis_store.SetLastWin(ctx, service.redisDB, &redis_store.LastWin{
			GameSlug:  game.Slug,
			AccountID: account.ID,
			Username:  account.Username,
			Amount:    reward,
			WonAt:     time.Now(),
		})
		if err != nil {
			log.Println(err)
		}
	}

	return &models.PlayResult{
		GameSlug:          game.Slug,
		Outcome:           outcome,
		Reward:            reward,
		NewBalance:        newBalance,
		AttemptsRemaining: attempt.AttemptsRemaining,
	}, nil
}

func (service *ServiceGame) LastWin(ctx context.Context) (*redis_store.LastWin, error) {
	return redis_store.GetLastWin(ctx, service.redisDB)
}

func (service *ServiceGame) gameLimits(ctx context.Context, game *models.Game) (int, time.Duration) {
	max := game.MaxAttempts
	if max <= 0 {
		max, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_GAME_MAX_ATTEMPTS, DEFAULT_GAME_MAX_ATTEMPTS)
	}

	hours := game.CooldownHours
	if hours <= 0 {
		hours, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_GAME_COOLDOWN_HOURS, DEFAULT_GAME_COOLDOWN_HOURS)
	}

	return max, time.Duration(hours) * time.Hour
}
