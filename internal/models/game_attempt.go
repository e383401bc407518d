package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GameAttempt tracks one account's attempts window for one minigame.
// Unique on (account_id, game_slug).
type GameAttempt struct {
	bun.BaseModel     `bun:"table:game_attempt"`
	ID                int64     `bun:"id,pk,autoincrement" json:"id"`
	AccountID         int64     `bun:"account_id" json:"account_id"`
	GameSlug          string    `bun:"game_slug" json:"game_slug"`
	AttemptsRemaining int       `bun:"attempts_remaining" json:"attempts_remaining"`
	WindowStartedAt   time.Time `bun:"window_started_at" json:"window_started_at"`
	UpdatedAt         time.Time `bun:"updated_at" json:"updated_at"`
}

func NewGameAttempt(accountID int64, gameSlug string, maxAttempts int, now time.Time) *GameAttempt {
	return &GameAttempt{
		AccountID:         accountID,
		GameSlug:          gameSlug,
		AttemptsRemaining: maxAttempts,
		WindowStartedAt:   now,
		UpdatedAt:         now,
	}
}

// Advance runs the attempts-window state machine in place:
//
//   - a fully elapsed window refills attempts and re-stamps the window start;
//   - with no attempts left it refuses and reports when the window resets;
//   - otherwise it consumes one attempt, and when that was the last one the
//     window start is re-stamped so the cooldown is anchored at depletion,
//     not at the first attempt of the window.
//
// Returns whether an attempt was consumed and, when refused, the reset time.
func (ga *GameAttempt) Advance(now time.Time, maxAttempts int, window time.Duration) (bool, time.Time) {
	if now.Sub(ga.WindowStartedAt) >= window {
		ga.AttemptsRemaining = maxAttempts
		ga.WindowStartedAt = now
	}

	if ga.AttemptsRemaining <= 0 {
		return false, ga.WindowStartedAt.Add(window)
	}

	ga.AttemptsRemaining--
	if ga.AttemptsRemaining == 0 {
		ga.WindowStartedAt = now
	}
	ga.UpdatedAt = now

	return true, time.Time{}
}
