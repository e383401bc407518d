package models

import (
	"github.com/uptrace/bun"
)

const (
	GameClicker  = "clicker"
	GameDice     = "dice"
	GameCoinFlip = "coinflip"
	GameWheel    = "wheel"
	GameMemory   = "memory"
)

// db
type Game struct {
	bun.BaseModel `bun:"table:game"`
	ID            int    `bun:"id,pk,autoincrement" json:"id"`
	Slug          string `bun:"slug,unique" json:"slug"`
	Name          string `bun:"name" json:"name"`
	Description   string `bun:"description" json:"description"`
	MaxAttempts   int    `bun:"max_attempts" json:"max_attempts"`
	CooldownHours int    `bun:"cooldown_hours" json:"cooldown_hours"`
	BetAmount     int64  `bun:"bet_amount" json:"bet_amount"`
	Enabled       bool   `bun:"enabled" json:"-"`
	Priority      int    `bun:"priority" json:"priority"`

	AttemptsRemaining *int `bun:"-" json:"attempts_remaining,omitempty"`
}

// seed set, applied by cmd/migrate with on-conflict-do-nothing
var Games = []Game{
	{Slug: GameClicker, Name: "Token Clicker", Description: "Tap fast to generate tokens", MaxAttempts: 3, CooldownHours: 12, Priority: 1, Enabled: true},
	{Slug: GameDice, Name: "Dice Roll", Description: "Roll 4 or higher to double your bet", MaxAttempts: 3, CooldownHours: 12, BetAmount: 10, Priority: 2, Enabled: true},
	{Slug: GameCoinFlip, Name: "Coin Flip", Description: "Call the toss to double your bet", MaxAttempts: 3, CooldownHours: 12, BetAmount: 10, Priority: 3, Enabled: true},
	{Slug: GameWheel, Name: "Spin Wheel", Description: "Spin for up to a 50x multiplier", MaxAttempts: 3, CooldownHours: 12, BetAmount: 10, Priority: 4, Enabled: true},
	{Slug: GameMemory, Name: "Memory Match", Description: "Decrypt the block for a flat reward", MaxAttempts: 3, CooldownHours: 12, Priority: 5, Enabled: true},
}

type PlayInput struct {
	Score int    `json:"score"` // clicker taps / memory moves
	Guess string `json:"guess"` // coinflip: heads or tails
}

type PlayResult struct {
	GameSlug          string `json:"game_slug"`
	Outcome           string `json:"outcome"`
	Reward            int64  `json:"reward"`
	NewBalance        int64  `json:"new_balance"`
	AttemptsRemaining int    `json:"attempts_remaining"`
}
