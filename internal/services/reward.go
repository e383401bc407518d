package services

import (
	"math/rand"

	"fortex/internal/models"

	"github.com/mroth/weightedrand/v2"
)

const (
	CLICKER_CLICKS_PER_TOKEN = 2
	CLICKER_SCORE_CAP        = 200
	MEMORY_REWARD            = 100
	WIN_MULTIPLIER           = 2
	DICE_WIN_THRESHOLD       = 4
)

// wheel segments as rendered on the client, uniform like the original
var wheelSegments = []weightedrand.Choice[int64, int]{
	weightedrand.NewChoice(int64(1), 1),
	weightedrand.NewChoice(int64(2), 1),
	weightedrand.NewChoice(int64(5), 1),
	weightedrand.NewChoice(int64(10), 1),
	weightedrand.NewChoice(int64(2), 1),
	weightedrand.NewChoice(int64(1), 1),
	weightedrand.NewChoice(int64(50), 1),
	weightedrand.NewChoice(int64(3), 1),
}

// ServiceReward owns the per-game payout rules. Randomness runs here, never
// on the client, and never touches cooldown state.
type ServiceReward struct {
	wheel *weightedrand.Chooser[int64, int]
}

func NewServiceReward() (*ServiceReward, error) {
	wheel, err := weightedrand.NewChooser(wheelSegments...)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{wheel}, nil
}

// Compute returns the reward and a short outcome tag for the UI.
func (service *ServiceReward) Compute(game *models.Game, input models.PlayInput) (int64, string) {
	switch game.Slug {
	case models.GameClicker:
		score := input.Score
		if score < 0 {
			score = 0
		}
		if score > CLICKER_SCORE_CAP {
			score = CLICKER_SCORE_CAP
		}
		return int64(score / CLICKER_CLICKS_PER_TOKEN), "scored"

	case models.GameDice:
		roll := rand.Intn(6) + 1
		if roll >= DICE_WIN_THRESHOLD {
			return game.BetAmount * WIN_MULTIPLIER, diceOutcome(roll)
		}
		return 0, diceOutcome(roll)

	case models.GameCoinFlip:
		side := "heads"
		if rand.Intn(2) == 1 {
			side = "tails"
		}
		if input.Guess == side {
			return game.BetAmount * WIN_MULTIPLIER, side
		}
		return 0, side

	case models.GameWheel:
		multiplier := service.wheel.Pick()
		return game.BetAmount * multiplier, wheelOutcome(multiplier)

	case models.GameMemory:
		return MEMORY_REWARD, "decrypted"
	}

	return 0, "unknown"
}

func diceOutcome(roll int) string {
	return "rolled " + string(rune('0'+roll))
}

func wheelOutcome(multiplier int64) string {
	switch multiplier {
	case 50:
		return "jackpot 50x"
	case 10:
		return "10x"
	case 5:
		return "5x"
	case 3:
		return "3x"
	case 2:
		return "2x"
	default:
		return "1x"
	}
}
