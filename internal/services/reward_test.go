package services

import (
	"testing"

	"fortex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeClicker(t *testing.T) {
	service, err := NewServiceReward()
	require.NoError(t, err)

	game := &models.Game{Slug: models.GameClicker}

	tests := []struct {
		name  string
		score int
		want  int64
	}{
		{"zero taps", 0, 0},
		{"odd count rounds down", 5, 2},
		{"even count", 100, 50},
		{"capped", 10_000, CLICKER_SCORE_CAP / CLICKER_CLICKS_PER_TOKEN},
		{"negative clamped", -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reward, outcome := service.Compute(game, models.PlayInput{Score: tt.score})
			assert.Equal(t, tt.want, reward)
			assert.Equal(t, "scored", outcome)
		})
	}
}

func TestComputeMemory(t *testing.T) {
	service, err := NewServiceReward()
	require.NoError(t, err)

	reward, _ := service.Compute(&models.Game{Slug: models.GameMemory}, models.PlayInput{})
	assert.Equal(t, int64(MEMORY_REWARD), reward)
}

func TestComputeDiceBounds(t *testing.T) {
	service, err := NewServiceReward()
	require.NoError(t, err)

	game := &models.Game{Slug: models.GameDice, BetAmount: 10}
	for i := 0; i < 200; i++ {
		reward, _ := service.Compute(game, models.PlayInput{})
		assert.Contains(t, []int64{0, game.BetAmount * WIN_MULTIPLIER}, reward)
	}
}

func TestComputeCoinFlipBounds(t *testing.T) {
	service, err := NewServiceReward()
	require.NoError(t, err)

	game := &models.Game{Slug: models.GameCoinFlip, BetAmount: 10}
	for i := 0; i < 200; i++ {
		reward, outcome := service.Compute(game, models.PlayInput{Guess: "heads"})
		assert.Contains(t, []string{"heads", "tails"}, outcome)
		if outcome == "heads" {
			assert.Equal(t, game.BetAmount*WIN_MULTIPLIER, reward)
		} else {
			assert.Equal(t, int64(0), reward)
		}
	}
}

func TestComputeWheelBounds(t *testing.T) {
	service, err := NewServiceReward()
	require.NoError(t, err)

	valid := map[int64]bool{1: true, 2: true, 3: true, 5: true, 10: true, 50: true}

	game := &models.Game{Slug: models.GameWheel, BetAmount: 10}
	for i := 0; i < 200; i++ {
		reward, _ := service.Compute(game, models.PlayInput{})
		multiplier := reward / game.BetAmount
		assert.True(t, valid[multiplier], "unexpected multiplier %d", multiplier)
		assert.Zero(t, reward%game.BetAmount)
	}
}

func TestComputeUnknownGame(t *testing.T) {
	service, err := NewServiceReward()
	require.NoError(t, err)

	reward, outcome := service.Compute(&models.Game{Slug: "roulette"}, models.PlayInput{})
	assert.Equal(t, int64(0), reward)
	assert.Equal(t, "unknown", outcome)
}
