package services

import (
	"errors"
	"fmt"
	"time"
)

var ErrClaimLock = errors.New("mining claim locked")
var ErrGameAttemptLock = errors.New("game attempt locked")
var ErrMembershipConflict = errors.New("membership changed concurrently, retry")
var ErrInvalidAmount = errors.New("amount must be a positive integer")
var ErrInvalidTier = errors.New("invalid membership type")
var ErrDowngradeRejected = errors.New("membership can only be upgraded")
var ErrInvalidProof = errors.New("verification failed")

const (
	CONFIG_MINING_COOLDOWN_HOURS = "MINING_COOLDOWN_HOURS"
	CONFIG_MINING_CLAIM_MAX      = "MINING_CLAIM_MAX"
	CONFIG_GAME_MAX_ATTEMPTS     = "GAME_MAX_ATTEMPTS"
	CONFIG_GAME_COOLDOWN_HOURS   = "GAME_COOLDOWN_HOURS"
	CONFIG_VERIFY_RATE_PER_MIN   = "VERIFY_RATE_PER_MIN"

	DEFAULT_MINING_COOLDOWN_HOURS = 24
	DEFAULT_MINING_CLAIM_MAX      = 1000
	DEFAULT_GAME_MAX_ATTEMPTS     = 3
	DEFAULT_GAME_COOLDOWN_HOURS   = 12
	DEFAULT_VERIFY_RATE_PER_MIN   = 10

	SESSION_TOKEN_TTL = 24 * time.Hour

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour

	WORLD_VERIFY_BASE_URL = "https://developer.worldcoin.org/api/v2/verify"
)

func LockKeyMiningClaim(accountID int64) string {
	return fmt.Sprintf("lock:mining-claim:%d", accountID)
}

func LockKeyGameAttempt(accountID int64, gameSlug string) string {
	return fmt.Sprintf("lock:game-attempt:%d:%s", accountID, gameSlug)
}

// db
func DBKeyAccount(accountID int64) string {
	return fmt.Sprintf("account:%d", accountID)
}

func DBKeyAccountByIdentity(identityKey string) string {
	return fmt.Sprintf("account:by_identity:%s", identityKey)
}

func DBKeyGame(gameSlug string) string {
	return fmt.Sprintf("game:%s", gameSlug)
}

func DBKeyGames() string {
	return "games:active"
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", key)
}

func LimitKeyVerify(remoteIP string) string {
	return fmt.Sprintf("limit:auth-verify:%s", remoteIP)
}
