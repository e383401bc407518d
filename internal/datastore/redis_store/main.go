package redis_store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// LastWin is the most recent minigame payout, shown as a broadcast banner.
type LastWin struct {
	GameSlug  string    `msgpack:"game_slug" json:"game_slug"`
	AccountID int64     `msgpack:"account_id" json:"account_id"`
	Username  string    `msgpack:"username" json:"username"`
	Amount    int64     `msgpack:"amount" json:"amount"`
	WonAt     time.Time `msgpack:"won_at" json:"won_at"`
}

func dbKeyRevokedToken(jti string) string {
	return fmt.Sprintf("session:revoked:%s", jti)
}

func dbKeyLastWin() string {
	return "games:last_win"
}

// RevokeToken keeps the denylist entry alive only until the token would
// have expired on its own.
func RevokeToken(ctx context.Context, client redis.UniversalClient, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, dbKeyRevokedToken(jti), 1, ttl).Err()
}

func IsTokenRevoked(ctx context.Context, client redis.UniversalClient, jti string) (bool, error) {
	err := client.Get(ctx, dbKeyRevokedToken(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func SetLastWin(ctx context.Context, client redis.UniversalClient, win *LastWin) error {
	b, err := msgpack.Marshal(win)
	if err != nil {
		return err
	}

	return client.Set(ctx, dbKeyLastWin(), b, 0).Err()
}

func GetLastWin(ctx context.Context, client redis.UniversalClient) (*LastWin, error) {
	b, err := client.Get(ctx, dbKeyLastWin()).Bytes()
	if err != nil {
		return nil, err
	}

	var win LastWin
	if err := msgpack.Unmarshal(b, &win); err != nil {
		return nil, err
	}

	return &win, nil
}
