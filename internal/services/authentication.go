package services

import (
	"context"
	"errors"
	"time"

	"fortex/internal/datastore/redis_store"
	"fortex/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CustomClaims struct {
	AccountID   int64  `json:"account_id"`
	IdentityKey string `json:"identity_key"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret  string
	redisDB redis.UniversalClient
}

func NewAuthentication(secret string, redisDB redis.UniversalClient) (*Authentication, error) {
	return &Authentication{secret, redisDB}, nil
}

func (authentication *Authentication) CreateToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		AccountID:   account.ID,
		IdentityKey: account.IdentityKey,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SESSION_TOKEN_TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(ctx context.Context, token string) (*CustomClaims, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}

	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	revoked, err := redis_store.IsTokenRevoked(ctx, authentication.redisDB, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errors.New("token revoked")
	}

	return claims, nil
}

// Revoke denylists the token until its natural expiry.
func (authentication *Authentication) Revoke(ctx context.Context, claims *CustomClaims) error {
	if claims.ExpiresAt == nil {
		return nil
	}

	return redis_store.RevokeToken(ctx, authentication.redisDB, claims.ID, time.Until(claims.ExpiresAt.Time))
}
