package services

import (
	"context"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the global instance
var TokenBlacklist *RedisTokenBlacklist

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistToken marks a token as revoked until its natural expiry.
func (bl *RedisTokenBlacklist) BlacklistToken(tokenString string) error {
	ttl := remainingTokenTTL(tokenString)
	if ttl <= 0 {
		return nil // already expired, nothing to store
	}

	ctx := context.Background()
	key := fmt.Sprintf("token_blacklist:%s", tokenString)
	if err := bl.Client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %v", err)
	}
	return nil
}

// IsBlacklisted reports whether a token has been revoked.
func (bl *RedisTokenBlacklist) IsBlacklisted(tokenString string) bool {
	ctx := context.Background()
	key := fmt.Sprintf("token_blacklist:%s", tokenString)
	exists, err := bl.Client.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// IsTokenBlacklisted is the package-level helper used by middleware; it is
// a no-op when the blacklist has not been initialized.
func IsTokenBlacklisted(tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}
	return TokenBlacklist.IsBlacklisted(tokenString)
}

// remainingTokenTTL extracts the remaining lifetime from the token's exp
// claim without verifying the signature; the caller already validated it.
func remainingTokenTTL(tokenString string) time.Duration {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Duration(utils.JWTExpirationTime) * time.Second
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Duration(utils.JWTExpirationTime) * time.Second
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Duration(utils.JWTExpirationTime) * time.Second
	}
	return time.Until(time.Unix(int64(exp), 0))
}
