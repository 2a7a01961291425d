// internal/app/lock.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"
)

const lockKeyTpl = "submit:%s" // submit:${username}

// AccountLock serializes result submissions per portal account. It is
// advisory: it only guards against two submissions racing through this
// service, and it degrades to a no-op when redis is unreachable or not
// configured.
type AccountLock struct {
	enabled bool
	redis   *redis.Client
	ttl     time.Duration
}

func NewAccountLock(config *Config) (*AccountLock, error) {
	if !config.Lock.Enabled {
		return &AccountLock{enabled: false}, nil
	}

	opt, err := redis.ParseURL(config.Lock.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &AccountLock{
		enabled: true,
		redis:   client,
		ttl:     time.Duration(config.Lock.TTLSeconds) * time.Second,
	}, nil
}

// Acquire takes the submission lock for username and returns a release
// func. A held lock means another submission for the account is in
// flight. The TTL outlives the submission call timeout, so a crashed
// holder frees itself.
func (l *AccountLock) Acquire(ctx context.Context, username string) (func(), error) {
	if !l.enabled {
		return func() {}, nil
	}

	key := fmt.Sprintf(lockKeyTpl, username)
	ok, err := l.redis.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		// Advisory only: a dead redis must not block submissions.
		logger.Error.Printf("Lock check failed for %s: %v", username, err)
		return func() {}, nil
	}
	if !ok {
		return nil, fmt.Errorf("a submission for %s is already in flight", username)
	}

	return func() {
		if err := l.redis.Del(context.Background(), key).Err(); err != nil {
			logger.Error.Printf("Failed to release submission lock for %s: %v", username, err)
		}
	}, nil
}

func (l *AccountLock) Close() error {
	if l.redis != nil {
		return l.redis.Close()
	}
	return nil
}
