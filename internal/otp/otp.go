// Package otp issues short numeric one-time codes used for password resets.
// Only a hash of each code is stored, keyed by subject, with a TTL.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeDigits = 6

var (
	ErrInvalidCode     = errors.New("invalid_code")
	ErrTooManySends    = errors.New("too_many_sends")
	ErrTooManyAttempts = errors.New("too_many_attempts")
)

type Options struct {
	TTL         time.Duration
	MaxSends    int
	SendWindow  time.Duration
	MaxAttempts int
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 10 * time.Minute
	}
	if o.MaxSends <= 0 {
		o.MaxSends = 5
	}
	if o.SendWindow <= 0 {
		o.SendWindow = time.Hour
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	return o
}

type RedisStore struct {
	rdb  redis.UniversalClient
	opts Options
}

func NewRedisStore(rdb redis.UniversalClient, opts Options) *RedisStore {
	return &RedisStore{rdb: rdb, opts: opts.withDefaults()}
}

func (s *RedisStore) TTL() time.Duration {
	return s.opts.TTL
}

// Issue creates a fresh code for subject, replacing any outstanding one.
func (s *RedisStore) Issue(ctx context.Context, subject string) (string, error) {
	subject = normalize(subject)
	sends, err := s.rdb.Incr(ctx, sendsKey(subject)).Result()
	if err != nil {
		return "", fmt.Errorf("count otp sends: %w", err)
	}
	if sends == 1 {
		if err := s.rdb.Expire(ctx, sendsKey(subject), s.opts.SendWindow).Err(); err != nil {
			return "", fmt.Errorf("expire otp sends: %w", err)
		}
	}
	if sends > int64(s.opts.MaxSends) {
		return "", ErrTooManySends
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, codeKey(subject), HashCode(code), s.opts.TTL)
		p.Del(ctx, attemptsKey(subject))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify checks code and consumes it on success. After MaxAttempts failures
// the outstanding code is discarded.
func (s *RedisStore) Verify(ctx context.Context, subject, code string) error {
	subject = normalize(subject)
	stored, err := s.rdb.Get(ctx, codeKey(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(HashCode(strings.TrimSpace(code)))) == 1 {
		if err := s.rdb.Del(ctx, codeKey(subject), attemptsKey(subject)).Err(); err != nil {
			return fmt.Errorf("consume otp: %w", err)
		}
		return nil
	}

	attempts, err := s.rdb.Incr(ctx, attemptsKey(subject)).Result()
	if err != nil {
		return fmt.Errorf("count otp attempts: %w", err)
	}
	if attempts == 1 {
		_ = s.rdb.Expire(ctx, attemptsKey(subject), s.opts.TTL).Err()
	}
	if attempts >= int64(s.opts.MaxAttempts) {
		_ = s.rdb.Del(ctx, codeKey(subject), attemptsKey(subject)).Err()
		return ErrTooManyAttempts
	}
	return ErrInvalidCode
}

// GenerateCode returns a uniformly random zero-padded decimal code.
func GenerateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

func HashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

func normalize(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

func codeKey(subject string) string     { return "otp:code:" + subject }
func attemptsKey(subject string) string { return "otp:attempts:" + subject }
func sendsKey(subject string) string    { return "otp:sends:" + subject }
