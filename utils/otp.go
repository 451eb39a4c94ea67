package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrOTPInvalid covers both a wrong and an expired code.
var ErrOTPInvalid = errors.New("invalid or expired token")

const otpPrefix = "otp:reset:"

// GenerateNumericOTP returns a random string of length decimal digits.
func GenerateNumericOTP(length int) (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// RedisOTPStore keeps one password-reset code per email with a TTL.
type RedisOTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOTPStore(client *redis.Client, ttl time.Duration) *RedisOTPStore {
	return &RedisOTPStore{client: client, ttl: ttl}
}

func otpKey(email string) string {
	return otpPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Save replaces any earlier code for the email.
func (s *RedisOTPStore) Save(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, otpKey(email), code, s.ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return nil
}

// Verify consumes the code when it matches.
func (s *RedisOTPStore) Verify(ctx context.Context, email, code string) error {
	key := otpKey(email)
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrOTPInvalid
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}
	if stored != code {
		return ErrOTPInvalid
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
