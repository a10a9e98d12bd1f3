package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCodeNotFound is returned when a verification code is missing or expired.
var ErrCodeNotFound = fmt.Errorf("verification code not found or expired")

// ErrCodeMismatch is returned when a provided code does not match the stored one.
var ErrCodeMismatch = fmt.Errorf("verification code does not match")

// CodeStore is a TTL key/value store for short-lived verification and
// password-reset codes. It is injected wherever expiring state is needed
// instead of being held in process-global maps.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeStore wraps a Redis client as a verification-code store.
func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{client: client, ttl: ttl}
}

// GenerateCode generates a secure random code of the specified length.
// It returns a base32 encoded string (without padding) truncated to length.
func GenerateCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// Put stores a code under the given key with the store's TTL.
func (s *CodeStore) Put(ctx context.Context, key, code string) error {
	if err := s.client.Set(ctx, key, code, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// Verify compares the provided code to the stored one and deletes it on match.
func (s *CodeStore) Verify(ctx context.Context, key, provided string) error {
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCodeNotFound
		}
		return fmt.Errorf("failed to retrieve verification code: %w", err)
	}
	if stored != provided {
		return ErrCodeMismatch
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to delete verification code %s: %v", key, err)
	}
	return nil
}

// TTL returns the configured code lifetime.
func (s *CodeStore) TTL() time.Duration {
	return s.ttl
}
