package repositories

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"nagarseva-be/models"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// RedisOTPStore keeps pending challenges in Redis. Entries are stored with
// twice the logical expiry so a late verification can still be told apart
// from a never-requested one; the service checks ExpiresAt itself.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates a Redis-backed OTP store.
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Put(ctx context.Context, otp models.PendingOTP) error {
	payload, err := json.Marshal(otp)
	if err != nil {
		return err
	}
	ttl := 2 * time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, otpKeyPrefix+otp.Phone, payload, ttl).Err()
}

func (s *RedisOTPStore) GetDelete(ctx context.Context, phone string) (*models.PendingOTP, error) {
	payload, err := s.client.GetDel(ctx, otpKeyPrefix+phone).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var otp models.PendingOTP
	if err := json.Unmarshal([]byte(payload), &otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

// MemoryOTPStore is the in-process challenge store.
type MemoryOTPStore struct {
	mu   sync.Mutex
	otps map[string]models.PendingOTP
}

// NewMemoryOTPStore creates an empty in-memory OTP store.
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{otps: map[string]models.PendingOTP{}}
}

func (s *MemoryOTPStore) Put(ctx context.Context, otp models.PendingOTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.otps[otp.Phone] = otp
	return nil
}

func (s *MemoryOTPStore) GetDelete(ctx context.Context, phone string) (*models.PendingOTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	otp, exists := s.otps[phone]
	if !exists {
		return nil, ErrNotFound
	}
	delete(s.otps, phone)
	return &otp, nil
}
