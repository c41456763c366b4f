package bookingRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"soupbarber/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const bookedSlotsKeyPrefix = "booked:"

// cacheClient is the subset of *redis.Client the cache needs.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// cachedBookingRepo is a read-through cache of booked times per day in front
// of another BookingRepository. Redis failures degrade to the inner store.
type cachedBookingRepo struct {
	inner  BookingRepository
	cache  cacheClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedBookingRepo wraps inner with a Redis cache keyed by day start.
func NewCachedBookingRepo(inner BookingRepository, cache cacheClient, ttl time.Duration, logger *zap.Logger) BookingRepository {
	return &cachedBookingRepo{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func bookedSlotsKey(dayStart time.Time) string {
	return bookedSlotsKeyPrefix + dayStart.Format(time.RFC3339)
}

func dayStartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (r *cachedBookingRepo) GetBookedTimes(ctx context.Context, start, end time.Time) ([]string, error) {
	key := bookedSlotsKey(start)

	raw, err := r.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var times []string
		if jsonErr := json.Unmarshal([]byte(raw), &times); jsonErr == nil {
			return times, nil
		}
		r.logger.Warn("discarding malformed booked-slots cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("booked-slots cache read failed", zap.String("key", key), zap.Error(err))
	}

	times, err := r.inner.GetBookedTimes(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(times); jsonErr == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("booked-slots cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return times, nil
}

func (r *cachedBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	err := r.inner.CreateBooking(ctx, booking)
	// A duplicate means the cached view for that day is stale as well.
	if err == nil || errors.Is(err, ErrDuplicateSlot) {
		key := bookedSlotsKey(dayStartOf(booking.Date))
		if delErr := r.cache.Del(ctx, key).Err(); delErr != nil {
			r.logger.Warn("booked-slots cache invalidation failed", zap.String("key", key), zap.Error(delErr))
		}
	}
	return err
}

// Unwrap exposes the wrapped repository.
func (r *cachedBookingRepo) Unwrap() BookingRepository {
	return r.inner
}
