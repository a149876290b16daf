package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisBookedSlotsKeyPrefix is the key prefix for the booked-slot cache.
	// Full key: slots:booked:<doctor_id>:<YYYY-MM-DD>
	RedisBookedSlotsKeyPrefix = "slots:booked:"

	// emptyMarker is stored in an otherwise empty set so a fully free day
	// is distinguishable from a cache miss. SMembers strips it on read.
	emptyMarker = "-"
)

// SlotCacheService caches the booked start times per doctor and date in a
// Redis set. The cache is read-through: a miss falls back to PostgreSQL and
// the caller repopulates. Every booking mutation invalidates the affected
// day, so a stale entry can only make a free slot look busy, never the
// other way around for longer than one invalidation.
//
// All failures here are non-fatal. The database stays the source of truth.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// GetBookedSlots returns the cached booked start times for a doctor and date.
// The second return value reports whether the day was in the cache at all.
func (s *SlotCacheService) GetBookedSlots(ctx context.Context, doctorID int, date time.Time) ([]string, bool, error) {
	key := s.key(doctorID, date)

	members, err := s.redisClient.SMembers(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to read booked-slot cache %s: %+v", key, err)
		return nil, false, fmt.Errorf("read booked slots %s: %w", key, err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	slots := make([]string, 0, len(members))
	for _, m := range members {
		if m == emptyMarker {
			continue
		}
		slots = append(slots, m)
	}
	return slots, true, nil
}

// SetBookedSlots replaces the cached day with the given booked start times.
// The entry expires 24 hours after the appointment date passes.
func (s *SlotCacheService) SetBookedSlots(ctx context.Context, doctorID int, date time.Time, slots []string) error {
	key := s.key(doctorID, date)

	members := make([]interface{}, 0, len(slots)+1)
	members = append(members, emptyMarker)
	for _, slot := range slots {
		members = append(members, slot)
	}

	pipe := s.redisClient.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, s.ttl(date))

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to write booked-slot cache %s: %+v", key, err)
		return fmt.Errorf("write booked slots %s: %w", key, err)
	}

	return nil
}

// Invalidate drops the cached day for a doctor. Called after any booking
// mutation that touches the day.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID int, date time.Time) error {
	key := s.key(doctorID, date)

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to invalidate booked-slot cache %s: %+v", key, err)
		return fmt.Errorf("invalidate booked slots %s: %w", key, err)
	}

	return nil
}

func (s *SlotCacheService) key(doctorID int, date time.Time) string {
	return fmt.Sprintf("%s%d:%s", RedisBookedSlotsKeyPrefix, doctorID, date.Format("2006-01-02"))
}

// ttl keeps the entry until 24 hours after the appointment date.
func (s *SlotCacheService) ttl(date time.Time) time.Duration {
	expireAt := date.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
