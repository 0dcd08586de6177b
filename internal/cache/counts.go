package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/hopon/internal/model"
)

// Counts serves participant-count reads for list views. Counts are cached
// in Redis with a TTL and recomputed from the primary store on miss; with a
// nil Redis client every read falls through to the store. Capacity decisions
// never read from here — the membership transaction counts live rows.
type Counts struct {
	db    *gorm.DB
	cache *redis.Client
	ttl   time.Duration
}

func NewCounts(db *gorm.DB, cache *redis.Client, ttl time.Duration) *Counts {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Counts{db: db, cache: cache, ttl: ttl}
}

func eventKey(eventID string) string { return fmt.Sprintf("event:count:%s", eventID) }

func userKey(userID string) string { return fmt.Sprintf("user:joined:%s", userID) }

// EventCount returns the current participant count for one event.
func (c *Counts) EventCount(ctx context.Context, eventID string) (int64, error) {
	if c.cache != nil {
		if n, err := c.cache.Get(ctx, eventKey(eventID)).Int64(); err == nil {
			return n, nil
		}
	}
	return c.RefreshEvent(ctx, eventID)
}

// EventCounts bulk-loads counts for a list view with a single MGET, then a
// single grouped query for the misses.
func (c *Counts) EventCounts(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	missing := eventIDs
	if c.cache != nil {
		keys := make([]string, len(eventIDs))
		for i, id := range eventIDs {
			keys[i] = eventKey(id)
		}
		if vals, err := c.cache.MGet(ctx, keys...).Result(); err == nil {
			missing = missing[:0:0]
			for i, v := range vals {
				str, ok := v.(string)
				if !ok {
					missing = append(missing, eventIDs[i])
					continue
				}
				n, convErr := strconv.ParseInt(str, 10, 64)
				if convErr != nil {
					missing = append(missing, eventIDs[i])
					continue
				}
				out[eventIDs[i]] = n
			}
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	type row struct {
		EventID string
		Count   int64
	}
	var rows []row
	if err := c.db.WithContext(ctx).
		Model(&model.EventParticipant{}).
		Select("event_id, COUNT(*) AS count").
		Where("event_id IN ?", missing).
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	loaded := make(map[string]int64, len(rows))
	for _, r := range rows {
		loaded[r.EventID] = r.Count
	}
	for _, id := range missing {
		n := loaded[id] // zero for events with no participants
		out[id] = n
		c.writeBack(ctx, eventKey(id), n)
	}
	return out, nil
}

// UserJoinedCount returns how many events a user has joined.
func (c *Counts) UserJoinedCount(ctx context.Context, userID string) (int64, error) {
	if c.cache != nil {
		if n, err := c.cache.Get(ctx, userKey(userID)).Int64(); err == nil {
			return n, nil
		}
	}
	return c.RefreshUser(ctx, userID)
}

// RefreshEvent recomputes one event's count from the store and writes it back.
func (c *Counts) RefreshEvent(ctx context.Context, eventID string) (int64, error) {
	var n int64
	if err := c.db.WithContext(ctx).
		Model(&model.EventParticipant{}).
		Where("event_id = ?", eventID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	c.writeBack(ctx, eventKey(eventID), n)
	return n, nil
}

// RefreshUser recomputes one user's joined-event count and writes it back.
func (c *Counts) RefreshUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := c.db.WithContext(ctx).
		Model(&model.EventParticipant{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	c.writeBack(ctx, userKey(userID), n)
	return n, nil
}

func (c *Counts) writeBack(ctx context.Context, key string, n int64) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Set(ctx, key, n, c.ttl).Err()
}
