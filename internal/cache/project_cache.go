package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "projects:user:"

// ProjectCache caches each user's project list in Redis. The list changes
// whenever a project the user can see is created, edited, deleted, or the
// user is added/removed as a collaborator, so writers invalidate every
// affected user.
type ProjectCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProjectCache returns a new ProjectCache.
func NewProjectCache(rdb *redis.Client, ttl time.Duration) *ProjectCache {
	return &ProjectCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64) string {
	return keyListPrefix + strconv.FormatInt(userID, 10)
}

// GetList returns the cached list for the user or nil on miss.
func (c *ProjectCache) GetList(ctx context.Context, userID int64) ([]dom.Project, error) {
	b, err := c.rdb.Get(ctx, listKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Project
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the user's project list.
func (c *ProjectCache) SetList(ctx context.Context, userID int64, list []dom.Project) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID), b, c.ttl).Err()
}

// InvalidateUsers drops the cached lists of every given user.
func (c *ProjectCache) InvalidateUsers(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = listKey(id)
	}
	return c.rdb.Del(ctx, keys...).Err()
}
