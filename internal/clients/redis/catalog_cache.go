package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/edi-backend/internal/platform/envutil"
	"github.com/yungbote/edi-backend/internal/platform/logger"
)

const (
	statesKey    = "catalog:states"
	questionsKey = "catalog:questions"
)

// CatalogCache fronts the states/questions catalog, which every running
// assessment reads but admins change rarely. A cache miss or a down Redis is
// never an error to the caller; the service falls through to Postgres.
type CatalogCache interface {
	GetStates(ctx context.Context, dest any) bool
	SetStates(ctx context.Context, value any)
	GetQuestions(ctx context.Context, dest any) bool
	SetQuestions(ctx context.Context, value any)
	Invalidate(ctx context.Context)
	Close() error
}

type catalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewCatalogCache connects using REDIS_ADDR. An empty REDIS_ADDR is not an
// error; callers get a nil cache and should treat it as always-miss.
func NewCatalogCache(log *logger.Logger) (CatalogCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(envutil.Int("CATALOG_CACHE_TTL_SECONDS", 300)) * time.Second

	return &catalogCache{
		log: log.With("service", "CatalogCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *catalogCache) GetStates(ctx context.Context, dest any) bool {
	return c.get(ctx, statesKey, dest)
}

func (c *catalogCache) SetStates(ctx context.Context, value any) {
	c.set(ctx, statesKey, value)
}

func (c *catalogCache) GetQuestions(ctx context.Context, dest any) bool {
	return c.get(ctx, questionsKey, dest)
}

func (c *catalogCache) SetQuestions(ctx context.Context, value any) {
	c.set(ctx, questionsKey, value)
}

func (c *catalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, statesKey, questionsKey).Err(); err != nil {
		c.log.Warn("Catalog cache invalidation failed", "error", err.Error())
	}
}

func (c *catalogCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *catalogCache) get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Catalog cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Catalog cache entry corrupt", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (c *catalogCache) set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Catalog cache write failed", "key", key, "error", err.Error())
	}
}
