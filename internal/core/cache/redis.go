package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// 合并回源的默认超时
const DefaultFillTimeout = 10 * time.Second

type Cache struct {
	RDB *redis.Client
	// FillTimeout 合并回源自身的超时，不跟随任何一个调用方
	FillTimeout time.Duration
	sf          singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{RDB: rdb, FillTimeout: DefaultFillTimeout}
}

// GetOrLoad 先读缓存，未命中回源并写入；hit 表示是否来自缓存
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) (b []byte, hit bool, err error) {
	b, err = c.RDB.Get(ctx, key).Bytes()
	if err == nil {
		return b, true, nil
	}
	// redis 故障时也直接回源
	// single flight 合并回源；回源脱离调用方 ctx，单个调用方取消不影响其他人
	ch := c.sf.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fillTimeout())
		defer cancel()
		b, e := load(fctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(fctx, key, b, ttl).Err()
		return b, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		return r.Val.([]byte), false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (c *Cache) fillTimeout() time.Duration {
	if c.FillTimeout > 0 {
		return c.FillTimeout
	}
	return DefaultFillTimeout
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }
