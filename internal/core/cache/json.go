package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON 缓存里存的是回源拿到的原始 JSON，读出后解码成 T。
// load 返回的内容必须已经校验过，否则会被原样缓存。
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) ([]byte, error),
) (*T, bool, error) {
	b, hit, err := c.GetOrLoad(ctx, key, ttl, load)
	if err != nil {
		return nil, false, err
	}
	if len(bytes.TrimSpace(b)) == 0 || string(b) == "null" {
		return nil, hit, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, hit, e
	}
	return &out, hit, nil
}
