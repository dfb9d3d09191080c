package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"aiqfome-api/internal/core/cache"
	"aiqfome-api/internal/domain"
)

const DefaultTTL = 3600 * time.Second

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "catalog_cache_requests_total", Help: "Product lookups by cache result"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(cacheRequests) }

type Fetcher interface {
	Fetch(ctx context.Context, id int64) ([]byte, error)
}

// Lookup product_<id> 读穿缓存；不做负缓存，也不主动失效
type Lookup struct {
	Cache   *cache.Cache
	Fetcher Fetcher
	TTL     time.Duration
}

func NewLookup(c *cache.Cache, f Fetcher, ttl time.Duration) *Lookup {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Lookup{Cache: c, Fetcher: f, TTL: ttl}
}

func Key(id int64) string { return fmt.Sprintf("product_%d", id) }

func (l *Lookup) Product(ctx context.Context, id int64) (*domain.Product, error) {
	p, hit, err := cache.GetOrLoadJSON[domain.Product](l.Cache, ctx, Key(id), l.TTL, func(ctx context.Context) ([]byte, error) {
		return l.Fetcher.Fetch(ctx, id)
	})
	switch {
	case err != nil:
		cacheRequests.WithLabelValues("error").Inc()
		return nil, err
	case hit:
		cacheRequests.WithLabelValues("hit").Inc()
	default:
		cacheRequests.WithLabelValues("miss").Inc()
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}
