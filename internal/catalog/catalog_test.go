package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiqfome-api/internal/catalog"
	"aiqfome-api/internal/core/cache"
	"aiqfome-api/internal/domain"
	"aiqfome-api/internal/testutil"
)

func TestClientFetch(t *testing.T) {
	fc := testutil.NewFakeCatalog(t, 1)
	c := catalog.NewClient(fc.BaseURL()+"/", time.Second)
	ctx := context.Background()

	body, err := c.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, testutil.ProductJSON(1, "Product 1", 10.5), string(body))

	_, err = c.Fetch(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "empty body")

	fc.Set(2, "not json")
	_, err = c.Fetch(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "malformed json")

	fc.Set(3, "null")
	_, err = c.Fetch(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "null")

	fc.Set(4, "{}")
	_, err = c.Fetch(ctx, 4)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "no id")
}

func TestClientFetchStatusAndNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c := catalog.NewClient(srv.URL, time.Second)
	_, err := c.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	srv.Close()
	_, err = c.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

	_, err = catalog.NewClient("", time.Second).Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func newLookup(t *testing.T, ids ...int64) (*catalog.Lookup, *testutil.FakeCatalog, func(time.Duration)) {
	t.Helper()
	fc := testutil.NewFakeCatalog(t, ids...)
	rdb, mr := testutil.NewRedis(t)
	l := catalog.NewLookup(cache.NewWithClient(rdb), catalog.NewClient(fc.BaseURL(), time.Second), 0)
	return l, fc, mr.FastForward
}

func TestLookupReadThrough(t *testing.T) {
	l, fc, forward := newLookup(t, 1)
	ctx := context.Background()
	assert.Equal(t, catalog.DefaultTTL, l.TTL)

	p, err := l.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Product 1", p.Title)
	assert.Equal(t, "10.5", p.Price.String())

	p, err = l.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, 1, fc.Calls(1), "second lookup served from cache")

	forward(catalog.DefaultTTL + time.Second)
	_, err = l.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, fc.Calls(1), "refetched after ttl")
}

func TestLookupNoNegativeCaching(t *testing.T) {
	l, fc, _ := newLookup(t)
	ctx := context.Background()

	_, err := l.Product(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = l.Product(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 2, fc.Calls(5))

	fc.Set(5, testutil.ProductJSON(5, "Late", 1))
	p, err := l.Product(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Late", p.Title)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "product_42", catalog.Key(42))
}
