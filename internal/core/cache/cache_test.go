package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadMissThenHit(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	var calls int32
	load := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{"v":1}`), nil
	}

	b, hit, err := c.GetOrLoad(ctx, "k", time.Hour, load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.JSONEq(t, `{"v":1}`, string(b))

	b, hit, err = c.GetOrLoad(ctx, "k", time.Hour, load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.JSONEq(t, `{"v":1}`, string(b))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("k").Seconds(), 1)
}

func TestGetOrLoadExpires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	var calls int32
	load := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`1`), nil
	}
	_, _, err := c.GetOrLoad(ctx, "k", time.Hour, load)
	require.NoError(t, err)

	mr.FastForward(time.Hour + time.Second)
	_, hit, err := c.GetOrLoad(ctx, "k", time.Hour, load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	c, mr := setupCache(t)
	boom := errors.New("boom")

	_, _, err := c.GetOrLoad(context.Background(), "k", time.Hour, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestGetOrLoadRedisDown(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	b, hit, err := c.GetOrLoad(context.Background(), "k", time.Hour, func(context.Context) ([]byte, error) {
		return []byte("x"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "x", string(b))
}

func TestGetOrLoadMergesConcurrentMisses(t *testing.T) {
	c, _ := setupCache(t)
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("v"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = c.GetOrLoad(context.Background(), "same", time.Minute, load)
		}()
	}
	time.Sleep(200 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGetOrLoadCancelledCallerDoesNotFailOthers(t *testing.T) {
	c, mr := setupCache(t)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) ([]byte, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return []byte("v"), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrLoad(first, "k", time.Minute, load)
		firstErr <- err
	}()
	<-started

	type result struct {
		b   []byte
		err error
	}
	second := make(chan result, 1)
	go func() {
		b, _, err := c.GetOrLoad(context.Background(), "k", time.Minute, load)
		second <- result{b, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	r := <-second
	require.NoError(t, r.err)
	assert.Equal(t, "v", string(r.b))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.True(t, mr.Exists("k"), "fill is still cached after the first caller left")
}

func TestGetOrLoadFillTimeout(t *testing.T) {
	c, _ := setupCache(t)
	c.FillTimeout = 50 * time.Millisecond

	_, _, err := c.GetOrLoad(context.Background(), "slow", time.Minute, func(ctx context.Context) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetOrLoadJSON(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()
	type item struct {
		Name string `json:"name"`
	}

	got, hit, err := GetOrLoadJSON[item](c, ctx, "j", time.Minute, func(context.Context) ([]byte, error) {
		return []byte(`{"name":"bag"}`), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	require.NotNil(t, got)
	assert.Equal(t, "bag", got.Name)

	got, hit, err = GetOrLoadJSON[item](c, ctx, "j", time.Minute, nil)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "bag", got.Name)

	got, _, err = GetOrLoadJSON[item](c, ctx, "n", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("null"), nil
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}
