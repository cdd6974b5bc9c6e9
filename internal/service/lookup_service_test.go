package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLookupCache struct {
	entries map[string]string
	getErr  error
	setErr  error
	deleted []string
}

func newFakeLookupCache() *fakeLookupCache {
	return &fakeLookupCache{entries: make(map[string]string)}
}

func (c *fakeLookupCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	value, hit := c.entries[key]
	return value, hit, nil
}

func (c *fakeLookupCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *fakeLookupCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

// countingTaskRepo tracks how often the distinct-value queries run.
type countingTaskRepo struct {
	memTaskRepo
	statuses   []string
	queryCalls int
	queryErr   error
}

func (r *countingTaskRepo) DistinctStatuses(_ context.Context, _ string) ([]string, error) {
	r.queryCalls++
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return r.statuses, nil
}

func newTestLookupService(cache LookupCache) (*LookupService, *countingTaskRepo) {
	repo := &countingTaskRepo{statuses: []string{"open", "done"}}
	return NewLookupService(repo, cache, zap.NewNop()), repo
}

func TestLookupCacheMissThenHit(t *testing.T) {
	cache := newFakeLookupCache()
	svc, repo := newTestLookupService(cache)
	ctx := context.Background()

	values, err := svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "done"}, values)
	assert.Equal(t, 1, repo.queryCalls)

	// Second call is served from the cache.
	values, err = svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "done"}, values)
	assert.Equal(t, 1, repo.queryCalls)
}

func TestLookupCacheIsPerUser(t *testing.T) {
	cache := newFakeLookupCache()
	svc, repo := newTestLookupService(cache)
	ctx := context.Background()

	_, err := svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.Statuses(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.queryCalls)
}

func TestLookupInvalidate(t *testing.T) {
	cache := newFakeLookupCache()
	svc, repo := newTestLookupService(cache)
	ctx := context.Background()

	_, err := svc.Statuses(ctx, "alice")
	require.NoError(t, err)

	svc.Invalidate(ctx, "alice")
	assert.Contains(t, cache.deleted, "lookup:alice:statuses")
	assert.Contains(t, cache.deleted, "lookup:alice:from")
	assert.Contains(t, cache.deleted, "lookup:alice:categories")

	_, err = svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.queryCalls, "invalidation forces a fresh query")
}

func TestLookupCacheFailureDegrades(t *testing.T) {
	cache := newFakeLookupCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc, repo := newTestLookupService(cache)
	ctx := context.Background()

	values, err := svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "done"}, values)
	assert.Equal(t, 1, repo.queryCalls)
}

func TestLookupWithoutCache(t *testing.T) {
	svc, repo := newTestLookupService(nil)
	ctx := context.Background()

	values, err := svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "done"}, values)

	svc.Invalidate(ctx, "alice")

	_, err = svc.Statuses(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.queryCalls)
}

func TestLookupQueryFailure(t *testing.T) {
	svc, repo := newTestLookupService(newFakeLookupCache())
	repo.queryErr = errors.New("postgres down")

	_, err := svc.Statuses(context.Background(), "alice")
	assert.Equal(t, "STORE_UNAVAILABLE", domainCode(t, err))
}
