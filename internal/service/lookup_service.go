package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/taskboard/internal/repository"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// LookupCache is the subset of the Redis wrapper the lookup service needs.
type LookupCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const lookupCacheTTL = 5 * time.Minute

// LookupService serves the distinct-value endpoints backing the filter UI.
// Results are cached per user; task writes invalidate the cache. Cache
// failures degrade to direct queries.
type LookupService struct {
	tasks  repository.TaskRepository
	cache  LookupCache
	logger *zap.Logger
}

// NewLookupService builds the service.
func NewLookupService(tasks repository.TaskRepository, cache LookupCache, logger *zap.Logger) *LookupService {
	return &LookupService{tasks: tasks, cache: cache, logger: logger}
}

// Statuses returns the distinct task statuses for a user.
func (s *LookupService) Statuses(ctx context.Context, creator string) ([]string, error) {
	return s.cached(ctx, "statuses", creator, s.tasks.DistinctStatuses)
}

// FromValues returns the distinct task origins for a user.
func (s *LookupService) FromValues(ctx context.Context, creator string) ([]string, error) {
	return s.cached(ctx, "from", creator, s.tasks.DistinctFromValues)
}

// Categories returns the distinct task categories for a user.
func (s *LookupService) Categories(ctx context.Context, creator string) ([]string, error) {
	return s.cached(ctx, "categories", creator, s.tasks.DistinctCategories)
}

// Invalidate drops the cached lookup values for a user.
func (s *LookupService) Invalidate(ctx context.Context, creator string) {
	if s.cache == nil {
		return
	}
	keys := []string{
		lookupKey("statuses", creator),
		lookupKey("from", creator),
		lookupKey("categories", creator),
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn("lookup cache invalidation failed", zap.String("creator", creator), zap.Error(err))
	}
}

func (s *LookupService) cached(ctx context.Context, kind, creator string, query func(context.Context, string) ([]string, error)) ([]string, error) {
	key := lookupKey(kind, creator)

	if s.cache != nil {
		raw, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("lookup cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			var values []string
			if err := json.Unmarshal([]byte(raw), &values); err == nil {
				return values, nil
			}
		}
	}

	values, err := query(ctx, creator)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(values); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), lookupCacheTTL); err != nil {
				s.logger.Warn("lookup cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return values, nil
}

func lookupKey(kind, creator string) string {
	return "lookup:" + creator + ":" + kind
}
