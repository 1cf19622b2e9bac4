package notes

import (
	"context"
	"time"

	"stackpad/backend/internal/cache"
)

const (
	listCacheKey = "notes:all"
	listCacheTTL = 30 * time.Second
)

// Service wraps the repository with a read-through cache on the list path.
// Writes invalidate the cached list.
type Service struct {
	repo  *Repository
	store cache.Store
}

// NewService creates a notes service.
func NewService(repo *Repository, store cache.Store) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) Create(ctx context.Context, note *Note) error {
	if err := s.repo.Create(ctx, note); err != nil {
		return err
	}
	s.store.Delete(listCacheKey)
	return nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Note, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Note, error) {
	val, err := s.store.GetOrSet(listCacheKey, listCacheTTL, func() (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	// The Redis store round-trips through JSON, so the cached value may not
	// be the concrete slice. Fall back to the repository in that case.
	if out, ok := val.([]Note); ok {
		return out, nil
	}
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.store.Delete(listCacheKey)
	return nil
}
