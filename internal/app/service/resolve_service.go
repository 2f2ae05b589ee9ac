package service

import (
	"context"
	"fmt"

	"github.com/sifan077/LinkDeck/internal/app/repository"
)

// ResolveService maps a short identifier to its destination URL and records
// the visit. The destination is returned as stored; no safety checks happen
// on this path.
type ResolveService interface {
	Resolve(ctx context.Context, id string) (string, error)
}

type resolveService struct {
	repo   repository.LinkRepository
	cache  DestinationCache
	filter *IDFilter
}

// NewResolveService returns a resolver over the given repository. cache and
// filter may be nil; both only short-cut work the repository would otherwise do.
func NewResolveService(repo repository.LinkRepository, cache DestinationCache, filter *IDFilter) ResolveService {
	return &resolveService{
		repo:   repo,
		cache:  cache,
		filter: filter,
	}
}

func (s *resolveService) Resolve(ctx context.Context, id string) (string, error) {
	if s.filter != nil && !s.filter.MayContain(id) {
		return "", repository.ErrLinkNotFound
	}

	// The increment doubles as the existence check: it is a single atomic
	// clicks = clicks + 1 statement at the store, so N concurrent resolutions
	// land exactly N times and a missing id mutates nothing.
	if err := s.repo.IncrementClicks(ctx, id); err != nil {
		return "", fmt.Errorf("count visit: %w", err)
	}

	if s.cache != nil {
		if dest, ok := s.cache.Get(ctx, id); ok {
			return dest, nil
		}
	}

	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load link: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, id, link.URL)
	}
	return link.URL, nil
}
