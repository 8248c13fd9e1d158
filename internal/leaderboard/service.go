package leaderboard

import (
	"context"
	"log"

	"github.com/Jam721/VkWebHomework/internal/cache"
)

// Service serves the cached aggregates shown beside every page.
// Results may be stale for up to Options.TTL.
type Service interface {
	PopularTags(ctx context.Context) ([]PopularTag, error)
	BestMembers(ctx context.Context) ([]BestMember, error)
	Sidebar(ctx context.Context) (*Sidebar, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo  Repository
	cache cache.Cache
	opts  Options
}

func NewService(repo Repository, c cache.Cache, opts Options) Service {
	if opts.TagsLimit <= 0 {
		opts.TagsLimit = 5
	}
	if opts.MembersLimit <= 0 {
		opts.MembersLimit = 5
	}
	if opts.RankBy == "" {
		opts.RankBy = RankByAnswers
	}
	return &service{repo: repo, cache: c, opts: opts}
}

func (s *service) PopularTags(ctx context.Context) ([]PopularTag, error) {
	return cache.GetOrSet(ctx, s.cache, PopularTagsKey, s.opts.TTL, func(ctx context.Context) ([]PopularTag, error) {
		return s.repo.PopularTags(ctx, s.opts.TagsLimit)
	})
}

func (s *service) BestMembers(ctx context.Context) ([]BestMember, error) {
	return cache.GetOrSet(ctx, s.cache, BestMembersKey, s.opts.TTL, func(ctx context.Context) ([]BestMember, error) {
		return s.repo.BestMembers(ctx, s.opts.MembersLimit, s.opts.RankBy)
	})
}

func (s *service) Sidebar(ctx context.Context) (*Sidebar, error) {
	tags, err := s.PopularTags(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.BestMembers(ctx)
	if err != nil {
		return nil, err
	}
	return &Sidebar{PopularTags: tags, BestMembers: members}, nil
}

// Invalidate drops both cached aggregates.
func (s *service) Invalidate(ctx context.Context) error {
	if err := s.cache.Delete(ctx, PopularTagsKey); err != nil {
		return err
	}
	return s.cache.Delete(ctx, BestMembersKey)
}

// SidebarOrEmpty returns the sidebar, or an empty one when it cannot be built.
// Pages render without it rather than fail.
func SidebarOrEmpty(ctx context.Context, svc Service) *Sidebar {
	sb, err := svc.Sidebar(ctx)
	if err != nil {
		log.Printf("[leaderboard] sidebar unavailable: %v", err)
		return &Sidebar{PopularTags: []PopularTag{}, BestMembers: []BestMember{}}
	}
	return sb
}
