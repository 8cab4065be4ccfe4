package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
)

// dashboardSize is how many users and designs the dashboard shows.
const dashboardSize = 5

type StatsService struct {
	repos *repository.Repositories
}

func NewStatsService(repos *repository.Repositories) *StatsService {
	return &StatsService{repos: repos}
}

type Stats struct {
	Users   int `json:"users"`
	Designs int `json:"designs"`
	Posts   int `json:"posts"`
	Links   int `json:"links"`
}

type Dashboard struct {
	RecentUsers    []*domain.User   `json:"recentUsers"`
	PopularDesigns []*domain.Design `json:"popularDesigns"`
}

func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, err
	}
	designs, err := s.repos.Design.List(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.repos.Post.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.repos.Link.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Users:   len(users),
		Designs: len(designs),
		Posts:   len(posts),
		Links:   len(links),
	}, nil
}

// Dashboard returns the newest users and the most liked designs.
func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, err
	}
	sortUsersNewestFirst(users)

	designs, err := s.repos.Design.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(designs, func(a, b *domain.Design) int {
		if c := cmp.Compare(b.Likes, a.Likes); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})

	return &Dashboard{
		RecentUsers:    users[:min(dashboardSize, len(users))],
		PopularDesigns: designs[:min(dashboardSize, len(designs))],
	}, nil
}
