package service

import (
	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/repository"
)

type Services struct {
	Auth   *AuthService
	Admin  *AdminService
	User   *UserService
	Design *DesignService
	Post   *PostService
	Link   *LinkService
	Bio    *BioService
	Stats  *StatsService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	userSessions := NewSessionManager(repos.Session, UserSessions(cfg.UserSessionTTL))
	adminSessions := NewSessionManager(repos.Session, AdminSessions(cfg.AdminSessionTTL))
	designs := NewDesignService(repos.Design, repos.User, repos.Like)

	return &Services{
		Auth:   NewAuthService(repos.User, userSessions, cfg),
		Admin:  NewAdminService(repos.Admin, adminSessions, cfg),
		User:   NewUserService(repos.User, designs, cfg),
		Design: designs,
		Post:   NewPostService(repos.Post, repos.User),
		Link:   NewLinkService(repos.Link),
		Bio:    NewBioService(repos.Bio, cfg.BioCacheTTL),
		Stats:  NewStatsService(repos),
	}
}
