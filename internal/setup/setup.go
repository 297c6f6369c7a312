package setup

import (
	"github.com/kanbo-dev/kanbo/internal/config"
	"github.com/kanbo-dev/kanbo/internal/handler"
	"github.com/kanbo-dev/kanbo/internal/jwt"
	"github.com/kanbo-dev/kanbo/internal/markdown"
	"github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/service"
	"github.com/kanbo-dev/kanbo/internal/storage/fs"
	"github.com/kanbo-dev/kanbo/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Jwt            jwt.JwtService
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	avatars, err := fs.New(cfg.Public.AvatarDir, cfg.Public.MaxAvatarBytes)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	renderer := markdown.New()

	access := service.NewAccess(storage)
	cascade := service.NewCascade(storage)

	auth := service.NewAuth(storage, jwtService, cfg.Public.BcryptCost)
	users := service.NewUser(storage, avatars, access)
	boards := service.NewBoard(storage, access, cascade)
	members := service.NewMember(storage, access)
	lists := service.NewList(storage, access, cascade)
	cards := service.NewCard(storage, access, cascade, renderer)
	labels := service.NewLabel(storage, access)
	comments := service.NewComment(storage, access, renderer)
	checklists := service.NewChecklist(storage, access, cascade)

	h := handler.New(auth, users, boards, members, lists, cards, labels, comments, checklists, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Jwt:            jwtService,
	}, nil
}
