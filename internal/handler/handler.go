package handler

import (
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/config"
	"github.com/kanbo-dev/kanbo/internal/service"
)

type Handler struct {
	auth       service.AuthService
	users      service.UserService
	boards     service.BoardService
	members    service.MemberService
	lists      service.ListService
	cards      service.CardService
	labels     service.LabelService
	comments   service.CommentService
	checklists service.ChecklistService
	cfg        *config.Config
}

func New(
	auth service.AuthService,
	users service.UserService,
	boards service.BoardService,
	members service.MemberService,
	lists service.ListService,
	cards service.CardService,
	labels service.LabelService,
	comments service.CommentService,
	checklists service.ChecklistService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		auth:       auth,
		users:      users,
		boards:     boards,
		members:    members,
		lists:      lists,
		cards:      cards,
		labels:     labels,
		comments:   comments,
		checklists: checklists,
		cfg:        cfg,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
