package service

import (
	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type CommentService interface {
	Comments(user *domain.User, cardId domain.CardId) ([]*domain.Comment, error)
	Add(user *domain.User, cardId domain.CardId, content string) (domain.Comment, error)
	Delete(user *domain.User, id int64) error
}

type CommentStorage interface {
	Board(id domain.BoardId) (domain.Board, error)
	List(id domain.ListId) (domain.List, error)
	Card(id domain.CardId) (domain.Card, error)
	SaveComment(comment domain.Comment) (domain.Comment, error)
	Comment(id int64) (domain.Comment, error)
	CommentsByCard(cardId domain.CardId) ([]*domain.Comment, error)
	DeleteComment(id int64) error
}

type Comment struct {
	storage  CommentStorage
	access   *Access
	renderer Renderer
}

func NewComment(storage CommentStorage, access *Access, renderer Renderer) *Comment {
	return &Comment{storage: storage, access: access, renderer: renderer}
}

func (c *Comment) boardOfCard(cardId domain.CardId) (domain.Board, error) {
	card, err := c.storage.Card(cardId)
	if err != nil {
		return domain.Board{}, err
	}
	list, err := c.storage.List(card.ListId)
	if err != nil {
		return domain.Board{}, err
	}
	return c.storage.Board(list.BoardId)
}

// Comments returns the card's comments with rendered HTML, oldest first.
func (c *Comment) Comments(user *domain.User, cardId domain.CardId) ([]*domain.Comment, error) {
	board, err := c.boardOfCard(cardId)
	if err != nil {
		return nil, err
	}
	if err := requireBoardView(c.access, user, board); err != nil {
		return nil, err
	}
	comments, err := c.storage.CommentsByCard(cardId)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		comment.Html = c.renderer.Render(comment.Content)
	}
	return comments, nil
}

// Add posts a comment. Editor and up. The author's display name is
// denormalized onto the row so it survives account deletion.
func (c *Comment) Add(user *domain.User, cardId domain.CardId, content string) (domain.Comment, error) {
	board, err := c.boardOfCard(cardId)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := requireBoardRole(c.access, user, board, domain.BoardRoleEditor); err != nil {
		return domain.Comment{}, err
	}

	authorId := user.Id
	comment, err := c.storage.SaveComment(domain.Comment{
		CardId:     cardId,
		AuthorId:   &authorId,
		AuthorName: user.DisplayName,
		Content:    content,
	})
	if err != nil {
		return domain.Comment{}, err
	}
	comment.Html = c.renderer.Render(comment.Content)
	return comment, nil
}

// Delete removes a comment. Allowed for its author, the board owner, and
// admins.
func (c *Comment) Delete(user *domain.User, id int64) error {
	comment, err := c.storage.Comment(id)
	if err != nil {
		return err
	}
	board, err := c.boardOfCard(comment.CardId)
	if err != nil {
		return err
	}
	if user == nil {
		return internal_errors.Forbidden("Authentication required")
	}
	isAuthor := comment.AuthorId != nil && *comment.AuthorId == user.Id
	if !isAuthor && !c.access.CanManageMembers(*user, board) {
		return internal_errors.Forbidden("Only the author or the board owner can delete a comment")
	}
	return c.storage.DeleteComment(id)
}
