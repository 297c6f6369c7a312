package pg

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func (s *Storage) SaveComment(comment domain.Comment) (domain.Comment, error) {
	var author sql.NullInt64
	if comment.AuthorId != nil {
		author = sql.NullInt64{Int64: *comment.AuthorId, Valid: true}
	}
	err := s.db.QueryRow(`
        INSERT INTO comments(card_id, author_id, author_name, content)
        VALUES($1, $2, $3, $4)
        RETURNING id, created`,
		comment.CardId, author, comment.AuthorName, comment.Content,
	).Scan(&comment.Id, &comment.CreatedAt)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}

func (s *Storage) Comment(id int64) (domain.Comment, error) {
	var c domain.Comment
	var author sql.NullInt64
	err := s.db.QueryRow(
		"SELECT id, card_id, author_id, author_name, content, created FROM comments WHERE id = $1", id,
	).Scan(&c.Id, &c.CardId, &author, &c.AuthorName, &c.Content, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Comment{}, internal_errors.NotFound("Comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if author.Valid {
		c.AuthorId = &author.Int64
	}
	return c, nil
}

func (s *Storage) CommentsByCard(cardId domain.CardId) ([]*domain.Comment, error) {
	rows, err := s.db.Query(
		"SELECT id, card_id, author_id, author_name, content, created FROM comments WHERE card_id = $1 ORDER BY created, id",
		cardId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author sql.NullInt64
		if err := rows.Scan(&c.Id, &c.CardId, &author, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if author.Valid {
			c.AuthorId = &author.Int64
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (s *Storage) DeleteComment(id int64) error {
	result, err := s.db.Exec("DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Comment not found")
	}
	return nil
}

func (s *Storage) DeleteCommentsByCards(cardIds []domain.CardId) error {
	if len(cardIds) == 0 {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM comments WHERE card_id = ANY($1)", pq.Array(cardIds)); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

// DetachCommentsByAuthor nulls the author reference while keeping the
// denormalized author name, so comments outlive their author's account.
func (s *Storage) DetachCommentsByAuthor(userId domain.UserId) error {
	if _, err := s.db.Exec("UPDATE comments SET author_id = NULL WHERE author_id = $1", userId); err != nil {
		return fmt.Errorf("failed to detach comments of user %d: %w", userId, err)
	}
	return nil
}
