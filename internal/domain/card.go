package domain

import "time"

type ListId = int64
type CardId = int64

type List struct {
	Id        ListId    `json:"id"`
	BoardId   BoardId   `json:"board_id"`
	Title     string    `json:"title"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	Cards     []*Card   `json:"cards,omitempty"`
}

type Card struct {
	Id          CardId     `json:"id"`
	ListId      ListId     `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Position    int64      `json:"position"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CardMember struct {
	CardId CardId `json:"card_id"`
	UserId UserId `json:"user_id"`

	DisplayName string `json:"display_name,omitempty"`
}

type Comment struct {
	Id         int64     `json:"id"`
	CardId     CardId    `json:"card_id"`
	AuthorId   *UserId   `json:"author_id,omitempty"` // nil once the author account is gone
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Html       string    `json:"html,omitempty"` // rendered + sanitized, filled on the read path
	CreatedAt  time.Time `json:"created_at"`
}

// CardDetail is the aggregate read record for a single card. Every field is
// explicitly typed so consumers get compile-time shape guarantees.
type CardDetail struct {
	Card Card `json:"card"`
	// DescriptionHtml is the card description rendered and sanitized for
	// display; Card.Description keeps the raw markdown for editing.
	DescriptionHtml string       `json:"description_html,omitempty"`
	List            List         `json:"list"`
	Board           Board        `json:"board"`
	Checklists      []*Checklist `json:"checklists"`
	Members         []CardMember `json:"members"`
	Labels          []Label      `json:"labels"`
	Comments        []*Comment   `json:"comments"`
	Status          CardStatus   `json:"status"`
}

// CardStatus summarizes checklist progress and due state for a card.
type CardStatus struct {
	TotalItems int  `json:"total_items"`
	DoneItems  int  `json:"done_items"`
	Overdue    bool `json:"overdue"`
}
