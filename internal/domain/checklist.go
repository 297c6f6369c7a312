package domain

import "time"

type ChecklistId = int64

type Checklist struct {
	Id       ChecklistId      `json:"id"`
	CardId   CardId           `json:"card_id"`
	Title    string           `json:"title"`
	Position int64            `json:"position"`
	Items    []*ChecklistItem `json:"items,omitempty"`
}

type ChecklistItem struct {
	Id          int64       `json:"id"`
	ChecklistId ChecklistId `json:"checklist_id"`
	Content     string      `json:"content"`
	Position    int64       `json:"position"`
	Completed   bool        `json:"completed"`
	AssigneeId  *UserId     `json:"assignee_id,omitempty"`
	DueAt       *time.Time  `json:"due_at,omitempty"`
}
