package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateQuestionRequest struct {
	Title      string    `json:"title" binding:"required,min=10,max=255"`
	Content    string    `json:"content" binding:"required,min=20"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Tags       []string  `json:"tags" binding:"max=5,dive,min=1,max=50"`
}

type CreateAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Content    string    `json:"content" binding:"required,min=10"`
}

type QuestionSummary struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Author      AuthorInfo   `json:"author"`
	Category    CategoryInfo `json:"category"`
	Tags        []string     `json:"tags"`
	Views       int          `json:"views"`
	AnswerCount int          `json:"answer_count"`
	VoteCount   int64        `json:"vote_count"`
	IsResolved  bool         `json:"is_resolved"`
	CreatedAt   time.Time    `json:"created_at"`
}

type AnswerView struct {
	ID         uuid.UUID  `json:"id"`
	Content    string     `json:"content"`
	Author     AuthorInfo `json:"author"`
	IsAccepted bool       `json:"is_accepted"`
	VoteCount  int64      `json:"vote_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AuthorInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Points    int       `json:"points"`
}

type CategoryInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color string    `json:"color"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}
