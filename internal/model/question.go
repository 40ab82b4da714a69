package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Author     User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id"`
	Category   Category   `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags       []Tag      `gorm:"many2many:question_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Views      int        `gorm:"default:0" json:"views"`
	Answers    []Answer   `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	Votes      []Vote     `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID, err = uuid.NewV7()
	}
	return
}

// IsResolved reports whether at least one loaded answer is accepted. The flag
// is derived, not stored.
func (q *Question) IsResolved() bool {
	for _, a := range q.Answers {
		if a.IsAccepted {
			return true
		}
	}
	return false
}
