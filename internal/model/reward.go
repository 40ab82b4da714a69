package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reward struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	Category    string    `gorm:"size:50" json:"category"`
	Icon        string    `gorm:"size:50" json:"icon"`
	// Available is finite stock. Like user points, it is never persisted
	// negative.
	Available int       `gorm:"default:0;not null" json:"available"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

type RewardRedemption struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RewardID uuid.UUID `gorm:"type:uuid;not null" json:"reward_id"`
	Reward   Reward    `gorm:"constraint:OnDelete:CASCADE" json:"reward,omitempty"`
	// Points is the cost captured at redemption time.
	Points    int       `gorm:"not null" json:"points"`
	Status    string    `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *RewardRedemption) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
