package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	GoogleID     *string   `gorm:"size:100;uniqueIndex" json:"-"`

	// Points is the spendable/earned currency. Never persisted negative:
	// every decrement is clamped at the current balance.
	Points int `gorm:"default:0;not null" json:"points"`
	// Reputation is a cumulative prestige counter fed from outside this
	// service. It is only read here, together with Points, for leveling.
	Reputation int `gorm:"default:0;not null" json:"reputation"`
	// Badges is the durable badge set, stored comma-delimited. Badges are
	// never removed once stored.
	Badges string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
