package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FullName     string     `gorm:"size:255" json:"full_name,omitempty"`
	Email        *string    `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	GoogleSub    *string    `gorm:"size:255;uniqueIndex" json:"-"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	IsPremium    bool       `gorm:"not null;default:false" json:"is_premium"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"is_admin"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
