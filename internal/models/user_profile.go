package models

import (
	"time"

	"github.com/yukikurage/qa-forum/internal/constants"
)

type UserProfile struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Avatar      string    `gorm:"type:varchar(255);not null;default:'avatars/default.png'" json:"avatar"`
	Description *string   `gorm:"type:text" json:"description"`
	Location    *string   `gorm:"type:varchar(100)" json:"location"`
	Links       []string  `gorm:"serializer:json" json:"links"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// NewUserProfile returns the profile every new user starts with.
func NewUserProfile(userID uint64) *UserProfile {
	return &UserProfile{
		UserID: userID,
		Avatar: constants.DefaultAvatar,
	}
}

// HasDefaultAvatar reports whether the profile points at the shared placeholder image.
func (p UserProfile) HasDefaultAvatar() bool {
	return p.Avatar == "" || p.Avatar == constants.DefaultAvatar
}
