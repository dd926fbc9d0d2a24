package models

import (
	"time"
)

type Answer struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	OwnerID    uint64    `gorm:"not null;index" json:"owner_id"`
	QuestionID uint64    `gorm:"not null;index" json:"question_id"`
	IsAccepted bool      `gorm:"not null;default:false" json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Owner    User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Question Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}
