package models

import (
	"time"
)

type Question struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	OwnerID   uint64    `gorm:"not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner   User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tags    []Tag    `gorm:"many2many:question_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// TagNames returns the names of the preloaded tags in their stored order.
func (q Question) TagNames() []string {
	names := make([]string, len(q.Tags))
	for i, tag := range q.Tags {
		names[i] = tag.Name
	}
	return names
}
