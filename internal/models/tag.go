package models

// Tag is shared between questions and looked up by its exact name.
type Tag struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`

	// Relations
	Questions []Question `gorm:"many2many:question_tags" json:"-"`
}
