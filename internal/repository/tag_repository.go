package repository

import (
	"github.com/yukikurage/qa-forum/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Resolve returns one tag per distinct name, creating missing ones
func (r *GormTagRepository) Resolve(names []string) ([]models.Tag, error) {
	return resolveTags(r.db, names)
}

// FindByName finds a tag by its exact name
func (r *GormTagRepository) FindByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// resolveTags upserts the names against the unique index on tags.name and
// returns the stored rows in the order of first appearance in names.
func resolveTags(db *gorm.DB, names []string) ([]models.Tag, error) {
	distinct := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}
	if len(distinct) == 0 {
		return []models.Tag{}, nil
	}

	tags := make([]models.Tag, len(distinct))
	for i, name := range distinct {
		tags[i] = models.Tag{Name: name}
	}

	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&tags).Error; err != nil {
		return nil, err
	}

	var stored []models.Tag
	if err := db.Where("name IN ?", distinct).Find(&stored).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]models.Tag, len(stored))
	for _, tag := range stored {
		byName[tag.Name] = tag
	}

	resolved := make([]models.Tag, 0, len(distinct))
	for _, name := range distinct {
		if tag, ok := byName[name]; ok {
			resolved = append(resolved, tag)
		}
	}
	return resolved, nil
}
