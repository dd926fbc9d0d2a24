package repository

import (
	"strings"

	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/utils"
	"gorm.io/gorm"
)

// GormQuestionRepository is a GORM implementation of QuestionRepository
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &GormQuestionRepository{db: db}
}

// Create creates a question and attaches its tags atomically.
func (r *GormQuestionRepository) Create(question *models.Question, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Tags must be resolved before the question is stored.
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		if err := tx.Omit("Tags", "Owner", "Answers").Create(question).Error; err != nil {
			return err
		}

		if len(tags) == 0 {
			question.Tags = []models.Tag{}
			return nil
		}
		if err := tx.Model(question).Association("Tags").Append(tags); err != nil {
			return err
		}
		question.Tags = tags
		return nil
	})
}

// FindByID finds a question by ID with optional preloading
func (r *GormQuestionRepository) FindByID(id uint64, preload ...string) (*models.Question, error) {
	var question models.Question
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&question, id).Error; err != nil {
		return nil, err
	}

	return &question, nil
}

// List returns questions newest first together with the total count
func (r *GormQuestionRepository) List(params utils.PaginationParams) ([]models.Question, int64, error) {
	var total int64
	if err := r.db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	if err := r.db.
		Scopes(newest("questions"), paginate(params)).
		Preload("Owner").
		Preload("Tags").
		Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// ListByOwner returns the newest questions of a user
func (r *GormQuestionRepository) ListByOwner(ownerID uint64, limit int) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.
		Where("owner_id = ?", ownerID).
		Scopes(newest("questions")).
		Limit(limit).
		Preload("Tags").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// ListByTag returns the questions tagged with exactly the given name
func (r *GormQuestionRepository) ListByTag(name string) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Joins("JOIN tags ON tags.id = question_tags.tag_id").
		Where("tags.name = ?", name).
		Scopes(newest("questions")).
		Preload("Owner").
		Preload("Tags").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// Search returns questions whose title or text match the query. PostgreSQL uses
// its full-text search; other engines fall back to a substring match.
func (r *GormQuestionRepository) Search(query string) ([]models.Question, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Question{}, nil
	}

	q := r.db.Model(&models.Question{})
	switch r.db.Dialector.Name() {
	case "postgres":
		q = q.Where("to_tsvector(questions.title || ' ' || questions.text) @@ plainto_tsquery(?)", query)
	default:
		pattern := "%" + escapeLike(query) + "%"
		q = q.Where("questions.title LIKE ? ESCAPE '!' OR questions.text LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var questions []models.Question
	if err := q.
		Scopes(newest("questions")).
		Preload("Owner").
		Preload("Tags").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// UpdateWithTags saves title and text and replaces the whole tag set atomically
func (r *GormQuestionRepository) UpdateWithTags(question *models.Question, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		if err := tx.Model(question).
			Select("title", "text", "updated_at").
			Updates(map[string]interface{}{
				"title": question.Title,
				"text":  question.Text,
			}).Error; err != nil {
			return err
		}

		association := tx.Model(question).Association("Tags")
		if err := association.Clear(); err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := association.Append(tags); err != nil {
				return err
			}
		}
		question.Tags = tags
		return nil
	})
}

// Delete removes a question, its answers and its tag links in a transaction
func (r *GormQuestionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Question{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&models.Question{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// OwnerID returns the owner of a question
func (r *GormQuestionRepository) OwnerID(id uint64) (uint64, error) {
	return ownerOf(r.db, &models.Question{}, id)
}

func ownerOf(db *gorm.DB, model interface{}, id uint64) (uint64, error) {
	var owners []uint64
	if err := db.Model(model).Where("id = ?", id).Limit(1).Pluck("owner_id", &owners).Error; err != nil {
		return 0, err
	}
	if len(owners) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return owners[0], nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}
