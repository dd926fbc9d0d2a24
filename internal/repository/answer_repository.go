package repository

import (
	"github.com/yukikurage/qa-forum/internal/models"
	"gorm.io/gorm"
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// Create creates a new answer
func (r *GormAnswerRepository) Create(answer *models.Answer) error {
	return r.db.Omit("Owner", "Question").Create(answer).Error
}

// FindByID finds an answer by ID with optional preloading
func (r *GormAnswerRepository) FindByID(id uint64, preload ...string) (*models.Answer, error) {
	var answer models.Answer
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// ListForQuestion returns the accepted answer first, then the rest newest first
func (r *GormAnswerRepository) ListForQuestion(questionID uint64) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.
		Where("question_id = ?", questionID).
		Order("is_accepted DESC").
		Scopes(newest("answers")).
		Preload("Owner").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// ListByOwner returns the newest answers of a user with their questions
func (r *GormAnswerRepository) ListByOwner(ownerID uint64, limit int) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.
		Where("owner_id = ?", ownerID).
		Scopes(newest("answers")).
		Limit(limit).
		Preload("Question").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// UpdateText saves the answer text
func (r *GormAnswerRepository) UpdateText(answer *models.Answer) error {
	return r.db.Model(answer).Update("text", answer.Text).Error
}

// Delete removes an answer
func (r *GormAnswerRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Answer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Accept re-synchronizes the flag of every answer of the question so that only
// answerID is accepted. An answerID outside the question leaves none accepted.
func (r *GormAnswerRepository) Accept(questionID, answerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var answers []models.Answer
		if err := tx.Select("id", "is_accepted").
			Where("question_id = ?", questionID).
			Find(&answers).Error; err != nil {
			return err
		}

		for _, answer := range answers {
			accepted := answer.ID == answerID
			if answer.IsAccepted == accepted {
				continue
			}
			if err := tx.Model(&models.Answer{}).
				Where("id = ?", answer.ID).
				Update("is_accepted", accepted).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// OwnerID returns the owner of an answer
func (r *GormAnswerRepository) OwnerID(id uint64) (uint64, error) {
	return ownerOf(r.db, &models.Answer{}, id)
}
