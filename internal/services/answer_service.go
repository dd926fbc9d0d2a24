package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnswerNotFound         = errors.New("answer not found")
	ErrAnswerQuestionMismatch = errors.New("answer does not belong to the question")
)

// AnswerService handles answer business logic
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	guard        *permissions.Guard
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository, guard *permissions.Guard) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		guard:        guard,
	}
}

// Create adds an answer to a question. Owner and question come from the
// session and the URL, never from the submitted form.
func (s *AnswerService) Create(ownerID, questionID uint64, text string) (*models.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if _, err := s.questionRepo.OwnerID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	answer := &models.Answer{
		Text:       text,
		OwnerID:    ownerID,
		QuestionID: questionID,
	}
	if err := s.answerRepo.Create(answer); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return answer, nil
}

// Get returns an answer, checking that it belongs to questionID.
func (s *AnswerService) Get(questionID, answerID uint64) (*models.Answer, error) {
	answer, err := s.answerRepo.FindByID(answerID, "Question")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}
	if answer.QuestionID != questionID {
		return nil, ErrAnswerQuestionMismatch
	}
	return answer, nil
}

// Edit saves new answer text.
func (s *AnswerService) Edit(questionID, answerID uint64, text string) (*models.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	answer, err := s.Get(questionID, answerID)
	if err != nil {
		return nil, err
	}
	answer.Text = text
	if err := s.answerRepo.UpdateText(answer); err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}
	return answer, nil
}

// Delete removes an answer and returns the id of its question.
func (s *AnswerService) Delete(questionID, answerID uint64) (uint64, error) {
	answer, err := s.Get(questionID, answerID)
	if err != nil {
		return 0, err
	}
	if err := s.answerRepo.Delete(answer.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAnswerNotFound
		}
		return 0, fmt.Errorf("failed to delete answer: %w", err)
	}
	return answer.QuestionID, nil
}

// Accept makes answerID the only accepted answer of questionID. Actors other
// than the question owner are ignored and false is returned. An answer id that
// matches none of the question's answers leaves every answer unaccepted.
func (s *AnswerService) Accept(actor permissions.Actor, questionID, answerID uint64) (bool, error) {
	ok, err := s.guard.CanAccept(actor, questionID)
	if err != nil {
		if errors.Is(err, permissions.ErrResourceNotFound) {
			return false, ErrQuestionNotFound
		}
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.answerRepo.Accept(questionID, answerID); err != nil {
		return false, fmt.Errorf("failed to accept answer: %w", err)
	}
	return true, nil
}

// RecentByOwner returns the newest answers of a user with their questions.
func (s *AnswerService) RecentByOwner(ownerID uint64, limit int) ([]models.Answer, error) {
	answers, err := s.answerRepo.ListByOwner(ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user answers: %w", err)
	}
	return answers, nil
}
