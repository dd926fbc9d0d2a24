package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrTextRequired     = errors.New("text is required")
)

// QuestionService handles question business logic
type QuestionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// QuestionInput is an already validated ask or edit form. A nil Tags slice
// means the question has no tags.
type QuestionInput struct {
	Title string
	Text  string
	Tags  []string
}

func (in QuestionInput) check() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(in.Text) == "" {
		return ErrTextRequired
	}
	return nil
}

// List returns a page of questions, newest first, with the total count.
func (s *QuestionService) List(params utils.PaginationParams) ([]models.Question, int64, error) {
	questions, total, err := s.questionRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

// Get returns a question with its owner and tags.
func (s *QuestionService) Get(id uint64) (*models.Question, error) {
	question, err := s.questionRepo.FindByID(id, "Owner", "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return question, nil
}

// GetWithAnswers returns a question and its answers, the accepted one first and
// the rest newest first.
func (s *QuestionService) GetWithAnswers(id uint64) (*models.Question, []models.Answer, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	answers, err := s.answerRepo.ListForQuestion(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return question, answers, nil
}

// Ask creates a question owned by ownerID.
func (s *QuestionService) Ask(ownerID uint64, input QuestionInput) (*models.Question, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:   strings.TrimSpace(input.Title),
		Text:    strings.TrimSpace(input.Text),
		OwnerID: ownerID,
	}
	if err := s.questionRepo.Create(question, input.Tags); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// Edit replaces title, text and the whole tag set of a question.
func (s *QuestionService) Edit(id uint64, input QuestionInput) (*models.Question, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	question.Title = strings.TrimSpace(input.Title)
	question.Text = strings.TrimSpace(input.Text)

	if err := s.questionRepo.UpdateWithTags(question, input.Tags); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// Delete removes a question with its answers.
func (s *QuestionService) Delete(id uint64) error {
	if err := s.questionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// Search returns questions matching a free text query. A blank query matches nothing.
func (s *QuestionService) Search(query string) ([]models.Question, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Question{}, nil
	}
	questions, err := s.questionRepo.Search(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// Tagged returns the questions carrying exactly the tag name. Unknown tags yield an empty list.
func (s *QuestionService) Tagged(name string) ([]models.Question, error) {
	questions, err := s.questionRepo.ListByTag(name)
	if err != nil {
		return nil, fmt.Errorf("failed to list tagged questions: %w", err)
	}
	return questions, nil
}

// RecentByOwner returns the newest questions of a user.
func (s *QuestionService) RecentByOwner(ownerID uint64, limit int) ([]models.Question, error) {
	questions, err := s.questionRepo.ListByOwner(ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user questions: %w", err)
	}
	return questions, nil
}
