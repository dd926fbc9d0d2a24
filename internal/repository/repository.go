package repository

import (
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/utils"
)

// QuestionRepository defines the interface for question data access
type QuestionRepository interface {
	// Create creates a question and attaches the named tags, creating missing tags,
	// within a single transaction.
	Create(question *models.Question, tagNames []string) error

	// FindByID finds a question by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Question, error)

	// List returns questions newest first together with the total count
	List(params utils.PaginationParams) ([]models.Question, int64, error)

	// ListByOwner returns the newest questions of a user
	ListByOwner(ownerID uint64, limit int) ([]models.Question, error)

	// ListByTag returns the questions tagged with exactly the given name
	ListByTag(name string) ([]models.Question, error)

	// Search returns questions whose title or text match the query
	Search(query string) ([]models.Question, error)

	// UpdateWithTags saves title and text and replaces the tag set within a single transaction
	UpdateWithTags(question *models.Question, tagNames []string) error

	// Delete removes a question, its answers and its tag links
	Delete(id uint64) error

	// OwnerID returns the owner of a question
	OwnerID(id uint64) (uint64, error)
}

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	// Create creates a new answer
	Create(answer *models.Answer) error

	// FindByID finds an answer by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Answer, error)

	// ListForQuestion returns the accepted answer first, then the rest newest first
	ListForQuestion(questionID uint64) ([]models.Answer, error)

	// ListByOwner returns the newest answers of a user with their questions
	ListByOwner(ownerID uint64, limit int) ([]models.Answer, error)

	// UpdateText saves the answer text
	UpdateText(answer *models.Answer) error

	// Delete removes an answer
	Delete(id uint64) error

	// Accept marks answerID as the only accepted answer of questionID
	Accept(questionID, answerID uint64) error

	// OwnerID returns the owner of an answer
	OwnerID(id uint64) (uint64, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Resolve returns one tag per distinct name, creating missing ones
	Resolve(names []string) ([]models.Tag, error)

	// FindByName finds a tag by its exact name
	FindByName(name string) (*models.Tag, error)
}

// UserRepository defines the interface for user and profile data access
type UserRepository interface {
	// CreateWithProfile creates a user and its default profile within a single transaction.
	CreateWithProfile(user *models.User) error

	// EnsureProfile returns the profile of a user, creating the default one if missing.
	EnsureProfile(userID uint64) (*models.UserProfile, error)

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// UsernameTaken reports whether another user already uses username
	UsernameTaken(username string, excludeID uint64) (bool, error)

	// FindProfile finds the profile of a user
	FindProfile(userID uint64) (*models.UserProfile, error)

	// UpdateWithProfile saves the account fields, then the profile fields, within a single transaction
	UpdateWithProfile(user *models.User, profile *models.UserProfile) error

	// UpdatePassword saves a new password hash
	UpdatePassword(userID uint64, passwordHash string) error

	// UpdateEmail saves a new email
	UpdateEmail(userID uint64, email string) error

	// List returns all users ordered by ID
	List() ([]models.User, error)

	// Delete removes a user with the profile and all authored content
	Delete(id uint64) error
}
