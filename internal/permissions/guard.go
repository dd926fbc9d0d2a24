// Package permissions decides who may change a question, an answer or a profile.
package permissions

import (
	"errors"
	"fmt"

	"github.com/yukikurage/qa-forum/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnknownKind      = errors.New("unknown resource kind")
)

// Kind names a guarded resource type.
type Kind string

const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
	KindProfile  Kind = "profile"
)

// Actor is the user performing a request. The zero value is anonymous.
type Actor struct {
	ID uint64
}

// Anonymous is the actor of requests without a session.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// IsOwner reports whether an authenticated actor owns a resource with ownerID.
func IsOwner(actor Actor, ownerID uint64) bool {
	return actor.Authenticated() && ownerID != 0 && actor.ID == ownerID
}

// Guard resolves resource owners and compares them with the actor.
type Guard struct {
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	users     repository.UserRepository
}

func NewGuard(questions repository.QuestionRepository, answers repository.AnswerRepository, users repository.UserRepository) *Guard {
	return &Guard{
		questions: questions,
		answers:   answers,
		users:     users,
	}
}

// CanEdit reports whether actor may edit the resource.
func (g *Guard) CanEdit(actor Actor, kind Kind, id uint64) (bool, error) {
	return g.owns(actor, kind, id)
}

// CanDelete reports whether actor may delete the resource.
func (g *Guard) CanDelete(actor Actor, kind Kind, id uint64) (bool, error) {
	return g.owns(actor, kind, id)
}

// CanAccept reports whether actor may choose the accepted answer of a question.
// Only the question's owner decides, whoever wrote the answers.
func (g *Guard) CanAccept(actor Actor, questionID uint64) (bool, error) {
	return g.owns(actor, KindQuestion, questionID)
}

func (g *Guard) owns(actor Actor, kind Kind, id uint64) (bool, error) {
	ownerID, err := g.ownerOf(kind, id)
	if err != nil {
		return false, err
	}
	return IsOwner(actor, ownerID), nil
}

// ownerOf runs even for anonymous actors so unknown ids surface as not found.
func (g *Guard) ownerOf(kind Kind, id uint64) (uint64, error) {
	var (
		ownerID uint64
		err     error
	)
	switch kind {
	case KindQuestion:
		ownerID, err = g.questions.OwnerID(id)
	case KindAnswer:
		ownerID, err = g.answers.OwnerID(id)
	case KindProfile:
		// A profile page is addressed by its user id, and the user owns it.
		_, err = g.users.FindByID(id)
		ownerID = id
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, fmt.Errorf("failed to resolve %s owner: %w", kind, err)
	}
	return ownerID, nil
}
