package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/testutil"
	"gorm.io/gorm"
)

type answerFixture struct {
	db       *gorm.DB
	service  *AnswerService
	owner    *models.User
	other    *models.User
	question *models.Question
}

func newAnswerFixture(t *testing.T) answerFixture {
	t.Helper()
	db := testutil.NewDB(t)
	questions := repository.NewQuestionRepository(db)
	answers := repository.NewAnswerRepository(db)
	guard := permissions.NewGuard(questions, answers, repository.NewUserRepository(db))

	owner := testutil.CreateUser(t, db, "alice", "supersecret")
	return answerFixture{
		db:       db,
		service:  NewAnswerService(answers, questions, guard),
		owner:    owner,
		other:    testutil.CreateUser(t, db, "bob", "supersecret"),
		question: testutil.CreateQuestion(t, db, owner, "Q"),
	}
}

func (f answerFixture) accepted(t *testing.T) []uint64 {
	t.Helper()
	var ids []uint64
	require.NoError(t, f.db.Model(&models.Answer{}).
		Where("question_id = ? AND is_accepted = ?", f.question.ID, true).
		Pluck("id", &ids).Error)
	return ids
}

func TestAnswerService_CreateStampsOwnerAndQuestion(t *testing.T) {
	f := newAnswerFixture(t)

	answer, err := f.service.Create(f.other.ID, f.question.ID, "  42  ")
	require.NoError(t, err)
	assert.Equal(t, "42", answer.Text)
	assert.Equal(t, f.other.ID, answer.OwnerID)
	assert.Equal(t, f.question.ID, answer.QuestionID)
	assert.False(t, answer.IsAccepted)
	assert.False(t, answer.CreatedAt.IsZero())

	_, err = f.service.Create(f.other.ID, 999, "text")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = f.service.Create(f.other.ID, f.question.ID, " ")
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestAnswerService_AcceptByOwnerSwitchesAcceptedAnswer(t *testing.T) {
	f := newAnswerFixture(t)
	a1 := testutil.CreateAnswer(t, f.db, f.other, f.question, "one")
	a2 := testutil.CreateAnswer(t, f.db, f.other, f.question, "two")
	actor := permissions.Actor{ID: f.owner.ID}

	applied, err := f.service.Accept(actor, f.question.ID, a1.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = f.service.Accept(actor, f.question.ID, a2.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, []uint64{a2.ID}, f.accepted(t))
}

func TestAnswerService_AcceptByNonOwnerIsNoop(t *testing.T) {
	f := newAnswerFixture(t)
	a1 := testutil.CreateAnswer(t, f.db, f.other, f.question, "one")

	applied, err := f.service.Accept(permissions.Actor{ID: f.other.ID}, f.question.ID, a1.ID)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, f.accepted(t))

	applied, err = f.service.Accept(permissions.Anonymous, f.question.ID, a1.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = f.service.Accept(permissions.Actor{ID: f.owner.ID}, 999, a1.ID)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAnswerService_EditAndDelete(t *testing.T) {
	f := newAnswerFixture(t)
	answer := testutil.CreateAnswer(t, f.db, f.other, f.question, "one")

	edited, err := f.service.Edit(f.question.ID, answer.ID, "updated")
	require.NoError(t, err)
	assert.Equal(t, "updated", edited.Text)

	other := testutil.CreateQuestion(t, f.db, f.owner, "Other")
	_, err = f.service.Get(other.ID, answer.ID)
	assert.ErrorIs(t, err, ErrAnswerQuestionMismatch)

	questionID, err := f.service.Delete(f.question.ID, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, f.question.ID, questionID)

	_, err = f.service.Delete(f.question.ID, answer.ID)
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}
