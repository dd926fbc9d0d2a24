package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/testutil"
)

func newGuard(t *testing.T) (*Guard, *testutilFixtures) {
	t.Helper()
	db := testutil.NewDB(t)

	owner := testutil.CreateUser(t, db, "owner", "supersecret")
	other := testutil.CreateUser(t, db, "other", "supersecret")
	question := testutil.CreateQuestion(t, db, owner, "Q")
	answer := testutil.CreateAnswer(t, db, other, question, "A")

	guard := NewGuard(
		repository.NewQuestionRepository(db),
		repository.NewAnswerRepository(db),
		repository.NewUserRepository(db),
	)
	return guard, &testutilFixtures{
		owner:      Actor{ID: owner.ID},
		other:      Actor{ID: other.ID},
		questionID: question.ID,
		answerID:   answer.ID,
	}
}

type testutilFixtures struct {
	owner      Actor
	other      Actor
	questionID uint64
	answerID   uint64
}

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner(Actor{ID: 1}, 1))
	assert.False(t, IsOwner(Actor{ID: 1}, 2))
	assert.False(t, IsOwner(Anonymous, 0))
	assert.False(t, IsOwner(Anonymous, 1))
}

func TestGuard_QuestionOwnership(t *testing.T) {
	guard, f := newGuard(t)

	for _, check := range []func(Actor, Kind, uint64) (bool, error){guard.CanEdit, guard.CanDelete} {
		ok, err := check(f.owner, KindQuestion, f.questionID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = check(f.other, KindQuestion, f.questionID)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = check(Anonymous, KindQuestion, f.questionID)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestGuard_AnswerOwnership(t *testing.T) {
	guard, f := newGuard(t)

	ok, err := guard.CanEdit(f.other, KindAnswer, f.answerID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Owning the question does not grant editing someone else's answer
	ok, err = guard.CanDelete(f.owner, KindAnswer, f.answerID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuard_CanAcceptFollowsQuestionOwner(t *testing.T) {
	guard, f := newGuard(t)

	ok, err := guard.CanAccept(f.owner, f.questionID)
	require.NoError(t, err)
	assert.True(t, ok)

	// The answer's author cannot accept their own answer on someone else's question
	ok, err = guard.CanAccept(f.other, f.questionID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = guard.CanAccept(Anonymous, f.questionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuard_Profile(t *testing.T) {
	guard, f := newGuard(t)

	ok, err := guard.CanEdit(f.owner, KindProfile, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.CanEdit(f.other, KindProfile, f.owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuard_NotFoundAndUnknownKind(t *testing.T) {
	guard, f := newGuard(t)

	_, err := guard.CanEdit(f.owner, KindQuestion, 999)
	require.ErrorIs(t, err, ErrResourceNotFound)

	_, err = guard.CanDelete(f.owner, KindAnswer, 999)
	require.ErrorIs(t, err, ErrResourceNotFound)

	_, err = guard.CanEdit(f.owner, KindProfile, 999)
	require.ErrorIs(t, err, ErrResourceNotFound)

	_, err = guard.CanEdit(f.owner, Kind("tag"), 1)
	require.ErrorIs(t, err, ErrUnknownKind)
}
