package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/models"
)

func (a *testApp) answers(questionID uint64) []models.Answer {
	a.t.Helper()
	var answers []models.Answer
	require.NoError(a.t, a.db.Where("question_id = ?", questionID).Order("id").Find(&answers).Error)
	return answers
}

func (a *testApp) userID(username string) uint64 {
	a.t.Helper()
	var user models.User
	require.NoError(a.t, a.db.Where("username = ?", username).First(&user).Error)
	return user.ID
}

func answer(t *testing.T, c *client, questionURL, text string) {
	t.Helper()
	w := c.postForm(questionURL+"/answer", url.Values{"text": {text}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, questionURL, w.Header().Get("Location"))
}

func TestAnswerHandler_CreateStampsOwner(t *testing.T) {
	app := newTestApp(t)
	alice := app.loggedIn("alice")
	bob := app.loggedIn("bob")
	location := ask(t, alice, "T", "")
	q := app.question("T")

	answer(t, bob, location, "use a map")

	answers := app.answers(q.ID)
	require.Len(t, answers, 1)
	assert.Equal(t, "use a map", answers[0].Text)
	assert.Equal(t, app.userID("bob"), answers[0].OwnerID)
	assert.False(t, answers[0].IsAccepted)

	w := alice.get(location)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "use a map")
}

func TestAnswerHandler_CreateValidationAndAuth(t *testing.T) {
	app := newTestApp(t)
	alice := app.loggedIn("alice")
	location := ask(t, alice, "T", "")
	q := app.question("T")

	w := alice.postForm(location+"/answer", url.Values{"text": {"   "}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")

	w = app.anonymous().postForm(location+"/answer", url.Values{"text": {"hi"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = alice.postForm("/questions/999/answer", url.Values{"text": {"hi"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, app.answers(q.ID))
}

func TestAnswerHandler_CreatePageIsNotFound(t *testing.T) {
	app := newTestApp(t)
	alice := app.loggedIn("alice")
	location := ask(t, alice, "T", "")

	assert.Equal(t, http.StatusNotFound, alice.get(location+"/answer").Code)
}

func TestAnswerHandler_EditAndDeleteByOwnerOnly(t *testing.T) {
	app := newTestApp(t)
	alice := app.loggedIn("alice")
	bob := app.loggedIn("bob")
	location := ask(t, alice, "T", "")
	q := app.question("T")
	answer(t, bob, location, "first")
	a := app.answers(q.ID)[0]
	answerURL := fmt.Sprintf("%s/%d", location, a.ID)

	w := alice.postForm(answerURL+"/edit", url.Values{"text": {"hijacked"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = bob.get(answerURL + "/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "first")

	w = bob.postForm(answerURL+"/edit", url.Values{"text": {"second"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
	assert.Equal(t, "second", app.answers(q.ID)[0].Text)

	w = alice.postForm(answerURL+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, app.answers(q.ID), 1)

	w = bob.get(answerURL + "/delete")
	require.Equal(t, http.StatusOK, w.Code)

	w = bob.postForm(answerURL+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
	assert.Empty(t, app.answers(q.ID))
}

func TestAnswerHandler_AnswerUnderWrongQuestion(t *testing.T) {
	app := newTestApp(t)
	alice := app.loggedIn("alice")
	first := ask(t, alice, "T1", "")
	second := ask(t, alice, "T2", "")
	answer(t, alice, first, "on first")
	a := app.answers(app.question("T1").ID)[0]

	w := alice.get(fmt.Sprintf("%s/%d/edit", second, a.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnswerHandler_AcceptKeepsSingleAcceptedAnswer(t *testing.T) {
	app := newTestApp(t)
	alice := app.loggedIn("alice")
	bob := app.loggedIn("bob")
	location := ask(t, alice, "T", "")
	q := app.question("T")
	answer(t, bob, location, "a1")
	answer(t, bob, location, "a2")
	answers := app.answers(q.ID)
	a1, a2 := answers[0], answers[1]

	w := alice.postForm(fmt.Sprintf("%s/%d/accept", location, a1.ID), url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))

	w = alice.postForm(fmt.Sprintf("%s/%d/accept", location, a2.ID), url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	answers = app.answers(q.ID)
	assert.False(t, answers[0].IsAccepted)
	assert.True(t, answers[1].IsAccepted)

	// The answer author does not own the question
	w = bob.postForm(fmt.Sprintf("%s/%d/accept", location, a1.ID), url.Values{})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))

	answers = app.answers(q.ID)
	assert.False(t, answers[0].IsAccepted)
	assert.True(t, answers[1].IsAccepted)
}
