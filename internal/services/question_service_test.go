package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/testutil"
	"github.com/yukikurage/qa-forum/internal/utils"
	"gorm.io/gorm"
)

type QuestionServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *QuestionService
	owner   *models.User
}

func (suite *QuestionServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewQuestionService(
		repository.NewQuestionRepository(suite.db),
		repository.NewAnswerRepository(suite.db),
	)
	suite.owner = testutil.CreateUser(suite.T(), suite.db, "alice", "supersecret")
}

func (suite *QuestionServiceTestSuite) tagNames(questionID uint64) []string {
	var q models.Question
	suite.Require().NoError(suite.db.Preload("Tags").First(&q, questionID).Error)
	names := q.TagNames()
	sort.Strings(names)
	return names
}

func (suite *QuestionServiceTestSuite) TestAsk_WithTags() {
	question, err := suite.service.Ask(suite.owner.ID, QuestionInput{Title: "T", Text: "B", Tags: []string{"x", "y"}})
	suite.Require().NoError(err)

	suite.Equal("T", question.Title)
	suite.Equal(suite.owner.ID, question.OwnerID)
	suite.Equal([]string{"x", "y"}, suite.tagNames(question.ID))
}

func (suite *QuestionServiceTestSuite) TestAsk_RequiresTitleAndText() {
	_, err := suite.service.Ask(suite.owner.ID, QuestionInput{Title: " ", Text: "B"})
	suite.ErrorIs(err, ErrTitleRequired)

	_, err = suite.service.Ask(suite.owner.ID, QuestionInput{Title: "T", Text: ""})
	suite.ErrorIs(err, ErrTextRequired)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Question{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *QuestionServiceTestSuite) TestEdit_ReplacesTagSet() {
	question, err := suite.service.Ask(suite.owner.ID, QuestionInput{Title: "T", Text: "B", Tags: []string{"x", "y"}})
	suite.Require().NoError(err)

	edited, err := suite.service.Edit(question.ID, QuestionInput{Title: "T2", Text: "B2", Tags: []string{"y", "z"}})
	suite.Require().NoError(err)
	suite.Equal("T2", edited.Title)
	suite.Equal([]string{"y", "z"}, suite.tagNames(question.ID))

	// The unused tag is kept
	var tagCount int64
	suite.Require().NoError(suite.db.Model(&models.Tag{}).Count(&tagCount).Error)
	suite.Equal(int64(3), tagCount)
}

func (suite *QuestionServiceTestSuite) TestEdit_NoTagsClearsSet() {
	question, err := suite.service.Ask(suite.owner.ID, QuestionInput{Title: "T", Text: "B", Tags: []string{"x"}})
	suite.Require().NoError(err)

	_, err = suite.service.Edit(question.ID, QuestionInput{Title: "T", Text: "B"})
	suite.Require().NoError(err)
	suite.Empty(suite.tagNames(question.ID))
}

func (suite *QuestionServiceTestSuite) TestEdit_NotFound() {
	_, err := suite.service.Edit(404, QuestionInput{Title: "T", Text: "B"})
	suite.ErrorIs(err, ErrQuestionNotFound)
}

func (suite *QuestionServiceTestSuite) TestGetWithAnswers() {
	question := testutil.CreateQuestion(suite.T(), suite.db, suite.owner, "Q", "go")
	bob := testutil.CreateUser(suite.T(), suite.db, "bob", "supersecret")
	first := testutil.CreateAnswer(suite.T(), suite.db, bob, question, "first")
	testutil.CreateAnswer(suite.T(), suite.db, bob, question, "second")
	suite.Require().NoError(suite.db.Model(first).Update("is_accepted", true).Error)

	got, answers, err := suite.service.GetWithAnswers(question.ID)
	suite.Require().NoError(err)
	suite.Equal("alice", got.Owner.Username)
	suite.Equal([]string{"go"}, got.TagNames())
	suite.Require().Len(answers, 2)
	suite.Equal(first.ID, answers[0].ID)

	_, _, err = suite.service.GetWithAnswers(999)
	suite.ErrorIs(err, ErrQuestionNotFound)
}

func (suite *QuestionServiceTestSuite) TestDelete() {
	question := testutil.CreateQuestion(suite.T(), suite.db, suite.owner, "Q")

	suite.Require().NoError(suite.service.Delete(question.ID))
	suite.ErrorIs(suite.service.Delete(question.ID), ErrQuestionNotFound)
}

func (suite *QuestionServiceTestSuite) TestListSearchAndTagged() {
	testutil.CreateQuestion(suite.T(), suite.db, suite.owner, "Gin routing", "go")
	testutil.CreateQuestion(suite.T(), suite.db, suite.owner, "Flask forms", "python")

	questions, total, err := suite.service.List(utils.PaginationParams{Page: 1, Limit: 20})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(questions, 2)

	found, err := suite.service.Search("routing")
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal("Gin routing", found[0].Title)

	blank, err := suite.service.Search("   ")
	suite.Require().NoError(err)
	suite.Empty(blank)

	tagged, err := suite.service.Tagged("python")
	suite.Require().NoError(err)
	suite.Require().Len(tagged, 1)

	unknown, err := suite.service.Tagged("rust")
	suite.Require().NoError(err)
	suite.Empty(unknown)
}

func (suite *QuestionServiceTestSuite) TestRecentByOwner() {
	for _, title := range []string{"1", "2", "3", "4", "5", "6"} {
		testutil.CreateQuestion(suite.T(), suite.db, suite.owner, title)
	}

	recent, err := suite.service.RecentByOwner(suite.owner.ID, 5)
	suite.Require().NoError(err)
	suite.Len(recent, 5)
}

func TestQuestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuestionServiceTestSuite))
}
