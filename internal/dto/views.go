package dto

import (
	"time"

	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/models"
)

// UserView represents a user in templates
type UserView struct {
	ID       uint64
	Username string
	FullName string
	Email    string
}

// ProfileView represents a user profile page
type ProfileView struct {
	User        UserView
	FirstName   string
	LastName    string
	Avatar      string
	Description string
	Location    string
	Links       []string
}

// QuestionView represents a question in lists and on its detail page
type QuestionView struct {
	ID        uint64
	Title     string
	Text      string
	Owner     UserView
	CreatedAt time.Time
	Tags      []string
}

// AnswerView represents an answer
type AnswerView struct {
	ID            uint64
	Text          string
	Owner         UserView
	QuestionID    uint64
	QuestionTitle string
	IsAccepted    bool
	CreatedAt     time.Time
}

// Conversion functions

// ToUserView converts a User model to UserView
func ToUserView(user models.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName(),
		Email:    user.Email,
	}
}

// ToProfileView converts a user and its profile to ProfileView
func ToProfileView(user models.User, profile models.UserProfile) ProfileView {
	view := ProfileView{
		User:      ToUserView(user),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    profile.Avatar,
		Links:     profile.Links,
	}
	if view.Avatar == "" {
		view.Avatar = constants.DefaultAvatar
	}
	if profile.Description != nil {
		view.Description = *profile.Description
	}
	if profile.Location != nil {
		view.Location = *profile.Location
	}
	return view
}

// ToQuestionView converts a Question model to QuestionView
func ToQuestionView(q models.Question) QuestionView {
	return QuestionView{
		ID:        q.ID,
		Title:     q.Title,
		Text:      q.Text,
		Owner:     ToUserView(q.Owner),
		CreatedAt: q.CreatedAt,
		Tags:      q.TagNames(),
	}
}

// ToQuestionViews converts a slice of Question models
func ToQuestionViews(questions []models.Question) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = ToQuestionView(q)
	}
	return views
}

// ToAnswerView converts an Answer model to AnswerView
func ToAnswerView(a models.Answer) AnswerView {
	return AnswerView{
		ID:            a.ID,
		Text:          a.Text,
		Owner:         ToUserView(a.Owner),
		QuestionID:    a.QuestionID,
		QuestionTitle: a.Question.Title,
		IsAccepted:    a.IsAccepted,
		CreatedAt:     a.CreatedAt,
	}
}

// ToAnswerViews converts a slice of Answer models
func ToAnswerViews(answers []models.Answer) []AnswerView {
	views := make([]AnswerView, len(answers))
	for i, a := range answers {
		views[i] = ToAnswerView(a)
	}
	return views
}
