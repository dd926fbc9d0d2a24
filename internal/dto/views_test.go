package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/models"
)

func TestToProfileView(t *testing.T) {
	desc := "hello"
	user := models.User{ID: 3, Username: "alice", FirstName: "Alice"}

	view := ToProfileView(user, models.UserProfile{Description: &desc, Links: []string{"a.com"}})
	assert.Equal(t, "Alice", view.User.FullName)
	assert.Equal(t, constants.DefaultAvatar, view.Avatar)
	assert.Equal(t, "hello", view.Description)
	assert.Empty(t, view.Location)
	assert.Equal(t, []string{"a.com"}, view.Links)
}

func TestToQuestionView(t *testing.T) {
	q := models.Question{
		ID:    1,
		Title: "T",
		Owner: models.User{ID: 2, Username: "bob"},
		Tags:  []models.Tag{{Name: "go"}, {Name: "gin"}},
	}

	view := ToQuestionView(q)
	assert.Equal(t, "bob", view.Owner.Username)
	assert.Equal(t, []string{"go", "gin"}, view.Tags)
	assert.Len(t, ToQuestionViews([]models.Question{q, q}), 2)
}
