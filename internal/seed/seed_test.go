package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/forms"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewDB(t)
	opts := Options{
		Users:              4,
		Questions:          8,
		MaxAnswers:         3,
		MaxTagsPerQuestion: 3,
		Seed:               42,
		BcryptCost:         bcrypt.MinCost,
	}

	result, err := NewSeeder(db, opts).Run()
	require.NoError(t, err)
	assert.Len(t, result.Users, 4)
	assert.Len(t, result.Questions, 8)

	var users, profiles, questions, answers int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.Question{}).Count(&questions).Error)
	require.NoError(t, db.Model(&models.Answer{}).Count(&answers).Error)
	assert.Equal(t, int64(4), users)
	assert.Equal(t, int64(4), profiles, "every seeded user gets a profile")
	assert.Equal(t, int64(8), questions)
	assert.Equal(t, int64(result.Answers), answers)

	// At most one accepted answer per question
	var perQuestion []struct {
		QuestionID uint64
		Accepted   int64
	}
	require.NoError(t, db.Model(&models.Answer{}).
		Select("question_id, COUNT(*) AS accepted").
		Where("is_accepted = ?", true).
		Group("question_id").
		Scan(&perQuestion).Error)
	assert.Len(t, perQuestion, result.Accepted)
	for _, row := range perQuestion {
		assert.Equal(t, int64(1), row.Accepted)
	}
}

func TestSeeder_UsersAreValidAndCanLogIn(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewSeeder(db, Options{Seed: 7, BcryptCost: bcrypt.MinCost})

	for i := 0; i < 5; i++ {
		user, err := s.CreateUser()
		require.NoError(t, err)

		form := forms.RegisterForm{
			Username:  user.Username,
			Email:     user.Email,
			Password1: DemoPassword,
			Password2: DemoPassword,
		}
		assert.False(t, form.Validate().Any(), "seeded user %q passes the sign up rules", user.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(DemoPassword)))
	}
}

func TestSeeder_NoUsersNoQuestions(t *testing.T) {
	db := testutil.NewDB(t)

	result, err := NewSeeder(db, Options{Questions: 5}).Run()
	require.NoError(t, err)
	assert.Empty(t, result.Users)
	assert.Empty(t, result.Questions)
}

func TestSeeder_TagsComeFromDemoSet(t *testing.T) {
	s := NewSeeder(nil, Options{MaxTagsPerQuestion: 3, Seed: 1})

	for i := 0; i < 20; i++ {
		tags := s.tags()
		assert.LessOrEqual(t, len(tags), 3)
		for _, tag := range tags {
			assert.Contains(t, demoTags, tag)
		}
	}
}
