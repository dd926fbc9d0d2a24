// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/database"
	"github.com/yukikurage/qa-forum/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
// The database is shared between the pool's connections and closed with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.MigrateDatabase(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateUser stores a user with a bcrypt hash of password and a default profile.
func CreateUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(models.NewUserProfile(user.ID)).Error)
	return user
}

// CreateQuestion stores a question owned by owner with the given tag names.
func CreateQuestion(t *testing.T, db *gorm.DB, owner *models.User, title string, tags ...string) *models.Question {
	t.Helper()

	question := &models.Question{
		Title:   title,
		Text:    "Body of " + title,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Omit("Tags").Create(question).Error)

	for _, name := range tags {
		tag := models.Tag{Name: name}
		require.NoError(t, db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error)
		require.NoError(t, db.Model(question).Association("Tags").Append(&tag))
	}
	return question
}

// CreateAnswer stores an answer by owner under question.
func CreateAnswer(t *testing.T, db *gorm.DB, owner *models.User, question *models.Question, text string) *models.Answer {
	t.Helper()

	answer := &models.Answer{
		Text:       text,
		OwnerID:    owner.ID,
		QuestionID: question.ID,
	}
	require.NoError(t, db.Create(answer).Error)
	return answer
}
