package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewAuthService(repository.NewUserRepository(db)).WithBcryptCost(bcrypt.MinCost), db
}

func TestAuthService_RegisterCreatesSingleDefaultProfile(t *testing.T) {
	svc, db := newAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	var profiles []models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Equal(t, constants.DefaultAvatar, profiles[0].Avatar)
	assert.Nil(t, profiles[0].Description)
	assert.Nil(t, profiles[0].Location)
	assert.Empty(t, profiles[0].Links)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Email: "b@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserNotFound(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.GetUser(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	user, err := svc.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, "not-it", "brand-new-pass")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	require.NoError(t, svc.ChangePassword(user.ID, "supersecret", "brand-new-pass"))

	_, err = svc.Login(LoginInput{Username: "alice", Password: "brand-new-pass"})
	assert.NoError(t, err)
	_, err = svc.Login(LoginInput{Username: "alice", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ChangeEmailAllowsAddressOfAnotherUser(t *testing.T) {
	svc, _ := newAuthService(t)
	alice, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	_, err = svc.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangeEmail(alice.ID, "bob@example.com"))

	reloaded, err := svc.GetUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", reloaded.Email)

	assert.ErrorIs(t, svc.ChangeEmail(999, "x@example.com"), ErrUserNotFound)
}
