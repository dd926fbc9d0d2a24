package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidAvatar = errors.New("invalid avatar image")

// AvatarStore persists avatar files.
type AvatarStore interface {
	Save(userID uint64, filename string, content io.Reader) (string, error)
	Delete(name string) error
}

// ProfileService handles the profile page and account removal
type ProfileService struct {
	userRepo repository.UserRepository
	avatars  AvatarStore
	logger   *slog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepository, avatars AvatarStore) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		avatars:  avatars,
		logger:   slog.Default(),
	}
}

// Profile is a user together with its profile.
type Profile struct {
	User    *models.User
	Profile *models.UserProfile
}

// UserUpdate holds the validated account half of the profile form.
type UserUpdate struct {
	Username  string
	FirstName string
	LastName  string
}

// ProfileUpdate holds the validated profile half of the profile form. Avatar is
// nil when no new file was uploaded.
type ProfileUpdate struct {
	Description    *string
	Location       *string
	Links          []string
	ClearAvatar    bool
	AvatarFilename string
	Avatar         io.Reader
}

// Get returns a user and its profile. A missing profile is created on the fly.
func (s *ProfileService) Get(userID uint64) (*Profile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := s.userRepo.EnsureProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &Profile{User: user, Profile: profile}, nil
}

// Update saves both halves of the profile form in one transaction. A new
// avatar is written before the transaction and the replaced one is removed
// after it commits.
func (s *ProfileService) Update(userID uint64, userInput UserUpdate, profileInput ProfileUpdate) (*Profile, error) {
	current, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.UsernameTaken(userInput.Username, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	oldAvatar := current.Profile.Avatar
	newAvatar := oldAvatar
	switch {
	case profileInput.Avatar != nil:
		name, err := s.avatars.Save(userID, profileInput.AvatarFilename, profileInput.Avatar)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAvatar, err)
		}
		newAvatar = name
	case profileInput.ClearAvatar:
		newAvatar = constants.DefaultAvatar
	}

	user := current.User
	user.Username = userInput.Username
	user.FirstName = userInput.FirstName
	user.LastName = userInput.LastName

	profile := current.Profile
	profile.Avatar = newAvatar
	profile.Description = profileInput.Description
	profile.Location = profileInput.Location
	profile.Links = profileInput.Links

	if err := s.userRepo.UpdateWithProfile(user, profile); err != nil {
		if newAvatar != oldAvatar {
			s.removeAvatar(userID, newAvatar)
		}
		if errors.Is(err, repository.ErrUpdateUser) {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if newAvatar != oldAvatar {
		s.removeAvatar(userID, oldAvatar)
	}
	return &Profile{User: user, Profile: profile}, nil
}

// DeleteUser removes a user with the profile and all authored content, then
// the avatar file.
func (s *ProfileService) DeleteUser(userID uint64) error {
	profile, err := s.userRepo.FindProfile(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to find profile: %w", err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if profile != nil {
		s.removeAvatar(userID, profile.Avatar)
	}
	return nil
}

// ListUsers returns every user ordered by id.
func (s *ProfileService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// removeAvatar never fails the caller; the shared default is skipped by the store.
func (s *ProfileService) removeAvatar(userID uint64, name string) {
	if err := s.avatars.Delete(name); err != nil {
		s.logger.Warn("failed to delete avatar", "user_id", userID, "avatar", name, "error", err)
	}
}
