package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating the profile fails inside the signup transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
	// ErrUpdateUser is returned when saving the account fields fails inside the profile transaction.
	ErrUpdateUser = errors.New("user repository: update user failed")
	// ErrUpdateProfile is returned when saving the profile fields fails inside the profile transaction.
	ErrUpdateProfile = errors.New("user repository: update profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfile creates a user and the default profile atomically.
func (r *GormUserRepository) CreateWithProfile(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		profile, err := ensureProfile(tx, user.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfile, err)
		}
		user.Profile = profile
		return nil
	})
}

// EnsureProfile returns the profile of a user, creating the default one if missing.
func (r *GormUserRepository) EnsureProfile(userID uint64) (*models.UserProfile, error) {
	return ensureProfile(r.db, userID)
}

// ensureProfile relies on the unique index on user_profiles.user_id so calling
// it again for the same user never creates a second row.
func ensureProfile(db *gorm.DB, userID uint64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := db.
		Where(models.UserProfile{UserID: userID}).
		Attrs(models.UserProfile{Avatar: constants.DefaultAvatar}).
		FirstOrCreate(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether another user already uses username
func (r *GormUserRepository) UsernameTaken(username string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindProfile finds the profile of a user
func (r *GormUserRepository) FindProfile(userID uint64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateWithProfile saves the account fields first, then the profile, atomically.
func (r *GormUserRepository) UpdateWithProfile(user *models.User, profile *models.UserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).
			Select("username", "first_name", "last_name", "updated_at").
			Updates(map[string]interface{}{
				"username":   user.Username,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
			}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateUser, err)
		}

		if err := tx.Model(profile).
			Select("avatar", "description", "location", "links", "updated_at").
			Updates(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateProfile, err)
		}
		return nil
	})
}

// UpdatePassword saves a new password hash
func (r *GormUserRepository) UpdatePassword(userID uint64, passwordHash string) error {
	return r.db.Model(&models.User{ID: userID}).Update("password_hash", passwordHash).Error
}

// UpdateEmail saves a new email
func (r *GormUserRepository) UpdateEmail(userID uint64, email string) error {
	return r.db.Model(&models.User{ID: userID}).Update("email", email).Error
}

// List returns all users ordered by ID
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user with the profile and all authored content in a transaction
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ownedQuestions := tx.Model(&models.Question{}).Select("id").Where("owner_id = ?", id)

		// Answers written by anyone under the user's questions, then the user's own answers
		if err := tx.Where("question_id IN (?)", ownedQuestions).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM question_tags WHERE question_id IN (?)", ownedQuestions).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
