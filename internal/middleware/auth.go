package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/constants"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/logging"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/repository"
	"gorm.io/gorm"
)

// LoginURL is where anonymous users are sent by RequireAuth
const LoginURL = "/login"

// LoadCurrentUser resolves the session user, if any, and stores it in the context.
// Sessions pointing at deleted users are cleared.
func LoadCurrentUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := sessionUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			c.Next()
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.InternalError(c, err)
				c.Abort()
				return
			}
			session.Clear()
			_ = session.Save()
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			c.Redirect(http.StatusFound, LoginURL)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return sessionUserID(userID)
}

// GetCurrentUser retrieves the user loaded by LoadCurrentUser
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentActor returns the permission actor of the request
func CurrentActor(c *gin.Context) permissions.Actor {
	if id, ok := GetUserID(c); ok {
		return permissions.Actor{ID: id}
	}
	return permissions.Anonymous
}

// Login stores the user in the session
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	return session.Save()
}

// Logout clears the session
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

func sessionUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, id != 0
	case uint:
		return uint64(id), id != 0
	case int:
		if id <= 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id <= 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
