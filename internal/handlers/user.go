package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/dto"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/forms"
	"github.com/yukikurage/qa-forum/internal/middleware"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/services"
)

const (
	msgIncorrectPassword = "Your old password was entered incorrectly. Please enter it again."
	msgInvalidAvatar     = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgPasswordChanged   = "Password changed."
	msgEmailChanged      = "Email changed."
)

// UserHandler serves profile pages and account settings.
type UserHandler struct {
	profileService  *services.ProfileService
	authService     *services.AuthService
	questionService *services.QuestionService
	answerService   *services.AnswerService
}

func NewUserHandler(
	profileService *services.ProfileService,
	authService *services.AuthService,
	questionService *services.QuestionService,
	answerService *services.AnswerService,
) *UserHandler {
	return &UserHandler{
		profileService:  profileService,
		authService:     authService,
		questionService: questionService,
		answerService:   answerService,
	}
}

// Show renders a profile with the user's latest questions and answers
func (h *UserHandler) Show(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	userID := profile.User.ID

	questions, err := h.questionService.RecentByOwner(userID, constants.RecentActivityLimit)
	if err != nil {
		apperrors.InternalError(c, err)
		return
	}
	answers, err := h.answerService.RecentByOwner(userID, constants.RecentActivityLimit)
	if err != nil {
		apperrors.InternalError(c, err)
		return
	}

	render(c, http.StatusOK, "user.html", gin.H{
		"Title":     profile.User.Username,
		"Profile":   dto.ToProfileView(*profile.User, *profile.Profile),
		"IsOwner":   permissions.IsOwner(middleware.CurrentActor(c), userID),
		"Questions": dto.ToQuestionViews(questions),
		"Answers":   dto.ToAnswerViews(answers),
	})
}

// EditPage shows both profile forms filled with the current values
func (h *UserHandler) EditPage(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	view := dto.ToProfileView(*profile.User, *profile.Profile)
	userForm := forms.UserUpdateForm{
		Username:  view.User.Username,
		FirstName: view.FirstName,
		LastName:  view.LastName,
	}
	profileForm := forms.ProfileUpdateForm{
		Description: view.Description,
		Location:    view.Location,
		Links:       strings.Join(view.Links, ", "),
	}
	h.renderEdit(c, view.Avatar, userForm, profileForm, forms.FieldErrors{}, forms.FieldErrors{})
}

// Edit validates the account and profile forms independently and saves both
// only when both are valid.
func (h *UserHandler) Edit(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	userID := profile.User.ID

	var userForm forms.UserUpdateForm
	var profileForm forms.ProfileUpdateForm
	if err := c.ShouldBind(&userForm); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}
	if err := c.ShouldBind(&profileForm); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}
	avatar, err := uploadedFile(c, "avatar")
	if err != nil {
		apperrors.BadRequest(c, "Invalid file upload")
		return
	}
	profileForm.Avatar = avatar

	userErrs := userForm.Validate()
	profileErrs := profileForm.Validate()
	if userErrs.Any() || profileErrs.Any() {
		h.renderEdit(c, profile.Profile.Avatar, userForm, profileForm, userErrs, profileErrs)
		return
	}

	update := services.ProfileUpdate{
		Description: profileForm.DescriptionValue(),
		Location:    profileForm.LocationValue(),
		Links:       profileForm.LinkList(),
		ClearAvatar: profileForm.ClearAvatar,
	}
	if avatar != nil {
		f, err := avatar.Open()
		if err != nil {
			apperrors.BadRequest(c, "Invalid file upload")
			return
		}
		defer f.Close()
		update.Avatar = f
		update.AvatarFilename = avatar.Filename
	}

	_, err = h.profileService.Update(userID, services.UserUpdate{
		Username:  userForm.Username,
		FirstName: userForm.FirstName,
		LastName:  userForm.LastName,
	}, update)
	switch {
	case err == nil:
		redirectAfterPost(c, userURL(userID))
	case errors.Is(err, services.ErrUsernameTaken):
		userErrs.Add("username", msgUsernameTaken)
		h.renderEdit(c, profile.Profile.Avatar, userForm, profileForm, userErrs, profileErrs)
	case errors.Is(err, services.ErrInvalidAvatar):
		profileErrs.Add("avatar", msgInvalidAvatar)
		h.renderEdit(c, profile.Profile.Avatar, userForm, profileForm, userErrs, profileErrs)
	case errors.Is(err, services.ErrUserNotFound):
		apperrors.NotFound(c)
	default:
		apperrors.InternalError(c, err)
	}
}

func (h *UserHandler) renderEdit(c *gin.Context, avatar string, userForm forms.UserUpdateForm, profileForm forms.ProfileUpdateForm, userErrs, profileErrs forms.FieldErrors) {
	profileForm.Avatar = nil
	render(c, http.StatusOK, "user_edit.html", gin.H{
		"Title":         "Edit profile",
		"Avatar":        avatar,
		"UserForm":      userForm,
		"ProfileForm":   profileForm,
		"UserErrors":    userErrs,
		"ProfileErrors": profileErrs,
	})
}

// SettingsPage shows the password and email forms
func (h *UserHandler) SettingsPage(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	h.renderSettings(c, forms.EmailChangeForm{Email: profile.User.Email}, forms.FieldErrors{}, forms.FieldErrors{})
}

// Settings handles whichever of the two settings forms was submitted
func (h *UserHandler) Settings(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	user := profile.User
	emailForm := forms.EmailChangeForm{Email: user.Email}

	switch c.PostForm("action") {
	case "change_password":
		var form forms.PasswordChangeForm
		if err := c.ShouldBind(&form); err != nil {
			apperrors.BadRequest(c, "Invalid form submission")
			return
		}
		errs := form.Validate()
		if !errs.Any() {
			err := h.authService.ChangePassword(user.ID, form.OldPassword, form.NewPassword1)
			switch {
			case err == nil:
				flash(c, msgPasswordChanged)
				redirectAfterPost(c, userURL(user.ID)+"/settings")
				return
			case errors.Is(err, services.ErrIncorrectPassword):
				errs.Add("old_password", msgIncorrectPassword)
			default:
				apperrors.InternalError(c, err)
				return
			}
		}
		h.renderSettings(c, emailForm, errs, forms.FieldErrors{})

	case "change_email":
		var form forms.EmailChangeForm
		if err := c.ShouldBind(&form); err != nil {
			apperrors.BadRequest(c, "Invalid form submission")
			return
		}
		errs := form.Validate(user.Email)
		if errs.Any() {
			h.renderSettings(c, form, forms.FieldErrors{}, errs)
			return
		}
		if err := h.authService.ChangeEmail(user.ID, form.Email); err != nil {
			apperrors.InternalError(c, err)
			return
		}
		flash(c, msgEmailChanged)
		redirectAfterPost(c, userURL(user.ID)+"/settings")

	default:
		apperrors.BadRequest(c, "Unknown settings action")
	}
}

func (h *UserHandler) renderSettings(c *gin.Context, emailForm forms.EmailChangeForm, passwordErrs, emailErrs forms.FieldErrors) {
	render(c, http.StatusOK, "user_settings.html", gin.H{
		"Title":          "Account settings",
		"EmailForm":      emailForm,
		"PasswordErrors": passwordErrs,
		"EmailErrors":    emailErrs,
	})
}

func (h *UserHandler) loadProfile(c *gin.Context) (*services.Profile, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return nil, false
	}

	profile, err := h.profileService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apperrors.NotFound(c)
		} else {
			apperrors.InternalError(c, err)
		}
		return nil, false
	}
	return profile, true
}

// uploadedFile returns the named multipart file, or nil when none was sent.
func uploadedFile(c *gin.Context, name string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}
