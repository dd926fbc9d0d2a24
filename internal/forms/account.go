package forms

import (
	"strings"
	"unicode"

	"github.com/yukikurage/qa-forum/internal/constants"
)

// RegisterForm creates an account. Username uniqueness is checked by the auth service.
type RegisterForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,max=254,email"`
	Password1 string `form:"password1" validate:"required"`
	Password2 string `form:"password2" validate:"required"`
}

func (f *RegisterForm) Validate() FieldErrors {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	errs := check(f)
	if !errs.Has("password1") && !errs.Has("password2") {
		validateNewPassword(errs, "password2", f.Password1, f.Password2)
	}
	return errs
}

// LoginForm authenticates an existing account.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Validate() FieldErrors {
	f.Username = strings.TrimSpace(f.Username)
	return check(f)
}

// PasswordChangeForm changes the password of the logged in user. The old
// password is verified by the auth service.
type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1" validate:"required"`
	NewPassword2 string `form:"new_password2" validate:"required"`
}

func (f *PasswordChangeForm) Validate() FieldErrors {
	errs := check(f)
	if !errs.Has("new_password1") && !errs.Has("new_password2") {
		validateNewPassword(errs, "new_password2", f.NewPassword1, f.NewPassword2)
	}
	return errs
}

// EmailChangeForm replaces the account email.
type EmailChangeForm struct {
	Email string `form:"email" validate:"required,max=254,email"`
}

// Validate rejects resubmitting the current address. Addresses used by other
// accounts are accepted.
func (f *EmailChangeForm) Validate(currentEmail string) FieldErrors {
	f.Email = strings.TrimSpace(f.Email)

	errs := check(f)
	if !errs.Has("email") && f.Email == currentEmail {
		errs.Add("email", "This is your current email.")
	}
	return errs
}

func validateNewPassword(errs FieldErrors, field, password, confirmation string) {
	if password != confirmation {
		errs.Add(field, "The two password fields didn't match.")
		return
	}
	if len(password) < constants.MinPasswordLength {
		errs.Add(field, "This password is too short. It must contain at least 8 characters.")
	}
	if isNumeric(password) {
		errs.Add(field, "This password is entirely numeric.")
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
