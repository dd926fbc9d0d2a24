package forms

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/yukikurage/qa-forum/internal/constants"
)

// UserUpdateForm edits the account half of the profile page.
type UserUpdateForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
}

func (f *UserUpdateForm) Validate() FieldErrors {
	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	return check(f)
}

// ProfileUpdateForm edits the profile half of the profile page. All fields are optional.
type ProfileUpdateForm struct {
	Description string                `form:"description"`
	Location    string                `form:"location" validate:"max=100"`
	Links       string                `form:"links"`
	ClearAvatar bool                  `form:"avatar-clear"`
	Avatar      *multipart.FileHeader `form:"-" validate:"-"`
}

var avatarExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {},
}

func (f *ProfileUpdateForm) Validate() FieldErrors {
	f.Description = strings.TrimSpace(f.Description)
	f.Location = strings.TrimSpace(f.Location)

	errs := check(f)

	links := f.LinkList()
	if len(links) > constants.MaxProfileLinks {
		errs.Add("links", fmt.Sprintf("List contains %d items, it should contain no more than %d.", len(links), constants.MaxProfileLinks))
	}
	for i, link := range links {
		if len([]rune(link)) > constants.MaxLinkLength {
			errs.Add("links", fmt.Sprintf("Item %d in the list did not validate: ensure this value has at most %d characters.", i+1, constants.MaxLinkLength))
		}
	}

	if f.Avatar != nil {
		if f.ClearAvatar {
			errs.Add("avatar", "Please either submit a file or check the clear checkbox, not both.")
		}
		if f.Avatar.Size > constants.MaxAvatarUploadSize {
			errs.Add("avatar", "The uploaded image is too large.")
		}
		if _, ok := avatarExtensions[AvatarExtension(f.Avatar.Filename)]; !ok {
			errs.Add("avatar", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		}
	}
	return errs
}

// DescriptionValue returns nil for an empty description.
func (f *ProfileUpdateForm) DescriptionValue() *string {
	return optional(f.Description)
}

// LocationValue returns nil for an empty location.
func (f *ProfileUpdateForm) LocationValue() *string {
	return optional(f.Location)
}

// LinkList splits the comma separated links, dropping blanks. An empty field yields nil.
func (f *ProfileUpdateForm) LinkList() []string {
	if strings.TrimSpace(f.Links) == "" {
		return nil
	}
	var links []string
	for _, segment := range strings.Split(f.Links, ",") {
		if link := strings.TrimSpace(segment); link != "" {
			links = append(links, link)
		}
	}
	return links
}

// AvatarExtension returns the lower-cased extension of filename without the dot.
func AvatarExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
