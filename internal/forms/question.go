package forms

import (
	"fmt"
	"strings"

	"github.com/yukikurage/qa-forum/internal/constants"
)

// QuestionForm backs both the ask and the edit pages.
type QuestionForm struct {
	Title string `form:"title" validate:"required,max=200"`
	Text  string `form:"text" validate:"required"`
	Tags  string `form:"tags"`
}

// Validate trims the input and checks every field, including each tag name.
func (f *QuestionForm) Validate() FieldErrors {
	f.Title = strings.TrimSpace(f.Title)
	f.Text = strings.TrimSpace(f.Text)

	errs := check(f)
	names, _ := ParseTags(f.Tags)
	for _, name := range names {
		if len([]rune(name)) > constants.MaxTagLength {
			errs.Add("tags", fmt.Sprintf("Tag %q is longer than %d characters.", name, constants.MaxTagLength))
		}
	}
	return errs
}

// TagNames returns the parsed tag names; see ParseTags.
func (f *QuestionForm) TagNames() ([]string, bool) {
	return ParseTags(f.Tags)
}

// AnswerForm carries the only user-editable answer field.
type AnswerForm struct {
	Text string `form:"text" validate:"required"`
}

func (f *AnswerForm) Validate() FieldErrors {
	f.Text = strings.TrimSpace(f.Text)
	return check(f)
}
