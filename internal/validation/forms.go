// Package validation binds submitted form values to typed inputs and
// surfaces field-level messages. Validators never persist anything;
// the caller decides what to do with a valid form.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/postline-dev/postline/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var slugRegexp = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// PostForm carries the raw submitted values of the post form so the
// template can re-render them next to any errors.
type PostForm struct {
	Text  string `validate:"required,max=200"`
	Group string // raw select value, empty or a group id
}

// ParsePostForm binds url-encoded (or multipart) form values.
func ParsePostForm(values url.Values) PostForm {
	return PostForm{
		Text:  values.Get("text"),
		Group: values.Get("group"),
	}
}

// Check validates the form fields and resolves the optional group id.
// Returns a ValidationError with per-field messages, never a partial result.
func (f *PostForm) Check() (groupId *int64, err error) {
	if err := validate.Struct(f); err != nil {
		return nil, fieldErrors(err, map[string]string{
			"Text": "text",
		})
	}
	if f.Group == "" {
		return nil, nil
	}
	id, convErr := strconv.ParseInt(f.Group, 10, 64)
	if convErr != nil {
		return nil, internal_errors.NewValidation("group", "select a valid group")
	}
	return &id, nil
}

type CommentForm struct {
	Text string `validate:"required,max=400"`
}

func ParseCommentForm(values url.Values) CommentForm {
	return CommentForm{Text: values.Get("text")}
}

func (f *CommentForm) Check() error {
	if err := validate.Struct(f); err != nil {
		return fieldErrors(err, map[string]string{"Text": "text"})
	}
	return nil
}

type SignupForm struct {
	Username string `validate:"required,min=3,max=30,alphanumunicode"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

func ParseSignupForm(values url.Values) SignupForm {
	return SignupForm{
		Username: values.Get("username"),
		Email:    values.Get("email"),
		Password: values.Get("password"),
	}
}

func (f *SignupForm) Check() error {
	if err := validate.Struct(f); err != nil {
		return fieldErrors(err, map[string]string{
			"Username": "username",
			"Email":    "email",
			"Password": "password",
		})
	}
	return nil
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func ParseLoginForm(values url.Values) LoginForm {
	return LoginForm{
		Username: values.Get("username"),
		Password: values.Get("password"),
	}
}

func (f *LoginForm) Check() error {
	if err := validate.Struct(f); err != nil {
		return fieldErrors(err, map[string]string{
			"Username": "username",
			"Password": "password",
		})
	}
	return nil
}

type GroupForm struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=50"`
	Description string `json:"description"`
}

func (f *GroupForm) Check() error {
	if err := validate.Struct(f); err != nil {
		return fieldErrors(err, map[string]string{
			"Title": "title",
			"Slug":  "slug",
		})
	}
	if !slugRegexp.MatchString(f.Slug) {
		return internal_errors.NewValidation("slug", "slug may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

// fieldErrors converts validator errors into a ValidationError keyed by
// the submitted field names.
func fieldErrors(err error, names map[string]string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, ok := names[fe.StructField()]
		if !ok {
			name = fe.StructField()
		}
		fields[name] = fieldMessage(fe)
	}
	return &internal_errors.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "alphanumunicode":
		return "only letters and digits are allowed"
	default:
		return "invalid value"
	}
}
