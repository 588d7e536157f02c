package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SignupForm is the account creation form. Bio is optional.
type SignupForm struct {
	Name     string `validate:"required"`
	Role     string `validate:"omitempty,oneof=buyer artist curator"`
	Address  string `validate:"required"`
	Phone    string `validate:"required"`
	Bio      string
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginForm is the credentials form.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// UploadForm is the Studio publishing form. Image is optional raw file
// content.
type UploadForm struct {
	Title    string `validate:"required"`
	Price    string `validate:"required"`
	Category string `validate:"omitempty,oneof=Digital Painting Sculpture"`
	Image    []byte
}

// ProfileForm carries the profile fields to change. Nil fields are kept.
type ProfileForm struct {
	Name    *string
	Address *string
	Phone   *string
	Bio     *string
}

type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

// Validate joins every field failure into one readable error.
func (fv *formValidator) Validate(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
