package i18n

import (
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 100
)

// validatePassword: 8-100 символов, хотя бы одна буква и одна цифра.
func validatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword проверяет правило "password" вне validator.
func IsStrongPassword(password string) bool {
	n := len([]rune(password))
	if n < passwordMinLen || n > passwordMaxLen {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// EchoValidator подключает validator к echo (e.Validator).
type EchoValidator struct {
	validate *validator.Validate
}

func NewEchoValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validate: v}
}

func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.validate.Struct(i)
}

var _ echo.Validator = (*EchoValidator)(nil)
