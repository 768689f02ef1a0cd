// Package validation правила валидации, общие для сервера и клиента.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	PasswordTag = "lms_password"

	passwordMinLen = 6
	passwordMaxLen = 16

	passwordSpecials = "!@#$%^&*"
)

// IsPassword проверяет что пароль длиной 6-16 символов состоит из латиницы, цифр и символов !@#$%^&*
// и содержит хотя бы одну цифру и один спецсимвол.
func IsPassword(password string) bool {
	if n := utf8.RuneCountInString(password); n < passwordMinLen || n > passwordMaxLen {
		return false
	}

	var hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		default:
			return false
		}
	}
	return hasDigit && hasSpecial
}

func validatePassword(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return IsPassword(str)
}

// Register регистрирует кастомные правила в валидаторе.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(PasswordTag, validatePassword); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
