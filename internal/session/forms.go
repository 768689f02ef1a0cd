package session

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/lms-backend/internal/transport/lmsclient"
	"github.com/fsdevblog/lms-backend/internal/validation"
	"github.com/go-playground/validator/v10"
)

const (
	msgFillAllDetails = "Please fill all the details (except avatar for now)"
	msgShortName      = "Name should be at least 5 characters"
	msgInvalidEmail   = "Invalid email id"
	msgWeakPassword   = "Password should be 6-16 characters long with at least a number and special character"
)

// SignupForm форма регистрации. Avatar необязателен.
type SignupForm struct {
	FullName string            `validate:"required,min=5"`
	Email    string            `validate:"required,email"`
	Password string            `validate:"required,lms_password"`
	Avatar   *lmsclient.Avatar `validate:"-"`
}

type Credentials struct {
	Email    string
	Password string
}

type ProfileForm struct {
	FullName string
	Avatar   *lmsclient.Avatar
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := validation.Register(v); err != nil {
		return nil, fmt.Errorf("session validator: %w", err)
	}
	return v, nil
}

// signupViolation возвращает сообщение о первом нарушенном правиле формы или пустую строку.
// Порядок проверок: незаполненные поля, имя, email, пароль.
func signupViolation(v *validator.Validate, form SignupForm) string {
	err := v.Struct(form)
	if err == nil {
		return ""
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return msgFillAllDetails
	}

	failed := make(map[string]string, len(valErrs))
	for _, fe := range valErrs {
		if fe.Tag() == "required" {
			return msgFillAllDetails
		}
		failed[fe.Field()] = fe.Tag()
	}

	switch {
	case failed["FullName"] != "":
		return msgShortName
	case failed["Email"] != "":
		return msgInvalidEmail
	default:
		return msgWeakPassword
	}
}
