package api

import (
	"errors"

	"github.com/fsdevblog/lms-backend/internal/validation"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators регистрирует кастомные правила в валидаторе gin.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validator registration: unexpected binding engine")
	}
	return validation.Register(v) //nolint:wrapcheck
}
