package api

import (
	"errors"
	"net/http"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// abortWithError прерывает обработку запроса. Тело ответа формирует middlewares.Errors.
func abortWithError(c *gin.Context, code int, err error, errType gin.ErrorType) {
	c.Status(code)
	_ = c.Error(err).SetType(errType)
	c.Abort()
}

// abortWithBindError переводит ошибку биндинга в ответ: не заполненные обязательные поля - 400,
// прочие ошибки валидации - 422.
func abortWithBindError(c *gin.Context, bindErr error) {
	var valErrs validator.ValidationErrors
	if !errors.As(bindErr, &valErrs) || len(valErrs) == 0 {
		abortWithError(c, http.StatusBadRequest, errors.New("Invalid request body"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}

	fe := valErrs[0]
	if fe.Tag() == "required" {
		abortWithError(c, http.StatusBadRequest, errors.New("All fields are required"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}
	abortWithError(c, http.StatusUnprocessableEntity,
		errors.New("Invalid "+lowerFirst(fe.Field())), gin.ErrorTypePublic) //nolint:staticcheck
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

type UserResponse struct {
	ID        int64           `json:"id"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	AvatarURL string          `json:"avatarUrl"`
	Role      domain.RoleType `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type CourseResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	CreatedBy        string    `json:"createdBy"`
	NumberOfLectures int       `json:"numberOfLectures"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func newCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		Category:         course.Category,
		CreatedBy:        course.CreatedBy,
		NumberOfLectures: course.NumberOfLectures,
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}
}
