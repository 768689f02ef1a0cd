package repoargs

import (
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
)

type CreateUser struct {
	FullName  string
	Email     string
	Password  string
	AvatarURL string
	Role      domain.RoleType
}

// UpdateUser nil поля не изменяются.
type UpdateUser struct {
	FullName  *string
	AvatarURL *string
}

type CreatePasswordReset struct {
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
}
