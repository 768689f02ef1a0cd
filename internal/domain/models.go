package domain

import (
	"time"
)

type RoleType string

const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	FullName  string
	Email     string
	Password  string
	AvatarURL string
	Role      RoleType
}

// PasswordReset одноразовый токен сброса пароля. Хранится только хеш токена.
type PasswordReset struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
}

type Course struct {
	ID               int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Title            string
	Description      string
	Category         string
	CreatedBy        string
	NumberOfLectures int
}
