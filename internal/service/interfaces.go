package service

import (
	"context"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/internal/transport/paygate"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, args repoargs.UpdateUser) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, encryptedPassword string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, args repoargs.CreatePasswordReset) (*domain.PasswordReset, error)
	FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.PasswordReset, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time, limit uint) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, args repoargs.CreateCourse) (*domain.Course, error)
	FindByID(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Delete(ctx context.Context, id int64) error
}

// OrderGateway платежный шлюз, см. paygate.MockGateway.
type OrderGateway interface {
	CreateOrder(ctx context.Context, p paygate.OrderParams) (*paygate.Order, error)
	NewReceipt() string
}

// Mailer доставляет пользователю ссылку на сброс пароля.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email string, resetURL string) error
}
