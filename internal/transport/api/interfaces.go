package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"mime/multipart"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/service"
	"github.com/fsdevblog/lms-backend/internal/transport/paygate"
	"github.com/shopspring/decimal"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, args service.UpdateProfileArgs) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type PaymentServicer interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*paygate.Order, error)
	CreateFixedOrder(ctx context.Context) (*paygate.Order, error)
}

type CourseServicer interface {
	List(ctx context.Context) ([]domain.Course, error)
	Get(ctx context.Context, id int64) (*domain.Course, error)
	Create(ctx context.Context, args service.CreateCourseArgs) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
}

// AvatarStorer хранилище аватаров, см. uploads.Storage.
type AvatarStorer interface {
	SaveAvatar(fh *multipart.FileHeader) (string, error)
	Remove(url string) error
}
