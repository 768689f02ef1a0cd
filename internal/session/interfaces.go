package session

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/lms-backend/internal/transport/lmsclient"
)

// API серверные операции, которые использует сессия. Реализуется lmsclient.Client.
type API interface {
	Register(ctx context.Context, form lmsclient.RegisterForm) (*lmsclient.Envelope, error)
	Login(ctx context.Context, email, password string) (*lmsclient.Envelope, error)
	Logout(ctx context.Context) (*lmsclient.Envelope, error)
	Me(ctx context.Context) (*lmsclient.Envelope, error)
	UpdateProfile(ctx context.Context, form lmsclient.ProfileForm) (*lmsclient.Envelope, error)
	ForgotPassword(ctx context.Context, email string) (*lmsclient.Envelope, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (*lmsclient.Envelope, error)
	ResetPassword(ctx context.Context, resetToken, password string) (*lmsclient.Envelope, error)
	SetToken(token string)
}

// Store долговременное хранилище ключей сессии. Save всегда перезаписывает набор ключей целиком.
type Store interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
	Close() error
}

// Notifier получает уведомления о ходе операций.
type Notifier interface {
	Loading(msg string)
	Success(msg string)
	Error(msg string)
}
