package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/internal/service/tokens"
	"github.com/fsdevblog/lms-backend/pkg/uow"
	"github.com/google/uuid"
)

const (
	DefaultJWTTokenExpire = 7 * 24 * time.Hour
	PasswordResetExpire   = 15 * time.Minute
	ResetPasswordPath     = "/reset-password/"
)

type UserServiceConfig struct {
	JWTSecret []byte
	JWTExpire time.Duration
	// ResetURLBase адрес фронтенда, к нему добавляется ResetPasswordPath и токен.
	ResetURLBase string
}

type UserService struct {
	uow      uow.UOW
	userRepo UserRepository
	psswd    PasswordHasher
	mailer   Mailer
	conf     UserServiceConfig
	now      func() time.Time
}

func NewUserService(u uow.UOW, psswd PasswordHasher, mailer Mailer, conf UserServiceConfig) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, fmt.Errorf("new user service: %w", userRepoErr)
	}
	if conf.JWTExpire <= 0 {
		conf.JWTExpire = DefaultJWTTokenExpire
	}
	return &UserService{
		uow:      u,
		userRepo: userRepo,
		psswd:    psswd,
		mailer:   mailer,
		conf:     conf,
		now:      time.Now,
	}, nil
}

type RegisterUserArgs struct {
	FullName  string
	Email     string
	Password  string
	AvatarURL string
}

// Register создает юзера с ролью domain.RoleUser и выпускает для него jwt токен. Для занятого email
// возвращает domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	password, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}

	user, createErr := s.userRepo.CreateUser(ctx, repoargs.CreateUser{
		FullName:  args.FullName,
		Email:     args.Email,
		Password:  password,
		AvatarURL: args.AvatarURL,
		Role:      domain.RoleUser,
	})
	if createErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", createErr)
	}

	token, tokenErr := s.issueToken(user)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", tokenErr)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Email    string
	Password string
}

// Login аутентифицирует юзера по паре email/пароль. Возвращает domain.ErrRecordNotFound для неизвестного
// email и domain.ErrPasswordMissMatch для неверного пароля.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindUserByEmail(ctx, args.Email)
	if findErr != nil {
		return nil, "", fmt.Errorf("login user: %w", findErr)
	}

	if !s.psswd.ComparePassword(args.Password, user.Password) {
		return nil, "", fmt.Errorf("login user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := s.issueToken(user)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("login user: %w", tokenErr)
	}
	return user, token, nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user profile: %w", err)
	}
	return user, nil
}

type UpdateProfileArgs struct {
	FullName  *string
	AvatarURL *string
}

// UpdateProfile обновляет переданные поля профиля и возвращает обновленного юзера.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, args UpdateProfileArgs) (*domain.User, error) {
	user, err := s.userRepo.UpdateUser(ctx, userID, repoargs.UpdateUser{
		FullName:  args.FullName,
		AvatarURL: args.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword меняет пароль, если oldPassword совпадает с текущим. Иначе domain.ErrPasswordMissMatch.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, findErr := s.userRepo.FindUserByID(ctx, userID)
	if findErr != nil {
		return fmt.Errorf("change password: %w", findErr)
	}
	if !s.psswd.ComparePassword(oldPassword, user.Password) {
		return fmt.Errorf("change password: %w", domain.ErrPasswordMissMatch)
	}

	hash, hashErr := s.psswd.HashPassword(newPassword)
	if hashErr != nil {
		return fmt.Errorf("change password: %s", hashErr.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// ForgotPassword выпускает одноразовый токен сброса пароля (предыдущие токены юзера удаляются)
// и отправляет ссылку через Mailer. Для неизвестного email возвращает domain.ErrRecordNotFound.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, findErr := s.userRepo.FindUserByEmail(ctx, email)
	if findErr != nil {
		return fmt.Errorf("forgot password: %w", findErr)
	}

	resetToken := uuid.NewString()
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		resetRepo, repoErr := uow.GetAs[PasswordResetRepository](tx, uow.RepositoryName(repoargs.PasswordResetRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if err := resetRepo.DeleteByUserID(c, user.ID); err != nil {
			return err //nolint:wrapcheck
		}
		_, createErr := resetRepo.Create(c, repoargs.CreatePasswordReset{
			UserID:    user.ID,
			TokenHash: hashResetToken(resetToken),
			ExpiresAt: s.now().Add(PasswordResetExpire),
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("forgot password: %w", txErr)
	}

	resetURL := strings.TrimRight(s.conf.ResetURLBase, "/") + ResetPasswordPath + resetToken
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		return fmt.Errorf("forgot password: send mail: %w", err)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по токену сброса и гасит все токены юзера.
// Для неизвестного или просроченного токена возвращает domain.ErrTokenInvalid.
func (s *UserService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	hash, hashErr := s.psswd.HashPassword(newPassword)
	if hashErr != nil {
		return fmt.Errorf("reset password: %s", hashErr.Error())
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		resetRepo, repoErr := uow.GetAs[PasswordResetRepository](tx, uow.RepositoryName(repoargs.PasswordResetRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		reset, findErr := resetRepo.FindActiveByTokenHash(c, hashResetToken(resetToken), s.now())
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.ErrTokenInvalid
			}
			return findErr //nolint:wrapcheck
		}
		if err := userRepo.UpdatePassword(c, reset.UserID, hash); err != nil {
			return err //nolint:wrapcheck
		}
		return resetRepo.DeleteByUserID(c, reset.UserID) //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("reset password: %w", txErr)
	}
	return nil
}

// PurgeExpiredResets удаляет не более limit просроченных токенов сброса. Возвращает кол-во удаленных.
func (s *UserService) PurgeExpiredResets(ctx context.Context, limit uint) (int64, error) {
	resetRepo, repoErr := uow.GetRepositoryAs[PasswordResetRepository](
		s.uow,
		uow.RepositoryName(repoargs.PasswordResetRepoName),
	)
	if repoErr != nil {
		return 0, fmt.Errorf("purge expired resets: %w", repoErr)
	}
	deleted, err := resetRepo.DeleteExpired(ctx, s.now(), limit)
	if err != nil {
		return 0, fmt.Errorf("purge expired resets: %w", err)
	}
	return deleted, nil
}

func (s *UserService) issueToken(user *domain.User) (string, error) {
	return tokens.GenerateUserJWT(user.ID, string(user.Role), s.conf.JWTExpire, s.conf.JWTSecret) //nolint:wrapcheck
}

// hashResetToken в базе хранится только sha256 токена.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
