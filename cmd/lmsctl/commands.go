package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsdevblog/lms-backend/internal/session"
	"github.com/fsdevblog/lms-backend/internal/transport/lmsclient"
)

var errUsage = errors.New("usage: lmsctl <register|login|logout|me|update|forgot-password|reset-password|change-password|status> [flags]")

// execute выполняет подкоманду args[0] над сессией.
func execute(ctx context.Context, sess *session.Session, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)

	switch args[0] {
	case "register":
		fullName := fs.String("name", "", "Full name")
		email := fs.String("email", "", "Email")
		password := fs.String("password", "", "Password")
		avatarPath := fs.String("avatar", "", "Path to avatar image")
		if err := fs.Parse(args[1:]); err != nil {
			return err //nolint:wrapcheck
		}

		avatar, closeAvatar, err := openAvatar(*avatarPath)
		if err != nil {
			return err
		}
		defer closeAvatar()

		_, err = sess.CreateAccount(ctx, session.SignupForm{
			FullName: *fullName,
			Email:    *email,
			Password: *password,
			Avatar:   avatar,
		})
		return err //nolint:wrapcheck

	case "login":
		email := fs.String("email", "", "Email")
		password := fs.String("password", "", "Password")
		if err := fs.Parse(args[1:]); err != nil {
			return err //nolint:wrapcheck
		}
		_, err := sess.Login(ctx, session.Credentials{Email: *email, Password: *password})
		return err //nolint:wrapcheck

	case "logout":
		return sess.Logout(ctx) //nolint:wrapcheck

	case "me":
		if _, err := sess.GetUserProfile(ctx); err != nil {
			return err //nolint:wrapcheck
		}
		return printState(out, sess.State())

	case "update":
		fullName := fs.String("name", "", "New full name")
		avatarPath := fs.String("avatar", "", "Path to new avatar image")
		if err := fs.Parse(args[1:]); err != nil {
			return err //nolint:wrapcheck
		}

		avatar, closeAvatar, err := openAvatar(*avatarPath)
		if err != nil {
			return err
		}
		defer closeAvatar()

		if err = sess.UpdateProfile(ctx, session.ProfileForm{FullName: *fullName, Avatar: avatar}); err != nil {
			return err //nolint:wrapcheck
		}
		// профиль в сессии обновляется только загрузкой с сервера.
		_, err = sess.GetUserProfile(ctx)
		return err //nolint:wrapcheck

	case "forgot-password":
		email := fs.String("email", "", "Email")
		if err := fs.Parse(args[1:]); err != nil {
			return err //nolint:wrapcheck
		}
		return sess.ForgetPassword(ctx, *email) //nolint:wrapcheck

	case "reset-password":
		token := fs.String("token", "", "Reset token from the email link")
		password := fs.String("password", "", "New password")
		if err := fs.Parse(args[1:]); err != nil {
			return err //nolint:wrapcheck
		}
		return sess.ResetPassword(ctx, *token, *password) //nolint:wrapcheck

	case "change-password":
		oldPassword := fs.String("old", "", "Current password")
		newPassword := fs.String("new", "", "New password")
		if err := fs.Parse(args[1:]); err != nil {
			return err //nolint:wrapcheck
		}
		return sess.ChangePassword(ctx, *oldPassword, *newPassword) //nolint:wrapcheck

	case "status":
		return printState(out, sess.State())

	default:
		return errUsage
	}
}

func printState(out io.Writer, state session.State) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"isLoggedIn": state.IsLoggedIn,
		"role":       state.Role,
		"data":       state.Data,
	}); err != nil {
		return fmt.Errorf("print state: %s", err.Error())
	}
	return nil
}

// openAvatar открывает файл аватара. Пустой путь - без аватара.
func openAvatar(path string) (*lmsclient.Avatar, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open avatar: %s", err.Error())
	}
	return &lmsclient.Avatar{Filename: filepath.Base(path), Content: f}, func() { _ = f.Close() }, nil
}
