// Package session хранит состояние авторизации клиента и меняет его только по завершении серверных вызовов.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fsdevblog/lms-backend/internal/transport/lmsclient"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DefaultRequestTimeout = 10 * time.Second

var (
	// ErrInvalidForm форма не прошла проверку, запрос не отправлялся.
	ErrInvalidForm = errors.New("invalid form")
	// ErrSuperseded результат вызова отброшен, так как после него была начата более новая смена состояния.
	ErrSuperseded = errors.New("superseded by a newer session change")
)

// Сообщения прогресса и сообщения по умолчанию, если сервер не прислал свое.
const (
	loadingSignup         = "Creating your account..."
	loadingLogin          = "Authenticating..."
	loadingLogout         = "Logging out..."
	loadingUpdateProfile  = "Updating profile..."
	loadingForgotPassword = "Sending reset link..."
	loadingChangePassword = "Changing password..."
	loadingResetPassword  = "Resetting password..."

	fallbackSignup         = "Signup failed"
	fallbackLogin          = "Login failed"
	fallbackLogout         = "Logout failed"
	fallbackProfile        = "Failed to fetch user data"
	fallbackUpdateProfile  = "Profile update failed"
	fallbackForgotPassword = "Error during password reset"
	fallbackChangePassword = "Password change failed"
	fallbackResetPassword  = "Password reset failed"
)

// Ключи дедупликации одновременных одинаковых вызовов.
const (
	flightLogin    = "login:"
	flightRegister = "register:"
	flightMe       = "me"
	flightLogout   = "logout"
)

type Option func(*Session)

// WithRequestTimeout таймаут каждого сетевого вызова.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.requestTimeout = d
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Session) {
		s.l = l.WithField("component", "session")
	}
}

// Session состояние авторизации клиента поверх API и Store.
//
// Смены состояния (регистрация, вход, выход) берут новое поколение, загрузка профиля запоминает текущее.
// Результат вызова применяется, только если его поколение все еще последнее, иначе возвращается ErrSuperseded.
type Session struct {
	api            API
	store          Store
	notifier       Notifier
	validate       *validator.Validate
	requestTimeout time.Duration
	l              *logrus.Entry

	flight singleflight.Group

	mu         sync.Mutex
	state      State
	token      string
	generation uint64
}

// New загружает состояние из store и передает сохраненный токен в api.
func New(ctx context.Context, api API, store Store, notifier Notifier, opts ...Option) (*Session, error) {
	v, vErr := newValidator()
	if vErr != nil {
		return nil, vErr
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Session{
		api:            api,
		store:          store,
		notifier:       notifier,
		validate:       v,
		requestTimeout: DefaultRequestTimeout,
		l:              logrus.NewEntry(discard),
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	for _, opt := range opts {
		opt(s)
	}

	values, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	s.state, s.token = fromValues(values)
	s.api.SetToken(s.token)
	return s, nil
}

// State копия текущего состояния.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsLoggedIn
}

func (s *Session) Close() error {
	return s.store.Close() //nolint:wrapcheck
}

// CreateAccount проверяет форму и регистрирует аккаунт. Возвращает юзера из ответа сервера.
func (s *Session) CreateAccount(ctx context.Context, form SignupForm) (map[string]any, error) {
	if msg := signupViolation(s.validate, form); msg != "" {
		s.notifier.Error(msg)
		return nil, ErrInvalidForm
	}

	v, err, _ := s.flight.Do(flightRegister+form.Email, func() (any, error) {
		gen := s.begin()
		s.notifier.Loading(loadingSignup)

		env, err := s.call(ctx, func(ctx context.Context) (*lmsclient.Envelope, error) {
			return s.api.Register(ctx, lmsclient.RegisterForm{
				FullName: form.FullName,
				Email:    form.Email,
				Password: form.Password,
				Avatar:   form.Avatar,
			})
		})
		if err != nil {
			s.fail(err, fallbackSignup)
			return nil, fmt.Errorf("create account: %w", err)
		}
		return s.signIn(ctx, gen, env)
	})
	return userResult(v, err)
}

// Login входит по паре email/пароль. Возвращает юзера из ответа сервера.
func (s *Session) Login(ctx context.Context, creds Credentials) (map[string]any, error) {
	v, err, _ := s.flight.Do(flightLogin+creds.Email, func() (any, error) {
		gen := s.begin()
		s.notifier.Loading(loadingLogin)

		env, err := s.call(ctx, func(ctx context.Context) (*lmsclient.Envelope, error) {
			return s.api.Login(ctx, creds.Email, creds.Password)
		})
		if err != nil {
			s.fail(err, fallbackLogin)
			return nil, fmt.Errorf("login: %w", err)
		}
		return s.signIn(ctx, gen, env)
	})
	return userResult(v, err)
}

// Logout выходит из аккаунта. Состояние и хранилище очищаются и при ошибке сервера.
func (s *Session) Logout(ctx context.Context) error {
	_, err, _ := s.flight.Do(flightLogout, func() (any, error) {
		gen := s.begin()
		s.notifier.Loading(loadingLogout)

		env, callErr := s.call(ctx, s.api.Logout)
		if callErr != nil {
			s.fail(callErr, fallbackLogout)
			callErr = fmt.Errorf("logout: %w", callErr)
		}

		// очищаем даже если контекст вызывающего уже отменен.
		if commitErr := s.commit(context.WithoutCancel(ctx), gen, loggedOut(), ""); commitErr != nil {
			return nil, errors.Join(callErr, fmt.Errorf("logout: %w", commitErr))
		}
		if callErr != nil {
			return nil, callErr
		}
		s.notifier.Success(env.Message)
		return nil, nil //nolint:nilnil
	})
	return err //nolint:wrapcheck
}

// GetUserProfile обновляет данные юзера с сервера. Если сервер не вернул юзера, состояние не меняется.
func (s *Session) GetUserProfile(ctx context.Context) (map[string]any, error) {
	v, err, _ := s.flight.Do(flightMe, func() (any, error) {
		gen := s.currentGeneration()

		env, err := s.call(ctx, s.api.Me)
		if err != nil {
			s.fail(err, fallbackProfile)
			return nil, fmt.Errorf("get user profile: %w", err)
		}
		if len(env.User) == 0 {
			return nil, nil //nolint:nilnil
		}

		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if commitErr := s.commit(ctx, gen, fromUser(env.User), token); commitErr != nil {
			return nil, fmt.Errorf("get user profile: %w", commitErr)
		}
		return env.User, nil
	})
	return userResult(v, err)
}

// UpdateProfile отправляет изменения профиля. Локальное состояние не меняется, актуальные данные
// подтягиваются через GetUserProfile.
func (s *Session) UpdateProfile(ctx context.Context, form ProfileForm) error {
	return s.notifyOnly(ctx, loadingUpdateProfile, fallbackUpdateProfile,
		func(ctx context.Context) (*lmsclient.Envelope, error) {
			return s.api.UpdateProfile(ctx, lmsclient.ProfileForm{FullName: form.FullName, Avatar: form.Avatar})
		})
}

func (s *Session) ForgetPassword(ctx context.Context, email string) error {
	return s.notifyOnly(ctx, loadingForgotPassword, fallbackForgotPassword,
		func(ctx context.Context) (*lmsclient.Envelope, error) {
			return s.api.ForgotPassword(ctx, email)
		})
}

func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return s.notifyOnly(ctx, loadingChangePassword, fallbackChangePassword,
		func(ctx context.Context) (*lmsclient.Envelope, error) {
			return s.api.ChangePassword(ctx, oldPassword, newPassword)
		})
}

func (s *Session) ResetPassword(ctx context.Context, resetToken, password string) error {
	return s.notifyOnly(ctx, loadingResetPassword, fallbackResetPassword,
		func(ctx context.Context) (*lmsclient.Envelope, error) {
			return s.api.ResetPassword(ctx, resetToken, password)
		})
}

// signIn применяет юзера из ответа сервера как вход в аккаунт.
func (s *Session) signIn(ctx context.Context, gen uint64, env *lmsclient.Envelope) (any, error) {
	if len(env.User) == 0 {
		s.notifier.Success(env.Message)
		return nil, nil //nolint:nilnil
	}
	if err := s.commit(ctx, gen, fromUser(env.User), env.Token); err != nil {
		return nil, err
	}
	s.notifier.Success(env.Message)
	return env.User, nil
}

func (s *Session) notifyOnly(
	ctx context.Context,
	loading, fallback string,
	fn func(context.Context) (*lmsclient.Envelope, error),
) error {
	s.notifier.Loading(loading)
	env, err := s.call(ctx, fn)
	if err != nil {
		s.fail(err, fallback)
		return err
	}
	s.notifier.Success(env.Message)
	return nil
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Session) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// commit сохраняет next в хранилище и в памяти, если поколение gen последнее.
func (s *Session) commit(ctx context.Context, gen uint64, next State, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.l.WithFields(logrus.Fields{"generation": gen, "latest": s.generation}).Debug("stale completion dropped")
		return ErrSuperseded
	}

	var storeErr error
	if next.IsLoggedIn {
		values, err := toValues(next, token)
		if err != nil {
			return fmt.Errorf("encode session: %s", err.Error())
		}
		storeErr = s.store.Save(ctx, values)
	} else {
		storeErr = s.store.Clear(ctx)
		token = ""
	}

	// выход отражается в памяти даже если хранилище не удалось очистить.
	if storeErr != nil && next.IsLoggedIn {
		return fmt.Errorf("persist session: %w", storeErr)
	}
	s.state = next
	s.token = token
	s.api.SetToken(token)
	if storeErr != nil {
		return fmt.Errorf("persist session: %w", storeErr)
	}
	return nil
}

func (s *Session) call(
	ctx context.Context,
	fn func(context.Context) (*lmsclient.Envelope, error),
) (*lmsclient.Envelope, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	return fn(callCtx)
}

// fail уведомляет об ошибке сообщением сервера, либо fallback если сервер его не прислал.
func (s *Session) fail(err error, fallback string) {
	msg := fallback
	var respErr *lmsclient.ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		msg = respErr.Message
	}
	s.l.WithError(err).Debug(fallback)
	s.notifier.Error(msg)
}

func userResult(v any, err error) (map[string]any, error) {
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	user, _ := v.(map[string]any)
	return user, nil
}
