// Package lmsclient типизированный HTTP клиент к API пользователей.
package lmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	RouteRegister       = "user/register"
	RouteLogin          = "user/login"
	RouteLogout         = "user/logout"
	RouteMe             = "user/me"
	RouteUpdateProfile  = "user/update"
	RouteForgotPassword = "user/reset"
	RouteResetPassword  = "user/reset/"
	RouteChangePassword = "user/change-password"
)

// Envelope общий формат ответа сервера. Token заполняется из заголовка Authorization, если сервер его выдал.
type Envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    map[string]any `json:"user,omitempty"`
	Token   string         `json:"-"`
}

// Avatar файл аватара для multipart форм.
type Avatar struct {
	Filename string
	Content  io.Reader
}

type RegisterForm struct {
	FullName string
	Email    string
	Password string
	Avatar   *Avatar
}

type ProfileForm struct {
	FullName string
	Avatar   *Avatar
}

// Client HTTP клиент к API. Базовый адрес вида http://host:port/api/v1/. Безопасен для конкурентного использования.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/",
		httpClient: httpClient,
	}
}

// SetToken устанавливает bearer токен для последующих запросов. Пустая строка - запросы без авторизации.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Register(ctx context.Context, form RegisterForm) (*Envelope, error) {
	body, contentType, err := multipartBody(map[string]string{
		"fullName": form.FullName,
		"email":    form.Email,
		"password": form.Password,
	}, form.Avatar)
	if err != nil {
		return nil, errors.Wrap(err, "register")
	}
	return c.do(ctx, http.MethodPost, RouteRegister, body, contentType)
}

func (c *Client) Login(ctx context.Context, email, password string) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, RouteLogin, map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) Logout(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, RouteLogout, nil, "")
}

func (c *Client) Me(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, RouteMe, nil, "")
}

// UpdateProfile отправляет только заполненные поля формы.
func (c *Client) UpdateProfile(ctx context.Context, form ProfileForm) (*Envelope, error) {
	fields := make(map[string]string, 1)
	if form.FullName != "" {
		fields["fullName"] = form.FullName
	}
	body, contentType, err := multipartBody(fields, form.Avatar)
	if err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	return c.do(ctx, http.MethodPut, RouteUpdateProfile, body, contentType)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, RouteForgotPassword, map[string]string{"email": email})
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, RouteChangePassword, map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, RouteResetPassword+url.PathEscape(resetToken), map[string]string{
		"password": password,
	})
}

func (c *Client) doJSON(ctx context.Context, method, route string, payload any) (*Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}
	return c.do(ctx, method, route, bytes.NewReader(b), "application/json")
}

// do выполняет запрос и разбирает конверт ответа. При статусе отличном от 2xx возвращает *ResponseError.
//
//nolint:nonamedreturns
func (c *Client) do(
	ctx context.Context,
	method, route string,
	body io.Reader,
	contentType string,
) (envelope *Envelope, err error) {
	req, reqErr := http.NewRequestWithContext(ctx, method, c.baseURL+route, body)
	if reqErr != nil {
		return nil, errors.Wrap(reqErr, "create request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, errors.Wrap(doErr, "do request")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close response body")
		}
	}()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, errors.Wrap(readErr, "read response")
	}

	var env Envelope
	// тело ошибки может быть и не json (например, 404 на неизвестный маршрут).
	jsonErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := env.Message
		if jsonErr != nil {
			message = strings.TrimSpace(string(raw))
		}
		return nil, NewResponseError(resp.StatusCode, message)
	}
	if jsonErr != nil {
		return nil, errors.Wrap(jsonErr, "parse response")
	}

	if token, ok := strings.CutPrefix(resp.Header.Get("Authorization"), "Bearer "); ok {
		env.Token = token
	}
	return &env, nil
}

func multipartBody(fields map[string]string, avatar *Avatar) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", errors.Wrapf(err, "write field %s", k)
		}
	}
	if avatar != nil {
		part, err := w.CreateFormFile("avatar", avatar.Filename)
		if err != nil {
			return nil, "", errors.Wrap(err, "create avatar part")
		}
		if _, err = io.Copy(part, avatar.Content); err != nil {
			return nil, "", errors.Wrap(err, "copy avatar")
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}
	return &buf, w.FormDataContentType(), nil
}
