package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// RequestOptions накапливает то, что нужно добавить к тестовому запросу.
type RequestOptions struct {
	header  http.Header
	cookies []*http.Cookie
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

// MakeRequest прогоняет запрос через роутер и возвращает записанный ответ.
// Ошибка зарезервирована под опции, которые могут не собрать запрос.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) (*http.Response, error) {
	options := RequestOptions{header: make(http.Header)}
	for _, opt := range opts {
		opt(&options)
	}

	request := httptest.NewRequest(args.Method, args.URL, args.Body)
	for name, values := range options.header {
		for _, v := range values {
			request.Header.Add(name, v)
		}
	}
	for _, cookie := range options.cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)

	return recorder.Result(), nil
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		o.header.Set(name, value)
	}
}

// WithJSON помечает тело запроса как application/json.
func WithJSON() func(*RequestOptions) {
	return WithHeader("Content-Type", "application/json")
}

// WithAccept задает формат ответа, который ожидает клиент.
func WithAccept(mime string) func(*RequestOptions) {
	return WithHeader("Accept", mime)
}

func WithBearer(token string) func(*RequestOptions) {
	return WithHeader("Authorization", "Bearer "+token)
}

func WithCookies(c []*http.Cookie) func(*RequestOptions) {
	return func(o *RequestOptions) {
		o.cookies = append(o.cookies, c...)
	}
}
