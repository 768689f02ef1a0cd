package lmsclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	// requests запросы, которые получил тестовый сервер, по пути.
	requests map[string]*http.Request
	bodies   map[string][]byte
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.requests = make(map[string]*http.Request)
	s.bodies = make(map[string][]byte)

	mux := http.NewServeMux()
	record := func(r *http.Request) {
		body, err := io.ReadAll(r.Body)
		s.NoError(err)
		s.requests[r.URL.Path] = r
		s.bodies[r.URL.Path] = body
	}
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		s.NoError(json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("POST /api/v1/user/login", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var creds map[string]string
		s.NoError(json.Unmarshal(s.bodies[r.URL.Path], &creds))
		if creds["password"] != "Secret1!" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false, "message": "Email or Password does not match",
			})
			return
		}
		w.Header().Set("Authorization", "Bearer jwt-token")
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "User loggedin successfully",
			"user":    map[string]any{"id": 1, "email": creds["email"], "role": "USER"},
		})
	})
	mux.HandleFunc("POST /api/v1/user/register", func(w http.ResponseWriter, r *http.Request) {
		s.NoError(r.ParseMultipartForm(1 << 20))
		s.requests[r.URL.Path] = r
		w.Header().Set("Authorization", "Bearer new-token")
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "User registered successfully",
			"user":    map[string]any{"id": 2, "fullName": r.FormValue("fullName"), "role": "USER"},
		})
	})
	mux.HandleFunc("GET /api/v1/user/me", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.Header.Get("Authorization") != "Bearer jwt-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false, "message": "Unauthenticated, please login again",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "User details"})
	})
	mux.HandleFunc("POST /api/v1/user/reset/{token}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Password changed successfully"})
	})
	mux.HandleFunc("POST /api/v1/user/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("OOPS!! 404 page not found"))
	})

	s.server = httptest.NewServer(mux)
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) newClient() *Client {
	return New(s.server.URL+"/api/v1", s.server.Client())
}

func (s *ClientTestSuite) TestLogin() {
	client := s.newClient()

	s.Run("success", func() {
		env, err := client.Login(s.T().Context(), "john@example.com", "Secret1!")
		s.Require().NoError(err)
		s.True(env.Success)
		s.Equal("User loggedin successfully", env.Message)
		s.Equal("jwt-token", env.Token)
		s.Equal("USER", env.User["role"])
		s.Equal("application/json", s.requests["/api/v1/user/login"].Header.Get("Content-Type"))
	})

	s.Run("bad credentials", func() {
		env, err := client.Login(s.T().Context(), "john@example.com", "wrong")
		s.Nil(env)

		var respErr *ResponseError
		s.Require().ErrorAs(err, &respErr)
		s.Equal(http.StatusUnauthorized, respErr.Code)
		s.Equal("Email or Password does not match", respErr.Message)
	})
}

func (s *ClientTestSuite) TestRegister() {
	client := s.newClient()

	env, err := client.Register(s.T().Context(), RegisterForm{
		FullName: "John Doe",
		Email:    "john@example.com",
		Password: "Secret1!",
		Avatar:   &Avatar{Filename: "me.png", Content: strings.NewReader("png")},
	})
	s.Require().NoError(err)
	s.Equal("new-token", env.Token)
	s.Equal("John Doe", env.User["fullName"])

	req := s.requests["/api/v1/user/register"]
	s.Require().NotNil(req)
	s.True(strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data"))
	s.Equal("john@example.com", req.FormValue("email"))
	s.Require().Len(req.MultipartForm.File["avatar"], 1)
	s.Equal("me.png", req.MultipartForm.File["avatar"][0].Filename)
}

func (s *ClientTestSuite) TestMeUsesToken() {
	client := s.newClient()

	_, err := client.Me(s.T().Context())
	var respErr *ResponseError
	s.Require().ErrorAs(err, &respErr)
	s.Equal(http.StatusUnauthorized, respErr.Code)

	client.SetToken("jwt-token")
	env, err := client.Me(s.T().Context())
	s.Require().NoError(err)
	s.Equal("User details", env.Message)
	s.Nil(env.User)
}

func (s *ClientTestSuite) TestResetPasswordEscapesToken() {
	client := s.newClient()

	env, err := client.ResetPassword(s.T().Context(), "abc-123", "Secret1!")
	s.Require().NoError(err)
	s.Equal("Password changed successfully", env.Message)
	s.JSONEq(`{"password":"Secret1!"}`, string(s.bodies["/api/v1/user/reset/abc-123"]))
}

func (s *ClientTestSuite) TestPlainTextError() {
	client := s.newClient()

	_, err := client.Logout(s.T().Context())
	var respErr *ResponseError
	s.Require().ErrorAs(err, &respErr)
	s.Equal(http.StatusNotFound, respErr.Code)
	s.Equal("OOPS!! 404 page not found", respErr.Message)
}

func (s *ClientTestSuite) TestTransportError() {
	client := New("http://127.0.0.1:1/api/v1/", nil)

	_, err := client.Login(s.T().Context(), "john@example.com", "Secret1!")
	s.Require().Error(err)

	var respErr *ResponseError
	s.False(errors.As(err, &respErr))
	s.Contains(err.Error(), "do request")
}
