package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsdevblog/lms-backend/internal/transport/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiscRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-avatar-x.png"), testutils.PNGHeader, 0o600))

	router, err := New(RouterArgs{UploadsDir: dir, JWTSecretKey: []byte("secret")})
	require.NoError(t, err)

	var cases = []struct {
		name       string
		method     string
		url        string
		wantStatus int
		opts       []func(*testutils.RequestOptions)
		wantBody   string
	}{
		{name: "home", method: http.MethodGet, url: HomeRoute, wantStatus: http.StatusOK, wantBody: HomeText},
		{name: "ping", method: http.MethodGet, url: PingRoute, wantStatus: http.StatusOK, wantBody: PongText},
		{name: "unknown route", method: http.MethodGet, url: "/nope", wantStatus: http.StatusNotFound, wantBody: NotFoundText},
		{
			name:       "uploaded avatar",
			method:     http.MethodGet,
			url:        UploadsRoute + "/1-avatar-x.png",
			wantStatus: http.StatusOK,
			wantBody:   string(testutils.PNGHeader),
		},
		{
			name:       "plain text error",
			method:     http.MethodGet,
			url:        RouteGroup + "/course/abc",
			wantStatus: http.StatusBadRequest,
			opts:       []func(*testutils.RequestOptions){testutils.WithAccept("text/plain")},
			wantBody:   "Invalid course id",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			res, reqErr := testutils.MakeRequest(testutils.RequestArgs{
				Router: router,
				Method: tt.method,
				URL:    tt.url,
			}, tt.opts...)
			require.NoError(t, reqErr)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			body, readErr := io.ReadAll(res.Body)
			require.NoError(t, readErr)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
