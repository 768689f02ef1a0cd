package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fsdevblog/lms-backend/internal/session"
	"github.com/fsdevblog/lms-backend/internal/transport/lmsclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	var requests atomic.Int32
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	mux.HandleFunc("POST /api/v1/user/login", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Authorization", "Bearer jwt-token")
		writeJSON(w, map[string]any{
			"success": true,
			"message": "User loggedin successfully",
			"user":    map[string]any{"email": "john@example.com", "role": "USER"},
		})
	})
	mux.HandleFunc("POST /api/v1/user/logout", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		writeJSON(w, map[string]any{"success": true, "message": "User logged out successfully"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := session.NewMemoryStore(nil)
	client := lmsclient.New(server.URL+"/api/v1/", server.Client())
	var notes bytes.Buffer
	sess, err := session.New(t.Context(), client, store, session.WriterNotifier{Out: &notes, Err: &notes})
	require.NoError(t, err)

	status := func() map[string]any {
		var out bytes.Buffer
		require.NoError(t, execute(t.Context(), sess, []string{"status"}, &out))
		var state map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &state))
		return state
	}

	t.Run("invalid signup sends nothing", func(t *testing.T) {
		err := execute(t.Context(), sess, []string{"register", "-name", "Jo", "-email", "j@e.com", "-password", "x"}, &notes)
		require.ErrorIs(t, err, session.ErrInvalidForm)
		assert.Equal(t, int32(0), requests.Load())
	})

	t.Run("login", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, execute(t.Context(), sess,
			[]string{"login", "-email", "john@example.com", "-password", "Secret1!"}, &out))
		assert.Equal(t, true, status()["isLoggedIn"])
		assert.Equal(t, "USER", status()["role"])
		assert.Equal(t, "jwt-token", client.Token())
	})

	t.Run("logout", func(t *testing.T) {
		require.NoError(t, execute(t.Context(), sess, []string{"logout"}, &notes))
		assert.Equal(t, false, status()["isLoggedIn"])
		assert.Empty(t, client.Token())

		values, loadErr := store.Load(t.Context())
		require.NoError(t, loadErr)
		assert.Empty(t, values)
	})

	t.Run("unknown command", func(t *testing.T) {
		require.ErrorIs(t, execute(t.Context(), sess, []string{"dance"}, &notes), errUsage)
		require.ErrorIs(t, execute(t.Context(), sess, nil, &notes), errUsage)
	})
}
