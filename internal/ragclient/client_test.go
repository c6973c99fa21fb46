package ragclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malonaz/docqa/internal/file"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/", 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_Register(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)
		assert.Equal(t, "ada lovelace", r.URL.Query().Get("username"))
		writeJSON(t, w, http.StatusOK, map[string]any{"id": 7, "username": "ada lovelace"})
	})

	identity, err := client.Register(context.Background(), "ada lovelace")
	require.NoError(t, err)
	require.Equal(t, "7", identity.ID)
	require.Equal(t, "ada lovelace", identity.Username)
}

func TestClient_Register_StringID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"id": "u-1", "username": "ada"})
	})

	identity, err := client.Register(context.Background(), "ada")
	require.NoError(t, err)
	require.Equal(t, "u-1", identity.ID)
}

func TestClient_Register_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing id", body: map[string]any{"username": "ada"}},
		{name: "null id", body: map[string]any{"id": nil, "username": "ada"}},
		{name: "missing username", body: map[string]any{"id": 1}},
		{name: "bool id", body: map[string]any{"id": true, "username": "ada"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, tt.body)
			})
			_, err := client.Register(context.Background(), "ada")
			require.Error(t, err)
		})
	}
}

func TestClient_Upload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))

		f, header, err := r.FormFile(uploadFormField)
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		assert.NoError(t, err)
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4", string(content))

		writeJSON(t, w, http.StatusOK, map[string]any{"message": "File uploaded and processed", "chunks": 12})
	})

	result, err := client.Upload(context.Background(), "7", &file.File{Path: "/docs/report.pdf", Content: []byte("%PDF-1.4")})
	require.NoError(t, err)
	require.Equal(t, 12, result.Chunks)
}

func TestClient_Upload_Errors(t *testing.T) {
	t.Run("user not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"detail": "User not found"})
		})
		_, err := client.Upload(context.Background(), "99", &file.File{Path: "a.txt"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "User not found")
		require.Contains(t, err.Error(), "404")
	})

	t.Run("missing chunks", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
		})
		_, err := client.Upload(context.Background(), "7", &file.File{Path: "a.txt"})
		require.Error(t, err)
	})

	t.Run("non json body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		})
		_, err := client.Upload(context.Background(), "7", &file.File{Path: "a.txt"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "bad gateway")
	})
}

func TestClient_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		assert.Equal(t, "What is X & Y?", r.URL.Query().Get("q"))
		writeJSON(t, w, http.StatusOK, map[string]any{"answer": "X is Y", "sources": []string{"a.txt", "a.txt"}})
	})

	result, err := client.Query(context.Background(), "7", "What is X & Y?")
	require.NoError(t, err)
	require.Equal(t, "X is Y", result.Answer)
	// Deduplication is a rendering concern.
	require.Equal(t, []string{"a.txt", "a.txt"}, result.Sources)
}

func TestClient_Query_NoSources(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"answer": "No relevant information found in your knowledge base."})
	})

	result, err := client.Query(context.Background(), "7", "anything")
	require.NoError(t, err)
	require.Empty(t, result.Sources)
}

func TestClient_Query_MissingAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"sources": []string{"a.txt"}})
	})

	_, err := client.Query(context.Background(), "7", "anything")
	require.Error(t, err)
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := New(server.URL, time.Second)

	_, err := client.Query(context.Background(), "7", "anything")
	require.Error(t, err)
}

func TestClient_Ping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "Easy-RAG API is running"})
	})

	message, err := client.Ping(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Easy-RAG API is running", message)
}
