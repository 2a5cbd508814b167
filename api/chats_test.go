package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/session"
)

func TestChats_CreateGetDelete(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	// Create
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{"title":"Demolition ideas"}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	var chat session.Chat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chat))
	assert.Equal(t, "Demolition ideas", chat.Title)
	require.NotEmpty(t, chat.ID)

	// Get
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chats/"+chat.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/chats/"+chat.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Get after delete
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chats/"+chat.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChats_List(t *testing.T) {
	srv, store := newTestServer(t)
	_, err := store.CreateChat("one")
	require.NoError(t, err)
	_, err = store.CreateChat("two")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Chats []session.Chat `json:"chats"`
		Total int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestChats_TitleTooLong(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"title":"` + strings.Repeat("x", MaxTitleLength+1) + `"}`
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_EmptyThenPopulated(t *testing.T) {
	srv, store := newTestServer(t)
	handler := srv.Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)

	// Populate via one generation.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"topic":"Environmental"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	posts, err := store.RecentPosts()
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}
