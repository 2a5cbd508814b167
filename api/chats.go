package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/draftforge/draftforge/internal/session"
)

// MaxTitleLength bounds chat titles accepted over the API.
const MaxTitleLength = 100

// ChatHandler handles chat-thread and history HTTP endpoints.
type ChatHandler struct {
	store *session.Store
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(store *session.Store) *ChatHandler {
	return &ChatHandler{store: store}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/chats", h.list)
	mux.HandleFunc("POST /api/chats", h.create)
	mux.HandleFunc("GET /api/chats/{id}", h.get)
	mux.HandleFunc("DELETE /api/chats/{id}", h.delete)
	mux.HandleFunc("GET /api/history", h.history)
}

// list returns all chat threads, most recently updated first.
func (h *ChatHandler) list(w http.ResponseWriter, _ *http.Request) {
	chats, err := h.store.ListChats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chats": chats,
		"total": len(chats),
	})
}

// CreateChatRequest is the request body for creating a chat thread.
type CreateChatRequest struct {
	Title string `json:"title"`
}

// create creates a new chat thread.
func (h *ChatHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if len(req.Title) > MaxTitleLength {
		writeError(w, http.StatusBadRequest, "TITLE_TOO_LONG", "title too long (max 100 characters)")
		return
	}

	chat, err := h.store.CreateChat(req.Title)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

// get returns one chat thread with its messages.
func (h *ChatHandler) get(w http.ResponseWriter, r *http.Request) {
	chat, err := h.store.GetChat(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, session.ErrChatNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "GET_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// delete removes one chat thread.
func (h *ChatHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteChat(r.PathValue("id")); err != nil {
		if errors.Is(err, session.ErrChatNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "DELETE_FAILED", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// history returns the recently generated posts, newest first.
func (h *ChatHandler) history(w http.ResponseWriter, _ *http.Request) {
	posts, err := h.store.RecentPosts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "HISTORY_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"total": len(posts),
	})
}
