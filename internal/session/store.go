// Package session owns the cross-call shared state of the client: the
// keyed mapping from chat identifier to chat thread (title, session id,
// message list), a small history of recently completed posts, and the
// Keeper that derives stable per-thread session identifiers for the
// backend.
//
// State is persisted as JSON files under a state directory, one file per
// chat plus one history file. The store is safe for concurrent use; all
// mutations are overwrite-by-key under a single mutex.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/log"
)

// ErrChatNotFound indicates the requested chat does not exist.
var ErrChatNotFound = errors.New("chat not found")

// ErrMessageNotFound indicates the requested message does not exist.
var ErrMessageNotFound = errors.New("message not found")

// historyFile holds the recent-post history inside the state directory.
const historyFile = "history.json"

// chatsDir holds one JSON file per chat inside the state directory.
const chatsDir = "chats"

// Chat is one conversational thread and its persisted state.
type Chat struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	SessionID string          `json:"sessionId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Messages  []*blog.Message `json:"messages"`
}

// Store persists chats and recent posts under a state directory.
type Store struct {
	mu           sync.Mutex
	dir          string
	historyLimit int
	logger       log.Logger
}

// NewStore creates a store rooted at dir, keeping at most historyLimit
// completed posts. The directory tree is created if absent; an empty
// directory is a valid initial state.
func NewStore(dir string, historyLimit int, logger log.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if historyLimit <= 0 {
		historyLimit = 10
	}
	if err := os.MkdirAll(filepath.Join(dir, chatsDir), 0o750); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &Store{dir: dir, historyLimit: historyLimit, logger: logger}, nil
}

// CreateChat creates and persists a new chat thread.
func (s *Store) CreateChat(title string) (*Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		title = "New Chat"
	}
	now := time.Now()
	chat := &Chat{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []*blog.Message{},
	}
	if err := s.writeChat(chat); err != nil {
		return nil, err
	}
	s.logger.Debug("created chat", "chat_id", chat.ID, "title", chat.Title)
	return chat, nil
}

// GetChat returns the chat with the given id.
func (s *Store) GetChat(chatID string) (*Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readChat(chatID)
}

// ListChats returns all chats, most recently updated first.
func (s *Store) ListChats() ([]*Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, chatsDir))
	if err != nil {
		return nil, fmt.Errorf("reading chats directory: %w", err)
	}

	chats := make([]*Chat, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		chat, err := s.readChat(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			s.logger.Warn("skipping unreadable chat file", "file", entry.Name(), "error", err)
			continue
		}
		chats = append(chats, chat)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].UpdatedAt.After(chats[j].UpdatedAt) })
	return chats, nil
}

// DeleteChat removes a chat and its messages.
func (s *Store) DeleteChat(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.chatPath(chatID)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrChatNotFound, chatID)
		}
		return fmt.Errorf("deleting chat: %w", err)
	}
	return nil
}

// RenameChat updates a chat's title.
func (s *Store) RenameChat(chatID, title string) error {
	return s.mutateChat(chatID, func(chat *Chat) { chat.Title = title })
}

// SetSessionID records the derived session id on a chat.
func (s *Store) SetSessionID(chatID, sessionID string) error {
	return s.mutateChat(chatID, func(chat *Chat) { chat.SessionID = sessionID })
}

// AppendMessage appends a message to the chat's thread.
func (s *Store) AppendMessage(chatID string, msg *blog.Message) error {
	return s.mutateChat(chatID, func(chat *Chat) {
		chat.Messages = append(chat.Messages, msg)
	})
}

// UpdateMessage overwrites the content and loading flag of one message.
func (s *Store) UpdateMessage(chatID, messageID, content string, loading bool) error {
	found := false
	err := s.mutateChat(chatID, func(chat *Chat) {
		for _, msg := range chat.Messages {
			if msg.ID == messageID {
				msg.Content = content
				msg.Loading = loading
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, messageID)
	}
	return nil
}

// Messages returns the chat's message list in order.
func (s *Store) Messages(chatID string) ([]*blog.Message, error) {
	chat, err := s.GetChat(chatID)
	if err != nil {
		return nil, err
	}
	return chat.Messages, nil
}

// AddPost prepends a completed post to the recent history, trimming to
// the configured limit.
func (s *Store) AddPost(post *blog.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.readHistory()
	if err != nil {
		return err
	}
	history = append([]*blog.Post{post}, history...)
	if len(history) > s.historyLimit {
		history = history[:s.historyLimit]
	}
	return s.writeJSON(filepath.Join(s.dir, historyFile), history)
}

// RecentPosts returns the recent-post history, newest first.
func (s *Store) RecentPosts() ([]*blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readHistory()
}

// mutateChat loads a chat, applies fn, bumps UpdatedAt and persists.
func (s *Store) mutateChat(chatID string, fn func(*Chat)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, err := s.readChat(chatID)
	if err != nil {
		return err
	}
	fn(chat)
	chat.UpdatedAt = time.Now()
	return s.writeChat(chat)
}

func (s *Store) chatPath(chatID string) string {
	return filepath.Join(s.dir, chatsDir, chatID+".json")
}

func (s *Store) readChat(chatID string) (*Chat, error) {
	data, err := os.ReadFile(s.chatPath(chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrChatNotFound, chatID)
		}
		return nil, fmt.Errorf("reading chat file: %w", err)
	}
	var chat Chat
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("parsing chat file: %w", err)
	}
	return &chat, nil
}

func (s *Store) writeChat(chat *Chat) error {
	return s.writeJSON(s.chatPath(chat.ID), chat)
}

func (s *Store) readHistory() ([]*blog.Post, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []*blog.Post{}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	var history []*blog.Post
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return history, nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
