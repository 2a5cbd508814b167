package session

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/log"
)

func newTestStore(t *testing.T, historyLimit int) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), historyLimit, log.NewNop())
	require.NoError(t, err)
	return store
}

func TestCreateAndGetChat(t *testing.T) {
	store := newTestStore(t, 10)

	chat, err := store.CreateChat("Demolition ideas")
	require.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.Equal(t, "Demolition ideas", chat.Title)

	got, err := store.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, got.ID)
	assert.Empty(t, got.Messages)
}

func TestCreateChatDefaultTitle(t *testing.T) {
	store := newTestStore(t, 10)
	chat, err := store.CreateChat("")
	require.NoError(t, err)
	assert.Equal(t, "New Chat", chat.Title)
}

func TestGetChatNotFound(t *testing.T) {
	store := newTestStore(t, 10)
	_, err := store.GetChat("missing")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestChatSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 10, log.NewNop())
	require.NoError(t, err)

	chat, err := store.CreateChat("persisted")
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(chat.ID, blog.NewMessage(blog.RoleUser, "hello")))

	reopened, err := NewStore(dir, 10, log.NewNop())
	require.NoError(t, err)
	got, err := reopened.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestListChatsSortedByUpdate(t *testing.T) {
	store := newTestStore(t, 10)

	first, err := store.CreateChat("first")
	require.NoError(t, err)
	second, err := store.CreateChat("second")
	require.NoError(t, err)

	// Touch the first chat so it becomes the most recently updated.
	require.NoError(t, store.AppendMessage(first.ID, blog.NewMessage(blog.RoleUser, "bump")))

	chats, err := store.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, first.ID, chats[0].ID)
	assert.Equal(t, second.ID, chats[1].ID)
}

func TestListChatsSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 10, log.NewNop())
	require.NoError(t, err)

	_, err = store.CreateChat("good")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chats", "broken.json"), []byte("{not json"), 0o600))

	chats, err := store.ListChats()
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestDeleteChat(t *testing.T) {
	store := newTestStore(t, 10)
	chat, err := store.CreateChat("")
	require.NoError(t, err)

	require.NoError(t, store.DeleteChat(chat.ID))
	_, err = store.GetChat(chat.ID)
	assert.ErrorIs(t, err, ErrChatNotFound)

	assert.ErrorIs(t, store.DeleteChat(chat.ID), ErrChatNotFound)
}

func TestRenameChat(t *testing.T) {
	store := newTestStore(t, 10)
	chat, err := store.CreateChat("old")
	require.NoError(t, err)

	require.NoError(t, store.RenameChat(chat.ID, "new"))
	got, err := store.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
}

func TestUpdateMessage(t *testing.T) {
	store := newTestStore(t, 10)
	chat, err := store.CreateChat("")
	require.NoError(t, err)

	msg := blog.NewMessage(blog.RoleAssistant, "loading")
	msg.Loading = true
	require.NoError(t, store.AppendMessage(chat.ID, msg))

	require.NoError(t, store.UpdateMessage(chat.ID, msg.ID, "done", false))
	msgs, err := store.Messages(chat.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "done", msgs[0].Content)
	assert.False(t, msgs[0].Loading)

	assert.ErrorIs(t, store.UpdateMessage(chat.ID, "missing", "x", false), ErrMessageNotFound)
}

func TestHistoryCapAndOrder(t *testing.T) {
	store := newTestStore(t, 3)

	for i := 0; i < 5; i++ {
		post := blog.NewPost()
		post.Title = fmt.Sprintf("post %d", i)
		require.NoError(t, store.AddPost(post))
	}

	posts, err := store.RecentPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3, "history is capped at the configured limit")
	assert.Equal(t, "post 4", posts[0].Title, "newest first")
	assert.Equal(t, "post 2", posts[2].Title)
}

func TestRecentPostsEmpty(t *testing.T) {
	store := newTestStore(t, 10)
	posts, err := store.RecentPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NotNil(t, posts)
}
