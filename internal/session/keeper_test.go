package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/log"
)

func TestSessionIDForIsIdempotent(t *testing.T) {
	keeper := NewKeeper("blog_session_", nil)

	first := keeper.SessionIDFor("chat-1")
	second := keeper.SessionIDFor("chat-1")
	assert.Equal(t, first, second)
	assert.Equal(t, "blog_session_chat-1", first)
}

func TestSessionIDForDistinctChats(t *testing.T) {
	keeper := NewKeeper("blog_session_", nil)
	assert.NotEqual(t, keeper.SessionIDFor("a"), keeper.SessionIDFor("b"))
}

func TestSessionIDForEmptyChatID(t *testing.T) {
	keeper := NewKeeper("blog_session_", nil)

	id := keeper.SessionIDFor("")
	assert.True(t, strings.HasPrefix(id, "blog_session_"))
	assert.Greater(t, len(id), len("blog_session_"))

	// Stable within the keeper's lifetime.
	assert.Equal(t, id, keeper.SessionIDFor(""))
}

func TestSessionIDForPersistsOnChat(t *testing.T) {
	store, err := NewStore(t.TempDir(), 10, log.NewNop())
	require.NoError(t, err)
	chat, err := store.CreateChat("")
	require.NoError(t, err)

	keeper := NewKeeper("blog_session_", store)
	id := keeper.SessionIDFor(chat.ID)

	got, err := store.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, id, got.SessionID)

	// A fresh keeper over the same store sees the persisted id.
	fresh := NewKeeper("blog_session_", store)
	assert.Equal(t, id, fresh.SessionIDFor(chat.ID))
}

func TestSessionIDForPersistedIDWins(t *testing.T) {
	store, err := NewStore(t.TempDir(), 10, log.NewNop())
	require.NoError(t, err)
	chat, err := store.CreateChat("")
	require.NoError(t, err)
	require.NoError(t, store.SetSessionID(chat.ID, "blog_session_existing"))

	keeper := NewKeeper("blog_session_", store)
	assert.Equal(t, "blog_session_existing", keeper.SessionIDFor(chat.ID))
}
