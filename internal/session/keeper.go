package session

import (
	"fmt"
	"sync"
	"time"
)

// Keeper derives and persists stable session identifiers so the backend
// can correlate every turn of a conversational thread. A session id is
// generated once per chat thread and never regenerated per message.
type Keeper struct {
	mu     sync.Mutex
	prefix string
	store  *Store

	// derived caches ids for chat ids without a persisted record, and
	// the timestamp-based id used when there is no chat context at all.
	derived map[string]string
}

// NewKeeper creates a keeper that prefixes derived ids with prefix.
// store may be nil, in which case ids are kept in memory only.
func NewKeeper(prefix string, store *Store) *Keeper {
	return &Keeper{
		prefix:  prefix,
		store:   store,
		derived: make(map[string]string),
	}
}

// SessionIDFor returns the session id for a chat thread. The first call
// derives prefix+chatID (or a timestamp-based id when chatID is empty)
// and persists it; subsequent calls return the same value unchanged.
func (k *Keeper) SessionIDFor(chatID string) string {
	k.mu.Lock()
	defer k.mu.Unlock()

	// A persisted chat record is the source of truth.
	if k.store != nil && chatID != "" {
		if chat, err := k.store.GetChat(chatID); err == nil && chat.SessionID != "" {
			return chat.SessionID
		}
	}

	if id, ok := k.derived[chatID]; ok {
		return id
	}

	var id string
	if chatID != "" {
		id = k.prefix + chatID
	} else {
		id = fmt.Sprintf("%s%d", k.prefix, time.Now().UnixMilli())
	}
	k.derived[chatID] = id

	if k.store != nil && chatID != "" {
		// Best effort: the id is deterministic for a chat id, so a
		// failed write only costs the persisted copy.
		_ = k.store.SetSessionID(chatID, id)
	}
	return id
}
