package api

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/generator"
	"github.com/draftforge/draftforge/internal/log"
	"github.com/draftforge/draftforge/internal/session"
	"github.com/draftforge/draftforge/internal/synthetic"
)

// newTestServer builds a server backed by a temp-dir store and the
// synthetic responder, so tests exercise the full pipeline without a
// backend.
func newTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()

	store, err := session.NewStore(t.TempDir(), 10, log.NewNop())
	require.NoError(t, err)

	gen, err := generator.New(generator.Config{
		Store:           store,
		Keeper:          session.NewKeeper("blog_session_", store),
		Logger:          log.NewNop(),
		Synthetic:       synthetic.New(0),
		StagedSynthetic: true,
	})
	require.NoError(t, err)

	return NewServer(store, gen, nil, log.NewNop()), store
}
