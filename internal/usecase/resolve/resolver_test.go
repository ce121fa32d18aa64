package resolve_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedgate/internal/domain/entity"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/resolve"
)

func storeWithDefs(defs ...entity.FeedDefinition) *settings.Memory {
	return settings.NewMemory(map[string]any{
		settings.KeySiteTitle:       "Example Site",
		settings.KeySiteDescription: "All the news",
	}, defs)
}

func TestResolveBuiltinFormats(t *testing.T) {
	r := resolve.NewResolver(storeWithDefs())

	for _, name := range []string{"rss2", "atom", "json"} {
		got, err := r.Resolve(name)
		require.NoError(t, err, name)
		assert.True(t, got.Builtin)
		assert.Equal(t, entity.FeedFormat(name), got.Format)
		assert.Equal(t, "Example Site", got.Definition.Title)
		assert.Equal(t, entity.OrderByDate, got.Definition.OrderBy)
		assert.Equal(t, entity.OrderDesc, got.Definition.OrderDirection)
	}
}

func TestResolveDisabledBuiltin(t *testing.T) {
	store := storeWithDefs()
	store.Set(settings.KeyAtomEnabled, false)
	r := resolve.NewResolver(store)

	_, err := r.Resolve("atom")
	assert.ErrorIs(t, err, resolve.ErrFeedNotFound)

	// Other builtins stay resolvable.
	_, err = r.Resolve("rss2")
	assert.NoError(t, err)
}

func TestResolveCustomSlug(t *testing.T) {
	enabled := entity.FeedDefinition{Slug: "news", Title: "News", Limit: 5, OrderBy: entity.OrderByDate, OrderDirection: entity.OrderDesc, Enabled: true}
	disabled := entity.FeedDefinition{Slug: "drafts", Title: "Drafts", Limit: 5, OrderBy: entity.OrderByDate, OrderDirection: entity.OrderDesc, Enabled: false}
	r := resolve.NewResolver(storeWithDefs(enabled, disabled))

	got, err := r.Resolve("news")
	require.NoError(t, err)
	assert.False(t, got.Builtin)
	assert.Equal(t, "news", got.Definition.Slug)
	assert.Equal(t, entity.FormatRSS2, got.Format)

	_, err = r.Resolve("drafts")
	assert.ErrorIs(t, err, resolve.ErrFeedNotFound)

	_, err = r.Resolve("unknown")
	assert.ErrorIs(t, err, resolve.ErrFeedNotFound)
}

func TestResolveTrimsSlashes(t *testing.T) {
	r := resolve.NewResolver(storeWithDefs())

	got, err := r.Resolve("/rss2/")
	require.NoError(t, err)
	assert.Equal(t, entity.FormatRSS2, got.Format)

	_, err = r.Resolve("/")
	assert.ErrorIs(t, err, resolve.ErrFeedNotFound)
}

type failingStore struct{ *settings.Memory }

var errStore = errors.New("store unavailable")

func (f failingStore) Definitions() ([]entity.FeedDefinition, error) { return nil, errStore }

func TestResolvePropagatesStoreError(t *testing.T) {
	r := resolve.NewResolver(failingStore{storeWithDefs()})

	_, err := r.Resolve("news")
	assert.ErrorIs(t, err, errStore)
}
