package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/jpl-au/facet/internal/service"
	"github.com/jpl-au/facet/internal/store"
	"github.com/jpl-au/facet/internal/validate"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// newTestService initialises a catalog in a temp dir and opens it with cfg.
func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, "", false, dir))

	if cfg == nil {
		cfg = &config.Config{}
	}
	svc, err := Open(filepath.Join(dir, repo.Dir, repo.DBFile), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.Add(context.Background(), []catalog.Entry{
		{ID: "minecraft:stick", Name: "Stick", NamespaceName: "Minecraft", Tooltip: []string{"Crafting material"}, Tags: []string{"c:rods/wooden"}},
		{ID: "minecraft:oak_planks", Name: "Oak Planks", NamespaceName: "Minecraft", Tags: []string{"minecraft:planks"}},
		{ID: "minecraft:diamond", Name: "Diamond", NamespaceName: "Minecraft", Tags: []string{"c:gems/diamond"}},
		{ID: "create:andesite_alloy", Name: "Andesite Alloy", NamespaceName: "Create", Tooltip: []string{"Crafting material"}},
		{ID: "create:shaft", Name: "Shaft", NamespaceName: "Create"},
	}, "alice", false)
	require.NoError(t, err)
}

func TestSearch_WorkedExample(t *testing.T) {
	cfg := &config.Config{Search: config.Search{Matchers: map[string]config.Matcher{
		"mod": {Prefix: ptr("@mod:")},
	}}}
	svc := newTestService(t, cfg)
	seed(t, svc)

	res, err := svc.Search(context.Background(), "@mod:minecraft -stick", service.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:oak_planks", "minecraft:diamond"}, res.IDs())
	assert.Equal(t, 5, res.Scanned)
	assert.False(t, res.Truncated)

	require.Len(t, res.Highlights, 1)
	assert.Equal(t, "mod", res.Highlights[0].Matcher)
	assert.Equal(t, 0, res.Highlights[0].Span.Start)
	assert.Equal(t, 5, res.Highlights[0].Span.End)
}

func TestSearch_EmptyQueryReturnsEverything(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)

	res, err := svc.Search(context.Background(), "", service.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 5)
	assert.Empty(t, res.Highlights)
}

func TestSearch_Limits(t *testing.T) {
	svc := newTestService(t, &config.Config{Limits: config.Limits{MaxResults: ptr(2)}})
	seed(t, svc)
	ctx := context.Background()

	res, err := svc.Search(ctx, "", service.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:stick", "minecraft:oak_planks"}, res.IDs())
	assert.True(t, res.Truncated)

	// Requested limits are clamped to max_results
	res, err = svc.Search(ctx, "", service.SearchOptions{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)

	res, err = svc.Search(ctx, "", service.SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:stick"}, res.IDs())

	// Exactly max_results matches is not truncated
	res, err = svc.Search(ctx, "@create", service.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)
	assert.False(t, res.Truncated)
}

func TestSearch_Namespace(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)

	res, err := svc.Search(context.Background(), "#crafting", service.SearchOptions{Namespace: "create"})
	require.NoError(t, err)
	assert.Equal(t, []string{"create:andesite_alloy"}, res.IDs())
	assert.Equal(t, 2, res.Scanned)
}

func TestSearch_PrefilterDoesNotChangeResults(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)
	ctx := context.Background()

	for _, q := range []string{"oak", "#crafting -@create", "$c: | shaft", "*minecraft:*", "r/^s"} {
		with, err := svc.Search(ctx, q, service.SearchOptions{})
		require.NoError(t, err)
		without, err := svc.Search(ctx, q, service.SearchOptions{NoPrefilter: true})
		require.NoError(t, err)
		assert.Equal(t, without.IDs(), with.IDs(), q)
	}
}

func TestSearch_QueryTooLong(t *testing.T) {
	svc := newTestService(t, &config.Config{Limits: config.Limits{MaxQuery: ptr(8)}})

	_, err := svc.Search(context.Background(), strings.Repeat("a", 9), service.SearchOptions{})
	assert.True(t, errors.Is(err, validate.ErrQueryTooLong))

	_, err = svc.Explain(strings.Repeat("a", 8))
	assert.NoError(t, err)
}

func TestSearch_Cancelled(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Search(ctx, "oak", service.SearchOptions{})
	assert.Error(t, err)
}

func TestSearch_Concurrent(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Search(context.Background(), "@minecraft -stick", service.SearchOptions{})
			assert.NoError(t, err)
			assert.Equal(t, []string{"minecraft:oak_planks", "minecraft:diamond"}, res.IDs())
		}()
	}
	wg.Wait()
}

func TestSearch_ConcurrentReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	svc := newTestService(t, nil)
	seed(t, svc)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			res, err := svc.Search(context.Background(), "stick", service.SearchOptions{})
			assert.NoError(t, err)
			assert.Equal(t, []string{"minecraft:stick"}, res.IDs())
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.ReloadConfig())
		}()
	}
	wg.Wait()
}

func TestSearch_SettingsSwappedWhole(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)

	svc.apply(&config.Config{
		Search: config.Search{Matchers: map[string]config.Matcher{"mod": {Prefix: ptr("~")}}},
		Limits: config.Limits{MaxResults: ptr(1)},
	})

	res, err := svc.Search(context.Background(), "~create", service.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"create:andesite_alloy"}, res.IDs())
	assert.True(t, res.Truncated)
}

func TestMatchers_FollowConfig(t *testing.T) {
	svc := newTestService(t, nil)
	assert.Len(t, svc.Matchers(), 6)

	svc = newTestService(t, &config.Config{Search: config.Search{Matchers: map[string]config.Matcher{
		"regex": {Mode: config.ModeNever},
		"tag":   {Mode: config.ModeAlways},
	}}})
	var names []string
	for _, m := range svc.Matchers() {
		names = append(names, m.Name())
	}
	assert.NotContains(t, names, "regex")
	assert.Len(t, names, 5)

	// Tag registers before text, so it takes bare terms
	q, err := svc.Explain("rods")
	require.NoError(t, err)
	assert.Equal(t, "tag", q.Tokens()[0].MatcherName())
}

func TestOpen_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, "", false, dir))

	cfg := &config.Config{Search: config.Search{Matchers: map[string]config.Matcher{"nope": {}}}}
	_, err := Open(filepath.Join(dir, repo.Dir, repo.DBFile), cfg)
	assert.True(t, errors.Is(err, config.ErrUnknownKey))
}

func TestEntries(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)
	ctx := context.Background()

	e, err := svc.Get(ctx, "minecraft:stick")
	require.NoError(t, err)
	assert.Equal(t, "Stick", e.Name)
	assert.Equal(t, []string{"c:rods/wooden"}, e.Tags)

	ok, err := svc.Exists(ctx, "create:shaft")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.List(ctx, "create")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	ns, err := svc.Namespaces(ctx)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, "create", ns[0].Name)
	assert.Equal(t, int64(3), ns[1].Entries)

	require.NoError(t, svc.Remove(ctx, "create:shaft"))
	_, err = svc.Get(ctx, "create:shaft")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.True(t, errors.Is(svc.Remove(ctx, "create:shaft"), store.ErrNotFound))

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.Entries)
}

func TestAdd_DuplicateAndReplace(t *testing.T) {
	svc := newTestService(t, nil)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Add(ctx, []catalog.Entry{{ID: "minecraft:stick", Name: "Rod"}}, "bob", false)
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))

	n, err := svc.Add(ctx, []catalog.Entry{{ID: "minecraft:stick", Name: "Rod"}}, "bob", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := svc.Search(ctx, "rod", service.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:stick"}, res.IDs())

	// Replacing keeps catalog position
	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "minecraft:stick", list[0].ID)

	n, err = svc.Add(ctx, nil, "bob", false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSavedQueries(t *testing.T) {
	svc := newTestService(t, &config.Config{Limits: config.Limits{MaxQuery: ptr(16)}})
	ctx := context.Background()

	require.NoError(t, svc.SaveQuery(ctx, "gems", "$gems", ""))
	q, err := svc.SavedQuery(ctx, "gems")
	require.NoError(t, err)
	assert.Equal(t, "$gems", q.Query)
	assert.Equal(t, DefaultAuthor, q.Author)

	err = svc.SaveQuery(ctx, "long", strings.Repeat("x", 17), "alice")
	assert.True(t, errors.Is(err, validate.ErrQueryTooLong))

	err = svc.SaveQuery(ctx, "bad name", "$gems", "alice")
	assert.True(t, errors.Is(err, validate.ErrInvalidName))

	all, err := svc.SavedQueries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteQuery(ctx, "gems"))
	assert.True(t, errors.Is(svc.DeleteQuery(ctx, "gems"), store.ErrQueryNotFound))
}

func TestDiff(t *testing.T) {
	svc := newTestService(t, &config.Config{Limits: config.Limits{MaxResults: ptr(1)}})
	seed(t, svc)

	// Limits do not apply to diffs
	r, err := svc.Diff(context.Background(), "@minecraft", "@minecraft -stick")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Removed)
	assert.Equal(t, 0, r.Added)
	assert.Equal(t, 2, r.Common)
	assert.Equal(t, "@minecraft", r.Old)

	r, err = svc.Diff(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, r.Equal())
	assert.Equal(t, `""`, r.Old)
}

// recorder is an extension that records the events it receives.
type recorder struct {
	mu     sync.Mutex
	events []extension.Event
}

func (r *recorder) Name() string                  { return "engine-test-recorder" }
func (r *recorder) Commands() []*cobra.Command    { return nil }
func (r *recorder) MCPTools() []extension.MCPTool { return nil }
func (r *recorder) HandleEvent(_ extension.Context, e extension.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

var events = &recorder{}

func init() { extension.Register(events) }

func TestEvents(t *testing.T) {
	svc := newTestService(t, nil)
	svc.SetExtensionContext(extension.NewContext(svc, svc.DB(), &config.Config{}))
	ctx := context.Background()

	events.mu.Lock()
	events.events = nil
	events.mu.Unlock()

	_, err := svc.Add(ctx, []catalog.Entry{{ID: " minecraft:stick "}}, "alice", false)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "minecraft:stick"))
	require.NoError(t, svc.SaveQuery(ctx, "q", "oak", "alice"))
	require.NoError(t, svc.DeleteQuery(ctx, "q"))

	// A failed write fires nothing
	_, err = svc.Add(ctx, []catalog.Entry{{ID: "bad id"}}, "alice", false)
	require.Error(t, err)

	events.mu.Lock()
	defer events.mu.Unlock()
	require.Len(t, events.events, 4)
	assert.Equal(t, extension.EventEntryAdd, events.events[0].EventType())
	assert.Equal(t, "minecraft:stick", events.events[0].EventTarget())
	assert.Equal(t, extension.EventEntryRemove, events.events[1].EventType())
	assert.Equal(t, extension.EventQuerySave, events.events[2].EventType())
	assert.Equal(t, extension.EventQueryDelete, events.events[3].EventType())
}
