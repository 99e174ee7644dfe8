package catalog_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]catalog.Format{"yaml": catalog.FormatYAML, "YML": catalog.FormatYAML, "json": catalog.FormatJSON} {
		f, err := catalog.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f, in)
	}
	_, err := catalog.ParseFormat("toml")
	assert.True(t, errors.Is(err, catalog.ErrUnknownFormat))

	f, ok := catalog.FormatOf("dir/items.yml")
	assert.True(t, ok)
	assert.Equal(t, catalog.FormatYAML, f)
	_, ok = catalog.FormatOf("notes.md")
	assert.False(t, ok)
}

func TestDecode_Document(t *testing.T) {
	src := `namespace: create
namespace_name: Create
entries:
  - id: shaft
    name: Shaft
    tags: [create:kinetic]
  - id: minecraft:stick
`
	doc, err := catalog.Decode(strings.NewReader(src), catalog.FormatYAML)
	require.NoError(t, err)

	entries := doc.Resolve()
	require.Len(t, entries, 2)
	assert.Equal(t, "create:shaft", entries[0].ID)
	assert.Equal(t, "create", entries[0].Namespace)
	assert.Equal(t, "Create", entries[0].NamespaceName)
	assert.Equal(t, []string{"create:kinetic"}, entries[0].Tags)

	// An explicit namespace in the id wins and keeps its own display name
	assert.Equal(t, "minecraft:stick", entries[1].ID)
	assert.Equal(t, "minecraft", entries[1].Namespace)
	assert.Equal(t, "stick", entries[1].Name)
	assert.Empty(t, entries[1].NamespaceName)
}

func TestResolve_NamespaceNameStaysInNamespace(t *testing.T) {
	doc := catalog.Document{
		Namespace:     "create",
		NamespaceName: "Create",
		Entries: []catalog.Entry{
			{ID: "minecraft:stick"},
			{ID: "gear", Namespace: "create"},
			{ID: "other:cog", Namespace: "create"},
			{ID: "minecraft:oak_log", NamespaceName: "Minecraft"},
		},
	}
	entries := doc.Resolve()
	require.Len(t, entries, 4)

	assert.Empty(t, entries[0].NamespaceName)
	assert.Equal(t, "Create", entries[1].NamespaceName)
	// An explicit namespace field overrides the id prefix
	assert.Equal(t, "create", entries[2].Namespace)
	assert.Equal(t, "Create", entries[2].NamespaceName)
	assert.Equal(t, "Minecraft", entries[3].NamespaceName)
}

func TestDecode_BareList(t *testing.T) {
	doc, err := catalog.Decode(strings.NewReader(`- id: a:x
- id: a:y
`), catalog.FormatYAML)
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 2)

	doc, err = catalog.Decode(strings.NewReader(` [{"id":"a:x","name":"X"}]`), catalog.FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "X", doc.Entries[0].Name)
}

func TestDecode_Empty(t *testing.T) {
	for _, f := range []catalog.Format{catalog.FormatYAML, catalog.FormatJSON} {
		doc, err := catalog.Decode(strings.NewReader("  \n"), f)
		require.NoError(t, err, f)
		assert.Empty(t, doc.Entries, f)
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := catalog.Decode(strings.NewReader(`{"entries": [`), catalog.FormatJSON)
	assert.Error(t, err)

	_, err = catalog.Decode(strings.NewReader("entries: [\n"), catalog.FormatYAML)
	assert.Error(t, err)

	_, err = catalog.Decode(strings.NewReader("[]"), catalog.Format("xml"))
	assert.True(t, errors.Is(err, catalog.ErrUnknownFormat))
}

func TestEncode_ReadsBack(t *testing.T) {
	in := catalog.Document{Entries: []catalog.Entry{
		{ID: "minecraft:stick", Name: "Stick", Namespace: "minecraft", Tooltip: []string{"Crafting material"}, Tags: []string{"c:rods"}},
	}}
	for _, f := range []catalog.Format{catalog.FormatYAML, catalog.FormatJSON} {
		var buf bytes.Buffer
		require.NoError(t, catalog.Encode(&buf, f, in), f)

		out, err := catalog.Decode(&buf, f)
		require.NoError(t, err, f)
		assert.Equal(t, in.Entries, out.Entries, f)
	}

	// An empty document still encodes an entries list
	var buf bytes.Buffer
	require.NoError(t, catalog.Encode(&buf, catalog.FormatJSON, catalog.Document{}))
	assert.Contains(t, buf.String(), `"entries": []`)
}
