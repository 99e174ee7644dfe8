package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Run("removed and added ids", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.run("diff", "@minecraft", "$c:gems | @create")
		env.contains(out, "- minecraft:stick")
		env.contains(out, "- minecraft:oak_log")
		env.contains(out, "+ create:shaft")
		env.contains(out, "  minecraft:diamond")
	})

	t.Run("identical queries", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.run("diff", "oak", "Oak")
		env.contains(out, "--- oak\n+++ Oak\n")
		env.contains(out, "0 removed, 0 added, 2 common")
		for _, l := range lines(out) {
			assert.False(t, strings.HasPrefix(l, "- "), "unexpected removal: %s", l)
			assert.False(t, strings.HasPrefix(l, "+ "), "unexpected addition: %s", l)
		}
	})

	t.Run("ignores result limit", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		env.run("config", "limits.max_results", "1", "--local")

		out := env.stdout("diff", "", "@create", "-o", "json")
		var r struct {
			Removed int `json:"removed"`
			Common  int `json:"common"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, 4, r.Removed)
		assert.Equal(t, 2, r.Common)
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.stdout("diff", "@create", "@minecraft", "-o", "json")
		env.contains(out, `"diff"`)
		env.contains(out, `"added":4`)
		env.contains(out, `"removed":2`)
	})

	t.Run("needs two queries", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("diff", "oak")
		assert.Error(t, err)
	})
}
