package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createDoc = `namespace: create
namespace_name: Create
entries:
  - id: shaft
    name: Shaft
  - id: cogwheel
    tags: [create:gears]
`

func TestImport(t *testing.T) {
	t.Run("yaml list", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("items.yaml", itemsYAML)

		out := env.run("import", "items.yaml")
		env.contains(out, "Imported 6 entries from 1 file(s)")

		out = env.run("search", "", "-c")
		env.equals(out, "6")
	})

	t.Run("document namespace", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("create.yml", createDoc)

		env.run("import", "create.yml")

		out := env.run("show", "create:cogwheel")
		env.contains(out, "Name:      cogwheel")
		env.contains(out, "Namespace: create (Create)")
	})

	t.Run("foreign id keeps its namespace", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("create.yml", createDoc+"  - id: minecraft:stick\n")

		env.run("import", "create.yml")

		out := env.stdout("search", "@create", "-l")
		assert.Equal(t, []string{"create:shaft", "create:cogwheel"}, lines(out))

		out = env.run("show", "minecraft:stick")
		env.contains(out, "Namespace: minecraft")
		assert.NotContains(t, out, "(Create)")
	})

	t.Run("json file", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("gems.json", `[{"id":"minecraft:emerald","name":"Emerald","tags":["c:gems"]}]`)

		env.run("import", "gems.json")

		out := env.run("search", "$gems", "-l")
		env.equals(out, "minecraft:emerald")
	})

	t.Run("directory", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("src/a.yaml", itemsYAML)
		env.writeFile("src/b.yml", `- id: create:cogwheel`)
		env.writeFile("src/readme.md", "not an entry file")

		out := env.run("import", "src")
		env.contains(out, "Imported 7 entries from 2 file(s)")
	})

	t.Run("hidden files skipped", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("src/a.yaml", `- id: minecraft:stick`)
		env.writeFile("src/.hidden/b.yaml", `- id: minecraft:secret`)

		env.run("import", "src")
		_, err := env.runErr("show", "minecraft:secret")
		assert.Error(t, err)

		env.run("import", "src", "--include-hidden", "--replace")
		env.run("show", "minecraft:secret")
	})

	t.Run("stdin", func(t *testing.T) {
		env := newTestEnv(t)

		env.runStdin(itemsYAML, "import", "-", "--format", "yaml")

		out := env.run("ls", "create", "-1")
		assert.Equal(t, []string{"create:shaft", "create:andesite_alloy"}, lines(out))
	})

	t.Run("stdin needs format", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runStdinErr(itemsYAML, "import", "-")
		assert.Error(t, err)
		env.contains(out, "requires --format")
	})

	t.Run("dry run stores nothing", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("items.yaml", itemsYAML)

		out := env.run("import", "items.yaml", "--dry-run")
		env.contains(out, "Would import")
		env.contains(out, "6 entries valid in 1 file(s)")

		out = env.run("ls")
		env.equals(out, "")
	})

	t.Run("no entry files", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("src/readme.md", "nothing")

		out := env.run("import", "src")
		env.contains(out, "No entry files found")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("items.yaml", itemsYAML)

		out := env.stdout("import", "items.yaml", "-o", "json")
		var r struct {
			Files    []string `json:"files"`
			Imported int      `json:"imported"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, 6, r.Imported)
		assert.Len(t, r.Files, 1)
	})
}

func TestImport_Errors(t *testing.T) {
	t.Run("duplicate id without replace", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		_, err := env.runErr("import", "items.yaml")
		assert.Error(t, err)
	})

	t.Run("replace keeps position", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		env.writeFile("stick.yaml", "- id: minecraft:stick\n  name: Wooden Stick\n")

		env.run("import", "stick.yaml", "--replace")

		out := env.run("ls", "-1")
		assert.Equal(t, "minecraft:stick", lines(out)[0])
		out = env.run("show", "minecraft:stick")
		env.contains(out, "Wooden Stick")
	})

	t.Run("invalid entry stores nothing from file", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("bad.yaml", "- id: minecraft:stick\n- id: \"\"\n")

		_, err := env.runErr("import", "bad.yaml")
		assert.Error(t, err)

		out := env.run("ls")
		env.equals(out, "")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("bad.yaml", "- id: [unterminated\n")

		_, err := env.runErr("import", "bad.yaml")
		assert.Error(t, err)
	})

	t.Run("missing source", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("import", "nope.yaml")
		assert.Error(t, err)
	})
}
