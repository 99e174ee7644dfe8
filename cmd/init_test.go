package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("basic init", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init")

		assert.DirExists(t, filepath.Join(env.dir, ".facet"))
		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet.db"))
		// init creates the repository only; config is written by "facet config"
		assert.NoFileExists(t, filepath.Join(env.dir, ".facet", "config.yaml"))
		env.contains(out, "Initialised facet catalog in .facet/facet.db")
	})

	t.Run("json output", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.stdout("init", "-o", "json")
		env.contains(out, `"catalog":".facet/facet.db"`)
		env.contains(out, `"local":false`)
	})
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.runErr("init")
	assert.Error(t, err)
}

func TestInit_Force(t *testing.T) {
	env := newTestEnv(t)
	env.run("add", "minecraft:stick")

	env.run("init", "--force")
	assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet.db"))

	// Reinitialising starts from an empty catalog
	out := env.run("ls")
	assert.NotContains(t, out, "minecraft:stick")
}

func TestInit_DirAndLocalIncompatible(t *testing.T) {
	// --local edits this project's .gitignore, which has nothing to do
	// with a catalog created under --dir.
	env := newBareEnv(t)
	target := t.TempDir()

	out, err := env.runErr("init", "--dir", target, "--local")
	assert.Error(t, err, "init --dir --local should fail")
	env.contains(out, "cannot use --local with --dir")
}

func TestInit_Dir(t *testing.T) {
	env := newBareEnv(t)
	target := t.TempDir()

	env.run("init", "--dir", target)

	assert.FileExists(t, filepath.Join(target, ".facet", "facet.db"))
	assert.NoFileExists(t, filepath.Join(env.dir, ".facet", "facet.db"))

	env.run("add", "minecraft:stick", "--dir", target)
	out := env.run("ls", "--dir", target)
	env.contains(out, "minecraft:stick")
}

func TestInit_DirNotInitialised(t *testing.T) {
	env := newBareEnv(t)
	out, err := env.runErr("ls", "--dir", t.TempDir())
	assert.Error(t, err)
	env.contains(out, "not initialised")
}

func TestInit_DB(t *testing.T) {
	t.Run("creates named catalog", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init", "--db", "mods")

		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet-mods.db"))
		env.contains(out, "facet-mods.db")
	})

	t.Run("multiple catalogs coexist", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("init", "--db", "notes")

		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet.db"))
		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet-notes.db"))
	})

	t.Run("FACET_DB env var", func(t *testing.T) {
		env := newBareEnv(t)
		c := env.command("init")
		c.Env = append(c.Env, "FACET_DB=env-test")
		out, err := c.CombinedOutput()
		require.NoError(t, err, "init with FACET_DB failed: %s", out)

		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet-env-test.db"))
		assert.Contains(t, string(out), "facet-env-test.db")
	})

	t.Run("flag overrides env var", func(t *testing.T) {
		env := newBareEnv(t)
		c := env.command("init", "--db", "flag-value")
		c.Env = append(c.Env, "FACET_DB=env-value")
		out, err := c.CombinedOutput()
		require.NoError(t, err, "init failed: %s", out)

		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet-flag-value.db"))
		assert.NoFileExists(t, filepath.Join(env.dir, ".facet", "facet-env-value.db"))
	})

	t.Run("commands use correct catalog", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("init", "--db", "other")

		env.run("add", "minecraft:stick")
		env.run("add", "create:shaft", "--db", "other")

		out := env.run("ls")
		env.contains(out, "minecraft:stick")
		assert.NotContains(t, out, "create:shaft")

		out = env.run("ls", "--db", "other")
		env.contains(out, "create:shaft")
		assert.NotContains(t, out, "minecraft:stick")
	})

	t.Run("local flag adds to gitignore", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init", "--db", "notes", "--local")

		assert.FileExists(t, filepath.Join(env.dir, ".facet", "facet-notes.db"))

		gitignore, err := os.ReadFile(filepath.Join(env.dir, ".facet", ".gitignore"))
		require.NoError(t, err)
		assert.Contains(t, string(gitignore), "facet-notes.db")
	})
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)
	_, err := env.runErr("search", "oak")
	assert.Error(t, err)

	// Storeless commands work without a catalog
	out := env.run("matchers")
	env.contains(out, "identifier")
	env.run("version")
}
