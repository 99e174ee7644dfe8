package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "author.name", "Test User")

		out := env.run("config", "author.name")
		env.contains(out, "Test User")
	})

	t.Run("get all shows defaults", func(t *testing.T) {
		env := newTestEnv(t)

		// Every key is listed even without explicit values
		out := env.run("config")
		env.contains(out, "author.name")
		env.contains(out, "search.prefilter: true")
		env.contains(out, "search.mod.prefix: @")
		env.contains(out, "search.text.mode: always")
		env.contains(out, "limits.max_results")
	})

	t.Run("local scope writes project config", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "author.name", "Local User", "--local")
		env.contains(out, "author.name = Local User (local)")
		assert.FileExists(t, filepath.Join(env.dir, ".facet", "config.yaml"))
	})

	t.Run("global scope writes home config", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "author.name", "Global User", "--global")
		env.contains(out, "(global)")
		assert.FileExists(t, filepath.Join(env.home, ".facet", "config.yaml"))
	})

	t.Run("local and global together", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("config", "--local", "--global")
		assert.Error(t, err)
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"author name", "author.name", "New Name"},
		{"author email", "author.email", "new@example.com"},
		{"prefilter off", "search.prefilter", "false"},
		{"tag prefix", "search.tag.prefix", "%"},
		{"regex mode", "search.regex.mode", "never"},
		{"max results", "limits.max_results", "25"},
		{"max query", "limits.max_query", "512"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.run("config", tc.key, tc.value, "--local")

			out := env.run("config", tc.key)
			env.equals(out, tc.value)
		})
	}
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid key", "invalid.key", "value"},
		{"unknown matcher", "search.colour.mode", "always"},
		{"invalid mode", "search.tag.mode", "sometimes"},
		{"invalid prefilter", "search.prefilter", "maybe"},
		{"prefix with space", "search.tag.prefix", "a b"},
		{"prefix is separator", "search.tag.prefix", "|"},
		{"max results negative", "limits.max_results", "lots"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.runErr("config", tc.key, tc.value, "--local")
			assert.Error(t, err)
		})
	}
}

func TestConfig_ChangesMatching(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	env.run("config", "search.tag.prefix", "%", "--local")

	out := env.run("search", "%gems", "-l")
	env.equals(out, "minecraft:diamond")

	out = env.run("matchers")
	env.contains(out, "%")
}
