package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("guide", "--raw")
		env.contains(out, "# facet")
		env.contains(out, "## Getting started")
		env.contains(out, "## Commands")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newBareEnv(t)

		out, err := env.runErr("guide", "nonexistent")
		assert.Error(t, err)
		env.contains(out, "Available:")
		env.contains(out, "search")
	})

	t.Run("json output", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.stdout("guide", "import", "-o", "json")
		env.contains(out, `"topic":"import"`)
		env.contains(out, `"content"`)
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		topic   string
		contain string
	}{
		{"search", "# Query syntax"},
		{"import", "# Entry files"},
	}

	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			env := newBareEnv(t)

			out := env.run("guide", tc.topic, "--raw")
			env.contains(out, tc.contain)
		})
	}
}
