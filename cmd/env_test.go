// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> service layer -> search engine -> store layer -> SQLite.
//
// The query engine (internal/search and its matchers) has its own unit tests;
// the tests here check that each command wires flags, output modes and exit
// codes correctly around it. Every test runs the real binary in a temporary
// directory with HOME pointed inside it, so global config and the audit log
// never touch the developer's home directory.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the facet binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "facet-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "facet"
		if os.PathSeparator == '\\' {
			binaryName = "facet.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised catalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

// newBareEnv creates a temporary directory without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	require.NoError(t, os.MkdirAll(home, 0755))

	return &testEnv{t: t, dir: dir, home: home, binary: buildBinary(t)}
}

// command prepares a facet invocation inside the test directory.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"FACET_DB=",
		"FACET_DIR=",
	)
	return cmd
}

// run executes facet with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("facet %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes facet and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes facet with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("facet %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes facet with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// stdout executes facet and returns stdout alone, for JSON decoding.
func (e *testEnv) stdout(args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	out, err := cmd.Output()
	if err != nil {
		e.t.Fatalf("facet %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// writeFile writes content to a file relative to the test directory.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// seed imports the standard fixture catalog.
func (e *testEnv) seed() {
	e.t.Helper()
	e.writeFile("items.yaml", itemsYAML)
	e.run("import", "items.yaml")
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// lines splits output into trimmed non-empty lines.
func lines(output string) []string {
	var out []string
	for _, l := range strings.Split(output, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// itemsYAML is a small catalog spanning two namespaces. Order matters:
// search results follow catalog order.
const itemsYAML = `- id: minecraft:stick
  name: Stick
  namespace_name: Minecraft
  tooltip: [Crafting material]
  tags: [c:rods/wooden, minecraft:sticks]
- id: minecraft:oak_log
  name: Oak Log
  namespace_name: Minecraft
  tags: [minecraft:logs, minecraft:oak_logs]
- id: minecraft:oak_planks
  name: Oak Planks
  namespace_name: Minecraft
  tags: [minecraft:planks]
- id: minecraft:diamond
  name: Diamond
  namespace_name: Minecraft
  tooltip: [Shiny]
  tags: [c:gems/diamond, c:gems]
- id: create:shaft
  name: Shaft
  namespace_name: Create
  tooltip: [Transmits rotation]
- id: create:andesite_alloy
  name: Andesite Alloy
  namespace_name: Create
  tags: [c:ingots/andesite_alloy]
`
