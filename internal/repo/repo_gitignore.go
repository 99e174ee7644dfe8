// repo_gitignore.go marks catalogs as local (gitignored) or shared.
//
// A shared catalog is committed so a team searches the same entries; a local
// catalog holds scratch imports. Existing .gitignore content is preserved;
// only the catalog's own line and the local section header change.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local catalogs (not committed)"

// gitignore locates and reads .facet/.gitignore. Lines are returned as
// written; callers compare trimmed values.
func gitignore(dir string) (path string, lines []string, err error) {
	if dir == "" {
		if dir, err = DiscoverDir(); err != nil {
			return "", nil, err
		}
	}
	path = filepath.Join(dir, ".gitignore")
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, strings.Split(string(content), "\n"), nil
}

func hasLine(lines []string, want string) bool {
	return slices.ContainsFunc(lines, func(l string) bool { return strings.TrimSpace(l) == want })
}

// IgnoreDB adds a catalog to the gitignore (marks it local).
// If dir is empty, the .facet directory is discovered.
func IgnoreDB(name, dir string) error {
	path, lines, err := gitignore(dir)
	if err != nil {
		return err
	}
	dbFile := DBFileName(name)
	if hasLine(lines, dbFile) {
		return nil
	}

	content := strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	if !hasLine(lines, localDBHeader) {
		content += "\n" + localDBHeader + "\n"
	}
	content += dbFile + "\n"
	return os.WriteFile(path, []byte(content), 0644)
}

// UnignoreDB removes a catalog from the gitignore (marks it shared).
// The local section header goes once no local catalog remains.
func UnignoreDB(name, dir string) error {
	path, lines, err := gitignore(dir)
	if err != nil {
		return err
	}
	dbFile := DBFileName(name)

	var out []string
	localLeft := false
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == dbFile {
			continue
		}
		if strings.HasSuffix(t, ".db") {
			localLeft = true
		}
		out = append(out, l)
	}
	if !localLeft {
		out = slices.DeleteFunc(out, func(l string) bool { return strings.TrimSpace(l) == localDBHeader })
	}

	content := strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
	return os.WriteFile(path, []byte(content), 0644)
}

// IsIgnored reports whether a catalog is gitignored.
func IsIgnored(name, dir string) (bool, error) {
	_, lines, err := gitignore(dir)
	if err != nil {
		return false, err
	}
	return hasLine(lines, DBFileName(name)), nil
}
