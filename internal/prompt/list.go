package prompt

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is a template found on disk.
type Entry struct {
	Name string // relative path without extension, slash separated
	Dir  string // prompt directory it was found in
}

// List recursively scans promptDirs for .toml templates. A name found in
// several directories is reported once, from the directory that wins in
// Find. Missing directories are skipped.
func List(promptDirs []string) ([]Entry, error) {
	found := make(map[string]string)

	for _, promptDir := range promptDirs {
		if _, err := os.Stat(promptDir); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(promptDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".toml") {
				return nil
			}

			relPath, err := filepath.Rel(promptDir, path)
			if err != nil {
				return nil
			}
			name := filepath.ToSlash(strings.TrimSuffix(relPath, ".toml"))
			found[name] = promptDir
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	entries := make([]Entry, 0, len(found))
	for name, dir := range found {
		entries = append(entries, Entry{Name: name, Dir: dir})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
