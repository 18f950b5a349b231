package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore serves a vault rooted at a directory on disk.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a store rooted at baseDir.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	absPath, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault directory: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat vault directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", baseDir)
	}

	return &LocalStore{baseDir: absPath}, nil
}

// resolve maps a vault-relative path onto disk, rejecting escapes.
func (s *LocalStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes vault: %s", path)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Stat resolves a path to a file, folder, or absent.
func (s *LocalStore) Stat(path string) (EntryKind, error) {
	full, err := s.resolve(path)
	if err != nil {
		return KindAbsent, err
	}

	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return KindAbsent, nil
	}
	if err != nil {
		return KindAbsent, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return KindFolder, nil
	}
	return KindFile, nil
}

// List returns folder children sorted by name.
func (s *LocalStore) List(dir string) ([]Entry, error) {
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		kind := KindFile
		if de.IsDir() {
			kind = KindFolder
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Read returns the full content of a file.
func (s *LocalStore) Read(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
