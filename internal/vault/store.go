// Package vault reads the local document vault the publisher mirrors.
package vault

// EntryKind classifies the result of resolving a vault path.
type EntryKind int

const (
	KindAbsent EntryKind = iota
	KindFile
	KindFolder
)

// Entry is one child of a vault folder.
type Entry struct {
	Name string
	Kind EntryKind
}

// Store is the hierarchical file store the walker traverses. Paths are
// vault-relative, forward-slash separated.
type Store interface {
	// Stat resolves a path to a file, a folder, or absent. Absent is
	// not an error.
	Stat(path string) (EntryKind, error)

	// List returns the children of a folder, sorted by name.
	List(dir string) ([]Entry, error)

	// Read returns the full content of a file.
	Read(path string) ([]byte, error)
}
