package models

import (
	"path"
	"strings"
)

// FileMode is the git mode used for every published blob.
const FileMode = "100644"

// LocalFile represents one vault file collected for a sync run.
// Exactly one of Content/Binary is populated, selected by IsText.
type LocalFile struct {
	VaultPath string `json:"vault_path"`
	RepoPath  string `json:"repo_path"`
	Content   string `json:"content,omitempty"`
	Binary    []byte `json:"binary,omitempty"`
	IsText    bool   `json:"is_text"`
}

// Bytes returns the file content as raw bytes regardless of kind.
func (f *LocalFile) Bytes() []byte {
	if f.IsText {
		return []byte(f.Content)
	}
	return f.Binary
}

// RepoPathFor maps a vault-relative path into the target repo folder.
// With an empty folder the vault path is used as-is.
func RepoPathFor(folder, vaultPath string) string {
	vaultPath = strings.TrimPrefix(path.Clean("/"+vaultPath), "/")
	if folder == "" {
		return vaultPath
	}
	return folder + "/" + vaultPath
}

// TreeOperation is one entry of the tree-creation request. A DeleteOp
// entry is sent with a null SHA, the git data API convention for
// removing a path from the base tree.
type TreeOperation struct {
	Path string
	Mode string
	Kind OpKind
	SHA  string
}

// OpKind classifies a tree operation.
type OpKind string

const (
	BlobOp   OpKind = "blob"
	DeleteOp OpKind = "delete"
)

// ForceUpdateSHA marks a remote entry whose SHA was absent or malformed
// in the tree listing. It can never equal a computed blob hash, so the
// local file is always re-uploaded instead of silently matching.
const ForceUpdateSHA = "!unknown"

// RemoteTree maps repo paths to remote blob SHAs for the current run.
type RemoteTree struct {
	entries map[string]string
}

// NewRemoteTree creates an empty remote tree map.
func NewRemoteTree() *RemoteTree {
	return &RemoteTree{entries: make(map[string]string)}
}

// Set records the SHA for a path. Keys are unique.
func (t *RemoteTree) Set(repoPath, sha string) {
	t.entries[repoPath] = sha
}

// Get returns the SHA for a path and whether the path exists remotely.
func (t *RemoteTree) Get(repoPath string) (string, bool) {
	sha, ok := t.entries[repoPath]
	return sha, ok
}

// Len returns the number of remote entries.
func (t *RemoteTree) Len() int {
	return len(t.entries)
}

// Paths returns all remote paths in unspecified order.
func (t *RemoteTree) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for p := range t.entries {
		paths = append(paths, p)
	}
	return paths
}
