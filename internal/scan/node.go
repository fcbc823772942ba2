package scan

import "time"

// Node is a node in the scan tree: a closed set of concrete struct types
// satisfying a shared interface. Per-variant behavior (listing, opening,
// metadata extraction) lives on each struct; shared behavior (aggregate
// stats, recursive processing) lives once in tree.go and driver.go
// dispatching on the interface.
type Node interface {
	// Path is the full path string used for display, whitelist matching,
	// and index keys.
	Path() string
	// Size is the node's content size in bytes: the file's size, or the sum
	// of a directory's admitted descendants.
	Size() uint64
	// MTime is the node's modification time: the file's mtime from stat/
	// archive metadata, or the directory's construction wall time.
	MTime() float64
	// Length is 1 for files, or the sum of descendant lengths for
	// directories.
	Length() int
	// IsDir reports whether this node is directory-like (FsDir or any
	// archive node that behaves as a directory over its contents).
	IsDir() bool
}

// DirNode is implemented by every directory-like Node (FsDir, ArchiveRoot
// and ArchiveDir): each admits a further traversal via Children and expose the
// filtered counts and raw-empty flag used for empty-directory reporting.
type DirNode interface {
	Node
	// Children are the admitted child nodes, in the order they were
	// constructed: files before subdirectories, each group in lexicographic
	// basename order.
	Children() []Node
	// FilteredDirCount and FilteredFileCount count children excluded by the
	// whitelist, for diagnostics.
	FilteredDirCount() int
	FilteredFileCount() int
	// RawEmpty reports whether the underlying listing (before any
	// whitelist filtering) produced zero entries at all — the condition
	// for appearing in the empty-directories list, distinct from "no
	// admitted children".
	RawEmpty() bool
}

// FileNode is implemented by every file-like Node (FsFile and ArchiveFile).
// ArchiveRoot is not a FileNode: it is only ever traversed as a directory.
type FileNode interface {
	Node
	// Open returns a stream over the file's bytes for hashing, plus a
	// closer that must always be called. Opening can fail with a
	// recoverable I/O error.
	Open() (ReadCloser, error)
}

// ReadCloser is the minimal interface the chunked hasher needs from an open
// file-like source.
type ReadCloser interface {
	Read(p []byte) (int, error)
	Close() error
}

// --- FsDir ---------------------------------------------------------------

// FsDir is a filesystem directory.
type FsDir struct {
	path     string
	size     uint64
	mtime    float64
	length   int
	children []Node
	filteredDirs,
	filteredFiles int
	rawEmpty bool
}

func (n *FsDir) Path() string           { return n.path }
func (n *FsDir) Size() uint64           { return n.size }
func (n *FsDir) MTime() float64         { return n.mtime }
func (n *FsDir) Length() int            { return n.length }
func (n *FsDir) IsDir() bool            { return true }
func (n *FsDir) Children() []Node       { return n.children }
func (n *FsDir) FilteredDirCount() int  { return n.filteredDirs }
func (n *FsDir) FilteredFileCount() int { return n.filteredFiles }
func (n *FsDir) RawEmpty() bool         { return n.rawEmpty }

// --- FsFile ----------------------------------------------------------------

// FsFile is a filesystem regular file.
type FsFile struct {
	path  string
	size  uint64
	mtime float64
}

func (n *FsFile) Path() string   { return n.path }
func (n *FsFile) Size() uint64   { return n.size }
func (n *FsFile) MTime() float64 { return n.mtime }
func (n *FsFile) Length() int    { return 1 }
func (n *FsFile) IsDir() bool    { return false }

func (n *FsFile) Open() (ReadCloser, error) {
	return openFsFile(n.path)
}

// statMTime converts a time.Time into the floating-point seconds-since-epoch
// representation used throughout the data model.
func statMTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
