package scan

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// archiveExtensions is the set of archive filename suffixes whose files are
// probe-opened and, on success, expanded as an ArchiveRoot. Currently only
// ".zip" is registered.
var archiveExtensions = map[string]bool{
	".zip": true,
}

// IsRegisteredArchiveExtension reports whether suffix names a recognized
// archive type.
func IsRegisteredArchiveExtension(suffix string) bool {
	return archiveExtensions[suffix]
}

func errWrap(sentinel, cause error) error {
	return &wrappedError{sentinel: sentinel, cause: cause}
}

type wrappedError struct {
	sentinel error
	cause    error
}

func (e *wrappedError) Error() string { return e.sentinel.Error() + ": " + e.cause.Error() }
func (e *wrappedError) Is(target error) bool {
	return target == e.sentinel
}
func (e *wrappedError) Unwrap() error { return e.cause }

// zipIndex is a flattened, directory-aware view over a zip archive's
// central directory, built once when the archive root is constructed. An
// archive-internal path is treated as a directory when some other entry
// nests strictly under it, even without an explicit directory entry.
type zipIndex struct {
	// childrenOf maps an internal directory path ("" for the archive root)
	// to the sorted basenames of its immediate children.
	childrenOf map[string][]string
	// dirSet holds every internal path (explicit or implied) that behaves
	// as a directory.
	dirSet map[string]bool
	// fileEntries maps an internal file path to its zip.File record.
	fileEntries map[string]*zip.File
}

func buildZipIndex(files []*zip.File) *zipIndex {
	idx := &zipIndex{
		childrenOf:  make(map[string][]string),
		dirSet:      make(map[string]bool),
		fileEntries: make(map[string]*zip.File),
	}
	seen := make(map[string]bool)
	addChild := func(parent, child string) {
		key := parent + "\x00" + child
		if seen[key] {
			return
		}
		seen[key] = true
		idx.childrenOf[parent] = append(idx.childrenOf[parent], child)
	}

	for _, f := range files {
		name := strings.TrimSuffix(f.Name, "/")
		if name == "" {
			continue
		}
		if strings.HasSuffix(f.Name, "/") {
			idx.dirSet[name] = true
		} else {
			idx.fileEntries[name] = f
		}

		parts := strings.Split(name, "/")
		for i := len(parts); i >= 1; i-- {
			cur := strings.Join(parts[:i], "/")
			parent := ""
			if i > 1 {
				parent = strings.Join(parts[:i-1], "/")
			}
			if i < len(parts) {
				idx.dirSet[cur] = true
			}
			addChild(parent, parts[i-1])
		}
	}

	for k := range idx.childrenOf {
		sort.Strings(idx.childrenOf[k])
	}
	return idx
}

func (idx *zipIndex) isDir(internalPath string) bool {
	return idx.dirSet[internalPath] || internalPath == ""
}

func join(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "/" + child
}

// --- ArchiveRoot -----------------------------------------------------------

// ArchiveRoot is a filesystem file recognized as an archive, simultaneously
// behaving as a directory rooted at "" over its contents. It satisfies
// DirNode, not FileNode: it is never itself hashed, only its aggregate size
// contributes to its parent's accounting.
type ArchiveRoot struct {
	fsPath   string
	size     uint64
	mtime    float64
	length   int
	children []Node
	filteredDirs,
	filteredFiles int
	rawEmpty bool
}

func (n *ArchiveRoot) Path() string           { return n.fsPath }
func (n *ArchiveRoot) Size() uint64           { return n.size }
func (n *ArchiveRoot) MTime() float64         { return n.mtime }
func (n *ArchiveRoot) Length() int            { return n.length }
func (n *ArchiveRoot) IsDir() bool            { return true }
func (n *ArchiveRoot) Children() []Node       { return n.children }
func (n *ArchiveRoot) FilteredDirCount() int  { return n.filteredDirs }
func (n *ArchiveRoot) FilteredFileCount() int { return n.filteredFiles }
func (n *ArchiveRoot) RawEmpty() bool         { return n.rawEmpty }

// --- ArchiveDir --------------------------------------------------------------

// ArchiveDir is a directory internal to an archive.
type ArchiveDir struct {
	rootFsPath   string
	internalPath string
	size         uint64
	mtime        float64
	length       int
	children     []Node
	filteredDirs,
	filteredFiles int
	rawEmpty bool
}

func (n *ArchiveDir) Path() string           { return archivePath(n.rootFsPath, n.internalPath) }
func (n *ArchiveDir) Size() uint64           { return n.size }
func (n *ArchiveDir) MTime() float64         { return n.mtime }
func (n *ArchiveDir) Length() int            { return n.length }
func (n *ArchiveDir) IsDir() bool            { return true }
func (n *ArchiveDir) Children() []Node       { return n.children }
func (n *ArchiveDir) FilteredDirCount() int  { return n.filteredDirs }
func (n *ArchiveDir) FilteredFileCount() int { return n.filteredFiles }

// RawEmpty reports whether this directory's internal listing (an explicit
// zip entry such as "foo/" with nothing nested under it) was empty before
// whitelist filtering — an archive directory can legitimately be empty this
// way when it was created by an archiver that preserves empty directories.
func (n *ArchiveDir) RawEmpty() bool { return n.rawEmpty }

// --- ArchiveFile -------------------------------------------------------------

// ArchiveFile is a file internal to an archive. Its archive handle is not
// held open; Open reopens the parent archive transiently, scoped to
// hashing this single file.
type ArchiveFile struct {
	rootFsPath   string
	internalPath string
	size         uint64
	mtime        float64
}

func (n *ArchiveFile) Path() string   { return archivePath(n.rootFsPath, n.internalPath) }
func (n *ArchiveFile) Size() uint64   { return n.size }
func (n *ArchiveFile) MTime() float64 { return n.mtime }
func (n *ArchiveFile) Length() int    { return 1 }
func (n *ArchiveFile) IsDir() bool    { return false }

func (n *ArchiveFile) Open() (ReadCloser, error) {
	r, err := zip.OpenReader(n.rootFsPath)
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if strings.TrimSuffix(f.Name, "/") == n.internalPath {
			rc, openErr := f.Open()
			if openErr != nil {
				r.Close()
				return nil, openErr
			}
			return &archiveEntryReader{entry: rc, archive: r}, nil
		}
	}
	r.Close()
	return nil, os.ErrNotExist
}

// archiveEntryReader closes both the decompressing entry reader and the
// archive handle it was opened from, so Open()/Close() pairs remain scoped
// to a single bounded operation even though two separate handles are
// involved under the hood.
type archiveEntryReader struct {
	entry   io.ReadCloser
	archive *zip.ReadCloser
}

func (r *archiveEntryReader) Read(p []byte) (int, error) {
	return r.entry.Read(p)
}

func (r *archiveEntryReader) Close() error {
	err := r.entry.Close()
	if archErr := r.archive.Close(); archErr != nil && err == nil {
		err = archErr
	}
	return err
}

// archivePath renders the stable, run-over-run path string for content
// internal to an archive: the archive's filesystem path, the OS path
// separator, then the archive-internal slash path. The separator is fixed
// (not the archive library's own rendering) so baseline index matches stay
// stable regardless of library version.
func archivePath(rootFsPath, internalPath string) string {
	return rootFsPath + string(os.PathSeparator) + internalPath
}

// isUnsupportedZipEntry reports whether err, returned from opening or
// reading a zip entry, represents an encrypted entry or an unsupported
// compression method rather than an unexpected failure.
func isUnsupportedZipEntry(err error) bool {
	return errors.Is(err, zip.ErrAlgorithm) || errors.Is(err, zip.ErrChecksum)
}

// zipMTime converts a zip entry's recorded modification time to the
// floating-point seconds-since-epoch representation used throughout.
func zipMTime(t time.Time) float64 {
	return statMTime(t)
}
