package scan

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/Mushinako/uniqfiles/internal/whitelist"
)

// BuildTree recursively constructs the scan tree rooted at basePath.
// basePath must denote a filesystem directory; everything beneath it is
// classified, whitelist-filtered, and wrapped as a Node, recursively
// expanding any admitted archive roots along the way.
func BuildTree(basePath string, wl *whitelist.Whitelist) (DirNode, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}
	return buildFsDir(basePath, wl)
}

func buildFsDir(path string, wl *whitelist.Whitelist) (*FsDir, error) {
	entries, err := os.ReadDir(path)
	dir := &FsDir{path: path, mtime: statMTime(time.Now())}
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			dir.rawEmpty = true
			return dir, nil
		}
		return nil, err
	}
	dir.rawEmpty = len(entries) == 0

	var fileChildren, dirChildren []Node
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}
		childPath := filepath.Join(path, entry.Name())

		if entry.IsDir() {
			if !wl.AdmitDir(entry.Name(), childPath) {
				dir.filteredDirs++
				continue
			}
			child, err := buildFsDir(childPath, wl)
			if err != nil {
				return nil, err
			}
			dirChildren = append(dirChildren, child)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if IsRegisteredArchiveExtension(ext) {
			archNode, err := buildArchiveRoot(childPath, wl)
			if err == nil {
				if !wl.AdmitDir(entry.Name(), childPath) {
					dir.filteredDirs++
					continue
				}
				fileChildren = append(fileChildren, archNode)
				continue
			}
			if !errors.Is(err, ErrInvalidArchive) {
				return nil, err
			}
			// Probe failed: reclassify as a regular file, subject to
			// file-name/path rules instead of dir rules.
			if !wl.AdmitFile(entry.Name(), childPath) {
				dir.filteredFiles++
				continue
			}
		} else if !wl.AdmitFile(entry.Name(), childPath) {
			dir.filteredFiles++
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			if isRecoverableOpenError(err) {
				continue
			}
			return nil, err
		}
		fileChildren = append(fileChildren, &FsFile{
			path:  childPath,
			size:  uint64(fileInfo.Size()),
			mtime: statMTime(fileInfo.ModTime()),
		})
	}

	dir.children = append(fileChildren, dirChildren...)
	for _, child := range dir.children {
		dir.size += child.Size()
		dir.length += child.Length()
	}
	return dir, nil
}

// buildArchiveRoot probes path as a zip archive and, on success, recursively
// expands its central directory into an ArchiveRoot subtree. A probe
// failure returns an error wrapping ErrInvalidArchive, signaling the caller
// to reclassify path as a regular file instead.
func buildArchiveRoot(path string, wl *whitelist.Whitelist) (*ArchiveRoot, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errWrap(ErrInvalidArchive, err)
	}
	defer r.Close()

	idx := buildZipIndex(r.File)
	children, filteredDirs, filteredFiles, rawEmpty := buildArchiveChildren(path, idx, "", wl)

	root := &ArchiveRoot{
		fsPath:        path,
		children:      children,
		filteredDirs:  filteredDirs,
		filteredFiles: filteredFiles,
		rawEmpty:      rawEmpty,
		mtime:         statMTime(time.Now()),
	}
	for _, child := range children {
		root.size += child.Size()
		root.length += child.Length()
	}
	return root, nil
}

func buildArchiveChildren(rootFsPath string, idx *zipIndex, at string, wl *whitelist.Whitelist) (children []Node, filteredDirs, filteredFiles int, rawEmpty bool) {
	names := idx.childrenOf[at]
	rawEmpty = len(names) == 0

	var fileChildren, dirChildren []Node
	for _, name := range names {
		internalPath := join(at, name)
		displayPath := archivePath(rootFsPath, internalPath)

		if idx.isDir(internalPath) {
			if !wl.AdmitDir(name, displayPath) {
				filteredDirs++
				continue
			}
			subChildren, fd, ff, subRawEmpty := buildArchiveChildren(rootFsPath, idx, internalPath, wl)
			dirNode := &ArchiveDir{
				rootFsPath:    rootFsPath,
				internalPath:  internalPath,
				children:      subChildren,
				filteredDirs:  fd,
				filteredFiles: ff,
				rawEmpty:      subRawEmpty,
				mtime:         statMTime(time.Now()),
			}
			for _, child := range subChildren {
				dirNode.size += child.Size()
				dirNode.length += child.Length()
			}
			dirChildren = append(dirChildren, dirNode)
			continue
		}

		if !wl.AdmitFile(name, displayPath) {
			filteredFiles++
			continue
		}
		entry, ok := idx.fileEntries[internalPath]
		if !ok {
			continue
		}
		fileChildren = append(fileChildren, &ArchiveFile{
			rootFsPath:   rootFsPath,
			internalPath: internalPath,
			size:         entry.UncompressedSize64,
			mtime:        zipMTime(entry.Modified),
		})
	}

	children = append(fileChildren, dirChildren...)
	return children, filteredDirs, filteredFiles, rawEmpty
}
