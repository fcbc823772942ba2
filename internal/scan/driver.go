package scan

import (
	"context"
	"errors"

	"github.com/Mushinako/uniqfiles/internal/whitelist"
)

// Options configures a single scan run.
type Options struct {
	// BasePath is the filesystem directory to scan.
	BasePath string
	// Whitelist excludes matching directories and files; nil admits
	// everything.
	Whitelist *whitelist.Whitelist
	// Baseline is the previously persisted index, keyed by path, used to
	// reuse digests for unchanged files. Nil performs a full scan with
	// nothing to reuse.
	Baseline map[string]FileRecord
	// OnProgress, if set, is called synchronously after each file is
	// visited (reused or freshly hashed), from the same goroutine driving
	// the walk — so a caller can render a status line without introducing
	// any concurrent access to Progress.
	OnProgress func(progress *Progress, path string)
}

// Result is everything a scan run produces.
type Result struct {
	// Records holds one FileRecord per admitted file, reused from the
	// baseline or freshly hashed.
	Records []FileRecord
	// NewPaths lists the paths that were freshly hashed this run (absent
	// from the baseline, or changed since it was written).
	NewPaths []string
	// EmptyDirs lists directory paths whose raw listing (before whitelist
	// filtering) had zero entries.
	EmptyDirs []string
	// Removed lists baseline paths that were not encountered this run, and
	// so are candidates for deletion from the persisted index. Always nil
	// if the run was cancelled or the walk stopped on an error.
	Removed []string
	// Progress is the final state of the byte accumulator; Progress.Done()
	// is true only when the traversal ran to completion uninterrupted.
	Progress *Progress
}

// Run builds the tree rooted at BasePath, computes its total size, walks
// it depth-first admitting files before subdirectories, reconciles each
// file against the baseline, collects empty directories along the way, and
// finally computes the removed-path set. It returns a partial Result
// alongside the error if the walk is cancelled or a file node is unreadable
// in a non-recoverable way.
func Run(ctx context.Context, opts Options) (*Result, error) {
	root, err := BuildTree(opts.BasePath, opts.Whitelist)
	if err != nil {
		return nil, err
	}

	progress := NewProgress(root.Size())
	reconciler := NewReconciler(opts.Baseline)
	result := &Result{Progress: progress}
	cancelled := false

	var walk func(n Node) error
	walk = func(n Node) error {
		select {
		case <-ctx.Done():
			cancelled = true
			return ErrCancelled
		default:
		}

		switch node := n.(type) {
		case DirNode:
			if node.RawEmpty() {
				result.EmptyDirs = append(result.EmptyDirs, node.Path())
			}
			for _, child := range node.Children() {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		case FileNode:
			record, outcome, err := reconciler.Visit(ctx, node, progress)
			if err != nil {
				if errors.Is(err, ErrCancelled) {
					cancelled = true
				}
				return err
			}
			if outcome == Skipped {
				if opts.OnProgress != nil {
					opts.OnProgress(progress, node.Path())
				}
				return nil
			}
			result.Records = append(result.Records, record)
			if outcome == Hashed {
				result.NewPaths = append(result.NewPaths, record.Path)
			}
			if opts.OnProgress != nil {
				opts.OnProgress(progress, record.Path)
			}
			return nil
		}
		return nil
	}

	walkErr := walk(root)
	result.Removed = reconciler.Removed(cancelled || walkErr != nil)
	if walkErr != nil {
		return result, walkErr
	}
	return result, nil
}
