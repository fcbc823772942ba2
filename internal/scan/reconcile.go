package scan

import (
	"context"
	"errors"
)

// Reconciler compares freshly discovered files against a baseline index
// keyed by path, reusing digests for files whose modification time has not
// changed and only rehashing the rest.
type Reconciler struct {
	baseline map[string]FileRecord
	seen     map[string]struct{}
	// hashBuf is the single ChunkBytes-sized buffer reused across every
	// HashFile call this Reconciler makes, rather than reallocated per file.
	hashBuf []byte
}

// NewReconciler builds a Reconciler over a baseline loaded from the
// persistent index (an empty or nil map means a full, baseline-less scan).
func NewReconciler(baseline map[string]FileRecord) *Reconciler {
	return &Reconciler{
		baseline: baseline,
		seen:     make(map[string]struct{}),
		hashBuf:  make([]byte, ChunkBytes),
	}
}

// Outcome classifies what Visit did with a single file.
type Outcome int

const (
	// Reused means the baseline's fingerprint was trusted without rehashing.
	Reused Outcome = iota
	// Hashed means the file was opened and hashed fresh.
	Hashed
	// Skipped means opening or hashing hit a recoverable I/O error; no
	// record was produced, but progress was still advanced by the file's
	// declared size so totals remain consistent.
	Skipped
)

// Visit reconciles a single discovered file against the baseline. mtime
// comparison is exact float equality, no epsilon, since the baseline's own
// mtime came from the same stat/archive-metadata source as the new
// observation. A recoverable open/hash failure (permission denied, not
// found, encrypted or unsupported-compression archive entry) is reported
// as Skipped with a nil error so the caller can continue walking the rest
// of the tree; any other failure, or cancellation, is returned as an error
// instead.
func (r *Reconciler) Visit(ctx context.Context, f FileNode, progress *Progress) (FileRecord, Outcome, error) {
	path := f.Path()
	r.seen[path] = struct{}{}
	size := f.Size()
	mtime := f.MTime()

	if existing, ok := r.baseline[path]; ok && existing.MTime == mtime {
		if progress != nil {
			progress.Advance(size)
		}
		return existing, Reused, nil
	}

	rc, err := f.Open()
	if err != nil {
		if !isRecoverableFileError(err) {
			return FileRecord{}, Skipped, err
		}
		if progress != nil {
			progress.Advance(size)
		}
		return FileRecord{}, Skipped, nil
	}
	defer rc.Close()

	var currentBefore uint64
	if progress != nil {
		currentBefore = progress.Current
	}
	md5Hex, sha1Hex, err := HashFile(ctx, rc, progress, r.hashBuf)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return FileRecord{}, Skipped, err
		}
		if !isRecoverableFileError(err) {
			return FileRecord{}, Skipped, err
		}
		if progress != nil {
			// Chunks read before the failure were already accounted for.
			if advanced := progress.Current - currentBefore; advanced < size {
				progress.Advance(size - advanced)
			}
		}
		return FileRecord{}, Skipped, nil
	}

	record := FileRecord{
		Path:  path,
		Size:  size,
		MTime: mtime,
		MD5:   md5Hex,
		SHA1:  sha1Hex,
	}
	return record, Hashed, nil
}

// Removed reports the baseline paths that were never visited this run —
// candidates for deletion from the persistent index. If the scan was
// cancelled before completing a full traversal, the caller must pass
// cancelled=true, which suppresses this list entirely: a partial traversal
// must never be mistaken for evidence that unvisited paths were deleted.
func (r *Reconciler) Removed(cancelled bool) []string {
	if cancelled {
		return nil
	}
	var removed []string
	for path := range r.baseline {
		if _, ok := r.seen[path]; !ok {
			removed = append(removed, path)
		}
	}
	return removed
}
