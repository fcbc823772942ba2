package scan

import (
	"errors"
	"io/fs"
	"os"
)

// openFsFile opens a filesystem file for hashing. Permission-denied and
// not-found errors are recoverable; any other error propagates.
func openFsFile(path string) (ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// isRecoverableOpenError reports whether err represents a condition that is
// non-fatal for a single file (permission denied or not found), versus an
// error that should propagate as unexpected.
func isRecoverableOpenError(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist)
}

// isRecoverableFileError extends isRecoverableOpenError with the
// archive-specific conditions also treated as recoverable for a single
// file: an encrypted entry or an unsupported compression method.
func isRecoverableFileError(err error) bool {
	return isRecoverableOpenError(err) || isUnsupportedZipEntry(err)
}
