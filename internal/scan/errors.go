package scan

import "errors"

// ErrCancelled indicates that a scan was cancelled via context cancellation.
var ErrCancelled = errors.New("scan cancelled")

// ErrNotADirectory indicates that the base path does not denote a directory.
var ErrNotADirectory = errors.New("base path is not a directory")

// ErrInvalidArchive indicates that a candidate archive file failed its probe
// open (bad format, unsupported compression, or not found) and should be
// reclassified as a regular file.
var ErrInvalidArchive = errors.New("not a valid archive of this type")
