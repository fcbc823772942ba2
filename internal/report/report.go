// Package report serializes scan report sinks for external consumption:
// duplicate groups, newly discovered files, and empty directories, each
// written independently so a caller can request any combination of them.
package report

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Mushinako/uniqfiles/internal/dup"
)

// duplicationEntry is the external shape of one Duplication: a properties
// object carrying the shared fingerprint, and the paths that share it.
type duplicationEntry struct {
	Properties struct {
		Size   uint64 `json:"size" yaml:"size"`
		Hashes struct {
			MD5  string `json:"md5" yaml:"md5"`
			SHA1 string `json:"sha1" yaml:"sha1"`
		} `json:"hashes" yaml:"hashes"`
	} `json:"properties" yaml:"properties"`
	Paths []string `json:"paths" yaml:"paths"`
}

func toDuplicationEntries(dups []dup.Duplication) []duplicationEntry {
	entries := make([]duplicationEntry, len(dups))
	for i, d := range dups {
		entries[i].Properties.Size = d.Fingerprint.Size
		entries[i].Properties.Hashes.MD5 = d.Fingerprint.MD5
		entries[i].Properties.Hashes.SHA1 = d.Fingerprint.SHA1
		entries[i].Paths = d.Paths
	}
	return entries
}

// Writer serializes each report sink independently to the path given to it.
// An empty path is a no-op: the caller only asked for the sinks it passed
// non-empty paths for.
type Writer interface {
	WriteDuplications(path string, dups []dup.Duplication) error
	WriteNewFiles(path string, paths []string) error
	WriteEmptyDirs(path string, paths []string) error
}

func writeToFile(path string, encode func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encode(f)
}

// JSONWriter renders each sink as indented JSON.
type JSONWriter struct{}

func (JSONWriter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (j JSONWriter) WriteDuplications(path string, dups []dup.Duplication) error {
	return writeToFile(path, func(w io.Writer) error { return j.encode(w, toDuplicationEntries(dups)) })
}

func (j JSONWriter) WriteNewFiles(path string, paths []string) error {
	return writeToFile(path, func(w io.Writer) error { return j.encode(w, paths) })
}

func (j JSONWriter) WriteEmptyDirs(path string, paths []string) error {
	return writeToFile(path, func(w io.Writer) error { return j.encode(w, paths) })
}

// YAMLWriter renders each sink as YAML.
type YAMLWriter struct{}

func (YAMLWriter) encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

func (y YAMLWriter) WriteDuplications(path string, dups []dup.Duplication) error {
	return writeToFile(path, func(w io.Writer) error { return y.encode(w, toDuplicationEntries(dups)) })
}

func (y YAMLWriter) WriteNewFiles(path string, paths []string) error {
	return writeToFile(path, func(w io.Writer) error { return y.encode(w, paths) })
}

func (y YAMLWriter) WriteEmptyDirs(path string, paths []string) error {
	return writeToFile(path, func(w io.Writer) error { return y.encode(w, paths) })
}

// ForFormat resolves a --format flag value to a Writer. An unrecognized
// format falls back to JSON.
func ForFormat(format string) Writer {
	if format == "yaml" {
		return YAMLWriter{}
	}
	return JSONWriter{}
}
