package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mushinako/uniqfiles/internal/dup"
	"github.com/Mushinako/uniqfiles/internal/scan"
)

func sampleDuplications() []dup.Duplication {
	return []dup.Duplication{
		{Fingerprint: scan.Fingerprint{Size: 10, MD5: "m", SHA1: "s"}, Paths: []string{"/a", "/b"}},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestJSONWriterWritesEachSinkIndependently(t *testing.T) {
	dir := t.TempDir()
	dupsPath := filepath.Join(dir, "dups.json")
	newFilesPath := filepath.Join(dir, "new.json")
	emptyDirsPath := filepath.Join(dir, "empty.json")

	w := JSONWriter{}
	if err := w.WriteDuplications(dupsPath, sampleDuplications()); err != nil {
		t.Fatalf("WriteDuplications: %v", err)
	}
	if err := w.WriteNewFiles(newFilesPath, []string{"/a"}); err != nil {
		t.Fatalf("WriteNewFiles: %v", err)
	}
	if err := w.WriteEmptyDirs(emptyDirsPath, []string{"/empty"}); err != nil {
		t.Fatalf("WriteEmptyDirs: %v", err)
	}

	dupsOut := readFile(t, dupsPath)
	if !strings.Contains(dupsOut, `"properties"`) || !strings.Contains(dupsOut, `"hashes"`) {
		t.Errorf("duplications output missing properties/hashes shape: %s", dupsOut)
	}
	if !strings.Contains(readFile(t, newFilesPath), "/a") {
		t.Error("new files sink missing expected path")
	}
	if !strings.Contains(readFile(t, emptyDirsPath), "/empty") {
		t.Error("empty dirs sink missing expected path")
	}
}

func TestYAMLWriterProducesValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dups.yaml")
	if err := (YAMLWriter{}).WriteDuplications(path, sampleDuplications()); err != nil {
		t.Fatalf("WriteDuplications: %v", err)
	}
	out := readFile(t, path)
	if !strings.Contains(out, "properties:") || !strings.Contains(out, "paths:") {
		t.Errorf("output missing expected keys: %s", out)
	}
}

func TestWriteWithEmptyPathIsNoOp(t *testing.T) {
	if err := (JSONWriter{}).WriteDuplications("", sampleDuplications()); err != nil {
		t.Fatalf("expected empty path to be a no-op, got error: %v", err)
	}
}

func TestForFormatFallsBackToJSON(t *testing.T) {
	if _, ok := ForFormat("nonsense").(JSONWriter); !ok {
		t.Error("expected ForFormat to fall back to JSONWriter for unknown formats")
	}
	if _, ok := ForFormat("yaml").(YAMLWriter); !ok {
		t.Error("expected ForFormat(\"yaml\") to return YAMLWriter")
	}
}
