package scan

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTestZip(t *testing.T, path string, files map[string]string, emptyDirs []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create(%s): %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip Write(%s): %v", name, err)
		}
	}
	for _, dirName := range emptyDirs {
		if _, err := zw.Create(dirName); err != nil {
			t.Fatalf("zip Create(dir %s): %v", dirName, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
}

// TestArchiveRootExpandsIntoTree checks that archive-internal content is
// discoverable and hashable the same way filesystem content is, with a
// stable rendered path joining the archive's filesystem path and its
// internal slash path.
func TestArchiveRootExpandsIntoTree(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "a.zip")
	writeTestZip(t, zipPath, map[string]string{
		"top.txt":        "hello",
		"nested/deep.txt": "world",
	}, nil)

	result, err := Run(context.Background(), Options{BasePath: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(result.Records), result.Records)
	}

	wantTop := zipPath + string(os.PathSeparator) + "top.txt"
	wantNested := zipPath + string(os.PathSeparator) + "nested/deep.txt"
	seen := map[string]bool{}
	for _, r := range result.Records {
		seen[r.Path] = true
	}
	if !seen[wantTop] {
		t.Errorf("missing record for %s, got paths %v", wantTop, keysOf(seen))
	}
	if !seen[wantNested] {
		t.Errorf("missing record for %s, got paths %v", wantNested, keysOf(seen))
	}
}

// TestArchiveWithEmptyDirEntry covers the zip empty-directory policy
// decided for archive roots: an explicit empty directory entry inside a
// zip appears in EmptyDirs, consistent with a filesystem directory.
func TestArchiveWithEmptyDirEntry(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "a.zip")
	writeTestZip(t, zipPath, map[string]string{"top.txt": "hello"}, []string{"empty/"})

	result, err := Run(context.Background(), Options{BasePath: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := zipPath + string(os.PathSeparator) + "empty"
	found := false
	for _, d := range result.EmptyDirs {
		if d == want {
			found = true
		}
	}
	if !found {
		t.Errorf("EmptyDirs = %v, want to contain %s", result.EmptyDirs, want)
	}
}

// TestNonZipFileWithZipExtensionReclassifiedAsFile covers the probe-open
// reclassification path: a file carrying a ".zip" suffix that is not
// actually a valid archive is treated as a regular file instead of causing
// the scan to fail.
func TestNonZipFileWithZipExtensionReclassifiedAsFile(t *testing.T) {
	dir := t.TempDir()
	fakeZip := filepath.Join(dir, "fake.zip")
	writeFile(t, fakeZip, "not actually a zip")

	result, err := Run(context.Background(), Options{BasePath: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Records) != 1 || result.Records[0].Path != fakeZip {
		t.Errorf("Records = %+v, want a single plain-file record for %s", result.Records, fakeZip)
	}
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
