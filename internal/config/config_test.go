package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesWhitelistAndThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uniqfiles.toml")
	doc := `
[whitelist]
dir_names = [".git", "node_modules"]
file_names = [".DS_Store"]
file_regexes = [".*\\.tmp"]

[thresholds]
small_max = 4096
large_min = 1048576
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Whitelist.AdmitDir("src", "/repo/src") {
		t.Error("expected /repo/src to be admitted")
	}
	if cfg.Whitelist.AdmitDir(".git", "/repo/.git") {
		t.Error("expected .git to be excluded by dir_names")
	}
	if cfg.Whitelist.AdmitFile("x.tmp", "/repo/x.tmp") {
		t.Error("expected *.tmp to be excluded by file_regexes")
	}
	if cfg.Thresholds.SmallMax != 4096 || cfg.Thresholds.LargeMin != 1048576 {
		t.Errorf("Thresholds = %+v, want {4096 1048576}", cfg.Thresholds)
	}
}

func TestLoadEmptyPathYieldsEmptyWhitelist(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Whitelist.AdmitDir("anything", "/anything") {
		t.Error("expected empty config to admit everything")
	}
}
