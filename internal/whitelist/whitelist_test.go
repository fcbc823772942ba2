package whitelist

import "testing"

func TestAdmitDir(t *testing.T) {
	w, err := New(
		[]string{".git", "__pycache__"},
		[]string{"/home/user/excluded"},
		nil, nil, nil,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		fullPath string
		want     bool
	}{
		{".git", "/home/user/project/.git", false},
		{"src", "/home/user/project/src", true},
		{"excluded", "/home/user/excluded", false},
		{"excluded", "/home/user/other/excluded", true},
		{"__pycache__", "/a/__pycache__", false},
	}
	for _, tt := range tests {
		if got := w.AdmitDir(tt.name, tt.fullPath); got != tt.want {
			t.Errorf("AdmitDir(%q, %q) = %v, want %v", tt.name, tt.fullPath, got, tt.want)
		}
	}
}

func TestAdmitFile(t *testing.T) {
	w, err := New(
		nil, nil,
		[]string{".DS_Store"},
		[]string{"/home/user/keep.secret"},
		[]string{`.*\.tmp`},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		fullPath string
		want     bool
	}{
		{".DS_Store", "/home/user/.DS_Store", false},
		{"keep.secret", "/home/user/keep.secret", false},
		{"a.tmp", "/home/user/a.tmp", false},
		{"a.tmp.bak", "/home/user/a.tmp.bak", true},
		{"keep.txt", "/home/user/keep.txt", true},
	}
	for _, tt := range tests {
		if got := w.AdmitFile(tt.name, tt.fullPath); got != tt.want {
			t.Errorf("AdmitFile(%q, %q) = %v, want %v", tt.name, tt.fullPath, got, tt.want)
		}
	}
}

func TestNilWhitelistAdmitsEverything(t *testing.T) {
	var w *Whitelist
	if !w.AdmitDir("anything", "/x/anything") {
		t.Error("nil whitelist should admit all directories")
	}
	if !w.AdmitFile("anything", "/x/anything") {
		t.Error("nil whitelist should admit all files")
	}
}

func TestFileRegexFullmatchSemantics(t *testing.T) {
	// A regex like "a.*b" should only exclude full-path strings that match
	// in their entirety, not merely contain a match.
	w, err := New(nil, nil, nil, nil, []string{"a.*b"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !w.AdmitFile("x", "axbx") {
		t.Error("expected axbx (only a partial match) to be admitted under fullmatch")
	}
	if w.AdmitFile("x", "ab") {
		t.Error("expected fullmatch to reject exact ab")
	}
	if !w.AdmitFile("x", "c") {
		t.Error("expected non-matching path to be admitted")
	}
}
