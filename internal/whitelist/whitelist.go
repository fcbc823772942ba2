// Package whitelist implements the whitelist filter: the decision of
// whether a discovered path is admitted into the scan.
//
// A Whitelist is an immutable value constructed once at startup and passed
// explicitly through traversal, avoiding process-wide mutable state.
package whitelist

import "regexp"

// Whitelist holds the five exclusion collections that together decide
// whether a path is admitted.
type Whitelist struct {
	// DirNames are basenames that exclude a directory from the scan.
	DirNames map[string]struct{}
	// DirPaths are exact absolute paths that exclude a directory.
	DirPaths map[string]struct{}
	// FileNames are basenames that exclude a file from the scan.
	FileNames map[string]struct{}
	// FilePaths are exact absolute paths that exclude a file.
	FilePaths map[string]struct{}
	// FileRegexes are fullmatch patterns over a file's full path string.
	FileRegexes []*regexp.Regexp
}

// New constructs a Whitelist from plain string slices, as loaded from
// configuration or flags. Regex patterns are compiled with fullmatch
// semantics: since Go's regexp package has no native fullmatch call
// equivalent to Python's re.fullmatch, each pattern is anchored with
// "\A(?:...)\z" so that partial matches are rejected.
func New(dirNames, dirPaths, fileNames, filePaths, fileRegexPatterns []string) (*Whitelist, error) {
	w := &Whitelist{
		DirNames:  toSet(dirNames),
		DirPaths:  toSet(dirPaths),
		FileNames: toSet(fileNames),
		FilePaths: toSet(filePaths),
	}
	for _, pattern := range fileRegexPatterns {
		re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
		if err != nil {
			return nil, err
		}
		w.FileRegexes = append(w.FileRegexes, re)
	}
	return w, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Empty is the whitelist that excludes nothing.
var Empty = &Whitelist{}

// AdmitDir reports whether a directory with the given basename and full path
// is admitted into the scan.
func (w *Whitelist) AdmitDir(name, fullPath string) bool {
	if w == nil {
		return true
	}
	if _, excluded := w.DirNames[name]; excluded {
		return false
	}
	if _, excluded := w.DirPaths[fullPath]; excluded {
		return false
	}
	return true
}

// AdmitFile reports whether a file with the given basename and full path is
// admitted into the scan.
func (w *Whitelist) AdmitFile(name, fullPath string) bool {
	if w == nil {
		return true
	}
	if _, excluded := w.FileNames[name]; excluded {
		return false
	}
	if _, excluded := w.FilePaths[fullPath]; excluded {
		return false
	}
	for _, re := range w.FileRegexes {
		if re.MatchString(fullPath) {
			return false
		}
	}
	return true
}
