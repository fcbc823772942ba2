// Package config loads the whitelist and duplicate-size-threshold
// configuration from a TOML file.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/Mushinako/uniqfiles/internal/whitelist"
)

// Thresholds are the optional small/large duplicate-size cutoffs; zero
// values mean "unset".
type Thresholds struct {
	SmallMax uint64 `toml:"small_max"`
	LargeMin uint64 `toml:"large_min"`
}

// file is the raw TOML document shape.
type file struct {
	Whitelist struct {
		DirNames    []string `toml:"dir_names"`
		DirPaths    []string `toml:"dir_paths"`
		FileNames   []string `toml:"file_names"`
		FilePaths   []string `toml:"file_paths"`
		FileRegexes []string `toml:"file_regexes"`
	} `toml:"whitelist"`
	Thresholds Thresholds `toml:"thresholds"`
}

// Config is the fully parsed, ready-to-use configuration.
type Config struct {
	Whitelist  *whitelist.Whitelist
	Thresholds Thresholds
}

// Load reads and parses path as TOML. An empty path is not an error: the
// caller gets an empty whitelist and zeroed thresholds, matching the CLI's
// optional --config flag. A non-empty path that cannot be read or parsed
// returns the error.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{Whitelist: whitelist.Empty}, nil
	}

	var doc file
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, err
	}

	wl, err := whitelist.New(
		doc.Whitelist.DirNames,
		doc.Whitelist.DirPaths,
		doc.Whitelist.FileNames,
		doc.Whitelist.FilePaths,
		doc.Whitelist.FileRegexes,
	)
	if err != nil {
		return nil, err
	}

	return &Config{Whitelist: wl, Thresholds: doc.Thresholds}, nil
}
