// Package dup implements the duplicate grouper: partitioning a set of
// hashed file records into equivalence classes that share a fingerprint.
package dup

import (
	"sort"

	"github.com/Mushinako/uniqfiles/internal/scan"
)

// Duplication is one equivalence class of files sharing a fingerprint.
type Duplication struct {
	Fingerprint scan.Fingerprint `json:"fingerprint" yaml:"fingerprint"`
	Paths       []string         `json:"paths" yaml:"paths"`
}

// Group partitions records into duplicate equivalence classes, keyed on
// (size, md5, sha1) being jointly collision-free. Only classes with two or
// more members are returned; the result is sorted by
// fingerprint (size, then md5, then sha1), and within each class paths are
// sorted for deterministic output.
func Group(records []scan.FileRecord) []Duplication {
	groups := make(map[scan.Fingerprint][]string)
	for _, r := range records {
		fp := r.Fingerprint()
		groups[fp] = append(groups[fp], r.Path)
	}

	var dups []Duplication
	for fp, paths := range groups {
		if len(paths) < 2 {
			continue
		}
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)
		dups = append(dups, Duplication{Fingerprint: fp, Paths: sorted})
	}

	sort.Slice(dups, func(i, j int) bool {
		return dups[i].Fingerprint.Less(dups[j].Fingerprint)
	})
	return dups
}

// Partition splits duplications by their fingerprint size into three
// disjoint bands: small (size at most smallMax), large (size at least
// largeMin), and remainder (everything else). Either threshold may be nil,
// meaning that band is not split off at all — duplications that would have
// landed there are left in remainder instead, so the caller can still
// write remainder to its single main sink.
func Partition(dups []Duplication, smallMax, largeMin *uint64) (small, remainder, large []Duplication) {
	for _, d := range dups {
		size := d.Fingerprint.Size
		switch {
		case smallMax != nil && size <= *smallMax:
			small = append(small, d)
		case largeMin != nil && size >= *largeMin:
			large = append(large, d)
		default:
			remainder = append(remainder, d)
		}
	}
	return small, remainder, large
}
