package scan

import (
	"fmt"
	"time"
)

// Progress is the byte-denominated progress/ETA accumulator. It is mutated
// in place by the traversal driver and the chunked hasher; there is exactly
// one Progress per scan.
type Progress struct {
	// Current is the number of bytes accounted for so far (hashed, reused,
	// or skipped-on-error), always advancing towards Total.
	Current uint64
	// Total is the total byte size of the scan tree, fixed at the start of
	// traversal.
	Total uint64
	// Remaining is Total minus the bytes accounted for; kept as a separate
	// field (rather than derived) because ETA uses it directly.
	Remaining uint64
	// Processed is the number of bytes that were actually hashed this run
	// (excludes bytes reused from the baseline without rehashing).
	Processed uint64
	// Elapsed is the cumulative wall-clock time spent hashing.
	Elapsed time.Duration
}

// NewProgress initializes a Progress accumulator for a scan tree of the
// given total byte size.
func NewProgress(total uint64) *Progress {
	return &Progress{Total: total, Remaining: total}
}

// Advance records n bytes as accounted for without attributing them to
// hashing work (used on cache hits and on skipped/unreadable files).
func (p *Progress) Advance(n uint64) {
	p.Current += n
	if n > p.Remaining {
		p.Remaining = 0
	} else {
		p.Remaining -= n
	}
}

// AdvanceHashed records n bytes as accounted for and attributes them to
// hashing work and elapsed wall time, used by the chunked hasher per chunk.
func (p *Progress) AdvanceHashed(n uint64, dt time.Duration) {
	p.Advance(n)
	p.Processed += n
	p.Elapsed += dt
}

// Percent renders Current/Total as a percentage string to 3 decimal places.
func (p *Progress) Percent() string {
	if p.Total == 0 {
		return "100.000%"
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	return fmt.Sprintf("%6.3f%%", pct)
}

// ETA renders the estimated time remaining as "HH MM SS", computed as
// elapsed/max(processed,1) * remaining.
func (p *Progress) ETA() string {
	processed := p.Processed
	if processed == 0 {
		processed = 1
	}
	secondsRemaining := p.Elapsed.Seconds() / float64(processed) * float64(p.Remaining)
	return formatHHMMSS(secondsRemaining)
}

// formatHHMMSS formats a duration in seconds as "HH MM SS".
func formatHHMMSS(totalSeconds float64) string {
	if totalSeconds < 0 || totalSeconds != totalSeconds { // guard NaN/negative
		totalSeconds = 0
	}
	total := int64(totalSeconds + 0.5)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d %02d %02d", hours, minutes, seconds)
}

// Done reports whether the accumulator has accounted for the entire scan:
// current == total, remaining == 0.
func (p *Progress) Done() bool {
	return p.Current == p.Total && p.Remaining == 0
}
