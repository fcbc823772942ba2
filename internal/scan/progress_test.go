package scan

import "testing"

func TestProgressAdvanceClampsRemaining(t *testing.T) {
	p := NewProgress(10)
	p.Advance(15)
	if p.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", p.Remaining)
	}
	if p.Current != 15 {
		t.Errorf("Current = %d, want 15", p.Current)
	}
}

func TestProgressDoneAtCompletion(t *testing.T) {
	p := NewProgress(100)
	p.Advance(40)
	if p.Done() {
		t.Error("expected Done() false before total reached")
	}
	p.Advance(60)
	if !p.Done() {
		t.Error("expected Done() true once current == total and remaining == 0")
	}
}

func TestProgressPercentZeroTotal(t *testing.T) {
	p := NewProgress(0)
	if got := p.Percent(); got != "100.000%" {
		t.Errorf("Percent() = %q, want 100.000%%", got)
	}
}

func TestFormatHHMMSS(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00 00 00"},
		{61, "00 01 01"},
		{3661, "01 01 01"},
		{-5, "00 00 00"},
	}
	for _, c := range cases {
		if got := formatHHMMSS(c.seconds); got != c.want {
			t.Errorf("formatHHMMSS(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}
