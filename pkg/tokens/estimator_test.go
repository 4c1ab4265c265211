package tokens

import (
	"strings"
	"testing"
)

func TestEstimatorCount(t *testing.T) {
	e := NewEstimator()

	if got := e.Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}

	short := e.Count("A short sentence.")
	long := e.Count(strings.Repeat("A much longer stretch of article text. ", 50))
	if short <= 0 {
		t.Errorf("Count(short) = %d, want > 0", short)
	}
	if long <= short {
		t.Errorf("Count(long) = %d, want > Count(short) = %d", long, short)
	}
}

func TestEstimatorFallbackHeuristic(t *testing.T) {
	e := &Estimator{}
	if got := e.Count(strings.Repeat("a", 400)); got != 100 {
		t.Errorf("Count() = %d, want 100", got)
	}
	if got := e.Count("abc"); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestWarningFor(t *testing.T) {
	e := &Estimator{}

	t.Run("under budget", func(t *testing.T) {
		if msg, warn := e.WarningFor("short page"); warn || msg != "" {
			t.Errorf("WarningFor() = (%q, %v), want no warning", msg, warn)
		}
	})

	t.Run("over budget", func(t *testing.T) {
		msg, warn := e.WarningFor(strings.Repeat("a", MaxModelChars+1))
		if !warn {
			t.Fatal("WarningFor() = no warning, want one")
		}
		if !strings.Contains(msg, "too long") {
			t.Errorf("WarningFor() message = %q", msg)
		}
	})
}
