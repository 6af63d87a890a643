package tail

import (
	"reflect"
	"testing"
)

func TestDelta_FirstSnapshot(t *testing.T) {
	// No anchor yet: the whole snapshot is new.
	got := delta("a\nb\nc", "", false)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delta() = %v, want %v", got, want)
	}
}

func TestDelta_AppendedLines(t *testing.T) {
	// Anchor "c" still present: only the lines after it are new.
	got := delta("a\nb\nc\nd\ne", "c", true)
	want := []string{"d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delta() = %v, want %v", got, want)
	}
}

func TestDelta_Unchanged(t *testing.T) {
	// Anchor is the final line: nothing is new.
	got := delta("a\nb\nc", "c", true)
	if len(got) != 0 {
		t.Errorf("delta() = %v, want no lines", got)
	}
}

func TestDelta_AnchorMissing(t *testing.T) {
	// The anchor vanished (buffer cleared or wrapped past it): the whole
	// snapshot counts as new, even if that re-delivers identical text.
	// This is documented behavior, not an accident.
	got := delta("x\ny\nz", "c", true)
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delta() = %v, want %v", got, want)
	}
}

func TestDelta_EmptySnapshot(t *testing.T) {
	if got := delta("", "c", true); len(got) != 0 {
		t.Errorf("delta() = %v, want no lines", got)
	}
	if got := delta("", "", false); len(got) != 0 {
		t.Errorf("delta() = %v, want no lines", got)
	}
}

func TestDelta_TrailingNewline(t *testing.T) {
	// A buffer ending in "\n" must not produce a phantom empty line.
	got := delta("a\nb\nc\n", "b", true)
	want := []string{"c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delta() = %v, want %v", got, want)
	}
}

func TestDelta_RepeatedAnchorUsesLastOccurrence(t *testing.T) {
	// When the anchor text appears more than once, the scan from the end
	// stops at the last occurrence, so repeated older text is not
	// re-delivered.
	got := delta("c\na\nc\nd", "c", true)
	want := []string{"d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delta() = %v, want %v", got, want)
	}
}

func TestDelta_AnchorMidBufferInteriorEmptyLines(t *testing.T) {
	// Interior empty lines are ordinary lines.
	got := delta("a\n\nb", "a", true)
	want := []string{"", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delta() = %v, want %v", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		want     []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"single trailing newline", "a\n", []string{"a"}},
		{"only newline", "\n", nil},
		{"multi", "a\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.snapshot)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLines(%q) = %v, want %v", tt.snapshot, got, tt.want)
			}
		})
	}
}
