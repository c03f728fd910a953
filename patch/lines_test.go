package patch

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single no newline", "abc", []string{"abc"}},
		{"single with newline", "abc\n", []string{"abc\n"}},
		{"two lines", "a\nb\n", []string{"a\n", "b\n"}},
		{"trailing partial", "a\nb", []string{"a\n", "b"}},
		{"blank line", "a\n\nb\n", []string{"a\n", "\n", "b\n"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitLines([]byte(c.in))
			if len(got) != len(c.want) {
				t.Fatalf("got %d lines, want %d: %v", len(got), len(c.want), got)
			}
			for i := range got {
				if string(got[i]) != c.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], c.want[i])
				}
			}
			var rebuilt []byte
			for _, l := range got {
				rebuilt = append(rebuilt, l...)
			}
			if string(rebuilt) != c.in {
				t.Errorf("round-trip mismatch: got %q, want %q", rebuilt, c.in)
			}
		})
	}
}

func TestFoldNoNewlineMarkers(t *testing.T) {
	lines := [][]byte{[]byte("a\n"), []byte("new\n"), []byte(noNewlineMarker)}
	got, err := FoldNoNewlineMarkers(lines)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]byte{[]byte("a\n"), []byte("new")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFoldNoNewlineMarkersNoPrevious(t *testing.T) {
	_, err := FoldNoNewlineMarkers([][]byte{[]byte(noNewlineMarker)})
	if !IsPatchSyntaxError(err) {
		t.Fatalf("expected PatchSyntaxError, got %v", err)
	}
}
