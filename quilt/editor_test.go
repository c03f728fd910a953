package quilt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseSeries(t *testing.T, in string) SeriesFile {
	t.Helper()
	p := Parse([]byte(in))
	if !p.Ok() {
		t.Fatalf("expected ok parsing %q, got %v", in, p.Errors())
	}
	return New(p.Tree())
}

// TestEditorRemoveAroundComments is spec.md §8 scenario S6: removing a
// patch leaves surrounding comments and remaining patches untouched.
func TestEditorRemoveAroundComments(t *testing.T) {
	in := "# Header\np1\n# Mid\np2\n# Foot\n"
	f := parseSeries(t, in)
	out, ok := f.Remove("p1")
	if !ok {
		t.Fatalf("expected p1 to be removed")
	}
	want := "# Header\n# Mid\np2\n# Foot\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := string(f.Bytes()); got != in {
		t.Fatalf("original mutated: got %q", got)
	}
}

func TestEditorPush(t *testing.T) {
	f := parseSeries(t, "p1.patch\n")
	out := f.Push("p2.patch", []string{"-p1"})
	want := "p1.patch\np2.patch -p1\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorPrepend(t *testing.T) {
	f := parseSeries(t, "p1.patch\n")
	out := f.Prepend("p0.patch", nil)
	want := "p0.patch\np1.patch\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorInsertBetweenWithComment(t *testing.T) {
	f := parseSeries(t, "p1.patch\n# c\np2.patch\n")
	out := f.Insert(1, "p1.5.patch", nil)
	want := "p1.patch\n# c\np1.5.patch\np2.patch\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorRemoveMissing(t *testing.T) {
	f := parseSeries(t, "p1.patch\n")
	_, ok := f.Remove("nope.patch")
	if ok {
		t.Fatalf("expected remove of missing patch to fail")
	}
}

func TestEditorRename(t *testing.T) {
	f := parseSeries(t, "p1.patch -p1\n")
	out, ok := f.Rename("p1.patch", "p1-renamed.patch")
	if !ok {
		t.Fatalf("expected rename to succeed")
	}
	want := "p1-renamed.patch -p1\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorSetOptions(t *testing.T) {
	f := parseSeries(t, "p1.patch -p0\n")
	out, ok := f.SetOptions("p1.patch", []string{"-p1", "--reverse"})
	if !ok {
		t.Fatalf("expected set options to succeed")
	}
	want := "p1.patch -p1 --reverse\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorMoveTo(t *testing.T) {
	f := parseSeries(t, "p1.patch\np2.patch\np3.patch\n")
	out, ok := f.MoveTo("p1.patch", 2)
	if !ok {
		t.Fatalf("expected move to succeed")
	}
	want := "p2.patch\np3.patch\np1.patch\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorAddComment(t *testing.T) {
	f := parseSeries(t, "p1.patch\n")
	out := f.AddComment("trailing note")
	want := "p1.patch\n# trailing note\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorClearKeepsComments(t *testing.T) {
	f := parseSeries(t, "# keep\np1.patch\np2.patch\n")
	out := f.Clear()
	want := "# keep\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if !out.IsEmpty() {
		t.Fatalf("expected no patch entries after clear")
	}
}

func TestEditorContainsAndPosition(t *testing.T) {
	f := parseSeries(t, "p1.patch\np2.patch\n")
	if !f.Contains("p2.patch") {
		t.Fatalf("expected p2.patch to be present")
	}
	pos, ok := f.Position("p2.patch")
	if !ok || pos != 1 {
		t.Fatalf("expected position 1, got %d ok=%v", pos, ok)
	}
	if f.Contains("nope.patch") {
		t.Fatalf("expected nope.patch absent")
	}
}

func TestEditorUpdateAll(t *testing.T) {
	f := parseSeries(t, "p1.patch\np2.patch -p0\n")
	out := f.UpdateAll(func(name string, options []string) []string {
		return append(append([]string{}, options...), "-p1")
	})
	want := "p1.patch -p1\np2.patch -p0 -p1\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEditorReorder(t *testing.T) {
	f := parseSeries(t, "p1.patch\n# note\np2.patch\np3.patch\n")
	out, ok := f.Reorder([]string{"p3.patch", "p1.patch", "p2.patch"})
	if !ok {
		t.Fatalf("expected reorder to succeed")
	}
	want := "p3.patch\n# note\np1.patch\np2.patch\n"
	if got := string(out.Bytes()); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	names := make([]string, 0)
	for _, p := range out.PatchEntries() {
		n, _ := p.Name()
		names = append(names, n)
	}
	require.Equal(t, []string{"p3.patch", "p1.patch", "p2.patch"}, names)
}

func TestEditorReorderRejectsMismatchedSet(t *testing.T) {
	f := parseSeries(t, "p1.patch\np2.patch\n")
	_, ok := f.Reorder([]string{"p1.patch"})
	if ok {
		t.Fatalf("expected reorder to fail on mismatched set")
	}
}
