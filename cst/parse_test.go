package cst

import "testing"

func TestParseUnifiedRoundTrip(t *testing.T) {
	in := "--- a/file1\n+++ b/file1\n@@ -1,1 +1,1 @@\n-a\n+b\n"
	p := Parse([]byte(in))
	if !p.Ok() {
		t.Fatalf("expected ok, got errors: %v", p.Errors())
	}
	if got := string(p.Tree().Bytes()); got != in {
		t.Fatalf("round trip mismatch: got %q want %q", got, in)
	}
	if len(p.Tree().Children) != 1 || p.Tree().Children[0].Node.Kind != PATCH_FILE {
		t.Fatalf("expected one PATCH_FILE child, got %+v", p.Tree().Children)
	}
}

// S5 from spec.md §8: a malformed hunk header between two valid hunks
// recovers, reports a diagnostic, and still reproduces the input exactly.
func TestParseRecoversFromMalformedHunk(t *testing.T) {
	in := "--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-a\n+b\n@@ INVALID @@\n@@ -2,1 +2,1 @@\n-c\n+d\n"
	p := Parse([]byte(in))
	if p.Ok() {
		t.Fatalf("expected diagnostics for malformed hunk header")
	}
	if got := string(p.Tree().Bytes()); got != in {
		t.Fatalf("round trip mismatch: got %q want %q", got, in)
	}

	patchFile := p.Tree().Children[0].Node
	var hunkCount, errorCount int
	for _, c := range patchFile.Children {
		if c.Node == nil {
			continue
		}
		switch c.Node.Kind {
		case HUNK:
			hunkCount++
		case ERROR:
			errorCount++
		}
	}
	if hunkCount != 2 {
		t.Fatalf("expected 2 navigable HUNK nodes, got %d", hunkCount)
	}
	if errorCount != 1 {
		t.Fatalf("expected 1 ERROR node, got %d", errorCount)
	}
}

func TestParseEdCommandRoundTrip(t *testing.T) {
	in := "5a10\n> hello\n.\n"
	p := Parse([]byte(in))
	if !p.Ok() {
		t.Fatalf("expected ok, got %v", p.Errors())
	}
	if got := string(p.Tree().Bytes()); got != in {
		t.Fatalf("round trip mismatch: %q", got)
	}
	if len(p.Tree().Children) != 1 || p.Tree().Children[0].Node.Kind != ED_ADD_COMMAND {
		t.Fatalf("expected ED_ADD_COMMAND, got %+v", p.Tree().Children)
	}
}

func TestParseContextDiffRoundTrip(t *testing.T) {
	in := "*** a/file1\n--- b/file1\n*** 1,1 ****\n- a\n--- 1,1 ----\n+ b\n"
	p := Parse([]byte(in))
	if got := string(p.Tree().Bytes()); got != in {
		t.Fatalf("round trip mismatch: %q", got)
	}
	if len(p.Tree().Children) != 1 || p.Tree().Children[0].Node.Kind != CONTEXT_DIFF_FILE {
		t.Fatalf("expected CONTEXT_DIFF_FILE, got %+v", p.Tree().Children)
	}
}

// Comma-separated ranges distinguish normal-diff headers from ed-script
// headers, which only ever carry a single number on each side.
func TestParseNormalHunkRoundTrip(t *testing.T) {
	in := "3,4c5,6\n< old1\n< old2\n---\n> new1\n> new2\n"
	p := Parse([]byte(in))
	if !p.Ok() {
		t.Fatalf("expected ok, got %v", p.Errors())
	}
	if got := string(p.Tree().Bytes()); got != in {
		t.Fatalf("round trip mismatch: %q", got)
	}
	if len(p.Tree().Children) != 1 || p.Tree().Children[0].Node.Kind != NORMAL_HUNK {
		t.Fatalf("expected NORMAL_HUNK, got %+v", p.Tree().Children)
	}
}

// A "\ No newline at end of file" marker trailing a hunk's last line
// nests inside that HUNK node rather than surfacing as root-level JUNK.
func TestParseHunkNoNewlineMarkerNestsInHunk(t *testing.T) {
	in := "--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-a\n+b\n\\ No newline at end of file\n"
	p := Parse([]byte(in))
	if !p.Ok() {
		t.Fatalf("expected ok, got errors: %v", p.Errors())
	}
	if got := string(p.Tree().Bytes()); got != in {
		t.Fatalf("round trip mismatch: got %q want %q", got, in)
	}
	patch, ok := CastPatch(p.Tree())
	if !ok {
		t.Fatalf("expected root patch node")
	}
	hunk := patch.PatchFiles()[0].Hunks()[0]
	found := false
	for _, c := range hunk.Node().Children {
		if c.Node != nil && c.Node.Kind == NO_NEWLINE_LINE {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected NO_NEWLINE_LINE nested inside HUNK, children: %+v", hunk.Node().Children)
	}
	for _, c := range p.Tree().Children {
		if c.Node != nil && c.Node.Kind == JUNK {
			t.Fatalf("no-newline marker leaked to root-level JUNK")
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := Parse(nil)
	if !p.Ok() {
		t.Fatalf("expected ok for empty input")
	}
	if got := p.Tree().Bytes(); len(got) != 0 {
		t.Fatalf("expected empty bytes, got %q", got)
	}
}
