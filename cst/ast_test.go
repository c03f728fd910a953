package cst

import "testing"

func TestPatchDetectFormatUnified(t *testing.T) {
	p := Parse([]byte("--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-a\n+b\n"))
	patch, ok := CastPatch(p.Tree())
	if !ok {
		t.Fatalf("expected root to cast as Patch")
	}
	if got := patch.DetectFormat(); got != FormatUnified {
		t.Fatalf("expected FormatUnified, got %v", got)
	}
	files := patch.PatchFiles()
	if len(files) != 1 {
		t.Fatalf("expected 1 patch file, got %d", len(files))
	}
	if old, ok := files[0].OldPath(); !ok || old != "a/f" {
		t.Fatalf("expected old path a/f, got %q ok=%v", old, ok)
	}
	if nw, ok := files[0].NewPath(); !ok || nw != "b/f" {
		t.Fatalf("expected new path b/f, got %q ok=%v", nw, ok)
	}
}

func TestPatchDetectFormatContext(t *testing.T) {
	in := "*** a/file1\n--- b/file1\n*** 1,1 ****\n- a\n--- 1,1 ----\n+ b\n"
	p := Parse([]byte(in))
	patch, ok := CastPatch(p.Tree())
	if !ok {
		t.Fatalf("expected root to cast as Patch")
	}
	if got := patch.DetectFormat(); got != FormatContext {
		t.Fatalf("expected FormatContext, got %v", got)
	}
	files := patch.ContextDiffFiles()
	if len(files) != 1 {
		t.Fatalf("expected 1 context diff file, got %d", len(files))
	}
	if old, ok := files[0].OldPath(); !ok || old != "a/file1" {
		t.Fatalf("expected old path a/file1, got %q ok=%v", old, ok)
	}
}

func TestPatchDetectFormatEd(t *testing.T) {
	p := Parse([]byte("5a10\n> hello\n.\n"))
	patch, _ := CastPatch(p.Tree())
	if got := patch.DetectFormat(); got != FormatEd {
		t.Fatalf("expected FormatEd, got %v", got)
	}
	cmds := patch.EdCommands()
	if len(cmds) != 1 {
		t.Fatalf("expected 1 ed command, got %d", len(cmds))
	}
	if len(cmds[0].ContentLines()) != 1 {
		t.Fatalf("expected 1 content line, got %d", len(cmds[0].ContentLines()))
	}
}

func TestPatchDetectFormatNormal(t *testing.T) {
	p := Parse([]byte("3,4c5,6\n< old1\n< old2\n---\n> new1\n> new2\n"))
	patch, _ := CastPatch(p.Tree())
	if got := patch.DetectFormat(); got != FormatNormal {
		t.Fatalf("expected FormatNormal, got %v", got)
	}
	hunks := patch.NormalHunks()
	if len(hunks) != 1 {
		t.Fatalf("expected 1 normal hunk, got %d", len(hunks))
	}
	if _, ok := hunks[0].OldLines(); !ok {
		t.Fatalf("expected old lines present")
	}
	if _, ok := hunks[0].NewLines(); !ok {
		t.Fatalf("expected new lines present")
	}
}

func TestHunkHeaderRanges(t *testing.T) {
	p := Parse([]byte("--- a/f\n+++ b/f\n@@ -1,2 +3,4 @@\n a\n a\n"))
	patch, _ := CastPatch(p.Tree())
	hunk := patch.PatchFiles()[0].Hunks()[0]
	header, ok := hunk.Header()
	if !ok {
		t.Fatalf("expected header")
	}
	oldStart, oldCount, ok := header.OldRange()
	if !ok || oldStart != 1 || oldCount != 2 {
		t.Fatalf("expected old range 1,2 got %d,%d ok=%v", oldStart, oldCount, ok)
	}
	newStart, newCount, ok := header.NewRange()
	if !ok || newStart != 3 || newCount != 4 {
		t.Fatalf("expected new range 3,4 got %d,%d ok=%v", newStart, newCount, ok)
	}
}

func TestHunkHeaderRangesOmittedCounts(t *testing.T) {
	p := Parse([]byte("--- a/f\n+++ b/f\n@@ -1 +3 @@\n a\n"))
	patch, _ := CastPatch(p.Tree())
	hunk := patch.PatchFiles()[0].Hunks()[0]
	header, ok := hunk.Header()
	if !ok {
		t.Fatalf("expected header")
	}
	oldStart, oldCount, ok := header.OldRange()
	if !ok || oldStart != 1 || oldCount != 1 {
		t.Fatalf("expected old range 1,1 got %d,%d ok=%v", oldStart, oldCount, ok)
	}
	newStart, newCount, ok := header.NewRange()
	if !ok || newStart != 3 || newCount != 1 {
		t.Fatalf("expected new range 3,1 got %d,%d ok=%v", newStart, newCount, ok)
	}
}

func TestHunkLineCastAndText(t *testing.T) {
	in := "--- a/f\n+++ b/f\n@@ -1,2 +1,3 @@\n a\n-b\n+c\n+d\n"
	p := Parse([]byte(in))
	patch, _ := CastPatch(p.Tree())
	lines := patch.PatchFiles()[0].Hunks()[0].Lines()
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if _, ok := lines[0].AsContext(); !ok {
		t.Fatalf("expected line 0 to be context")
	}
	if string(lines[0].Text()) != "a\n" {
		t.Fatalf("expected context text %q, got %q", "a\n", lines[0].Text())
	}
	if _, ok := lines[1].AsDelete(); !ok {
		t.Fatalf("expected line 1 to be delete")
	}
	if string(lines[1].Text()) != "b\n" {
		t.Fatalf("expected delete text %q, got %q", "b\n", lines[1].Text())
	}
	if _, ok := lines[2].AsAdd(); !ok {
		t.Fatalf("expected line 2 to be add")
	}
	if string(lines[2].Text()) != "c\n" {
		t.Fatalf("expected add text %q, got %q", "c\n", lines[2].Text())
	}
}
