package patch

import "testing"

func TestSplitEntriesSingleFile(t *testing.T) {
	data := "preamble junk\n--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-a\n+b\n"
	entries := SplitEntries([]byte(data))
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Kind != JunkEntry {
		t.Fatalf("expected first entry Junk, got %v", entries[0].Kind)
	}
	if entries[1].Kind != PatchEntryKind {
		t.Fatalf("expected second entry Patch, got %v", entries[1].Kind)
	}
}

func TestSplitEntriesMultiFile(t *testing.T) {
	data := "--- a/f1\n+++ b/f1\n@@ -1,1 +1,1 @@\n-a\n+b\n" +
		"--- a/f2\n+++ b/f2\n@@ -1,1 +1,1 @@\n-c\n+d\n"
	entries := SplitEntries([]byte(data))
	if len(entries) != 2 {
		t.Fatalf("expected 2 patch entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Kind != PatchEntryKind {
			t.Fatalf("expected all Patch entries, got %v", e.Kind)
		}
	}
}

func TestSplitEntriesMeta(t *testing.T) {
	data := "=== modified file 'f'\n--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-a\n+b\n"
	entries := SplitEntries([]byte(data))
	if len(entries) != 2 || entries[0].Kind != MetaEntry {
		t.Fatalf("expected Meta then Patch, got %+v", entries)
	}
}

func TestParseStreamIsolatesErrors(t *testing.T) {
	data := "--- a/good\n+++ b/good\n@@ -1,1 +1,1 @@\n-a\n+b\n" +
		"--- a/bad\n+++ b/bad\n@@ BOGUS @@\n"
	items := ParseStream([]byte(data))
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Err != nil {
		t.Fatalf("unexpected error on first entry: %v", items[0].Err)
	}
	if items[1].Err == nil {
		t.Fatalf("expected error on second entry")
	}
}
