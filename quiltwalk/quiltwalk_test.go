package quiltwalk

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const patch1 = "--- a/f1\n+++ b/f1\n@@ -1,1 +1,1 @@\n-a\n+b\n"
const patch2 = "--- a/f2\n+++ b/f2\n@@ -1,1 +1,1 @@\n-x\n+y\n"

func writeGzip(t *testing.T, path string, content string) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupSeries(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "series"), []byte("p1.patch\np2.patch.gz -p1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "p1.patch"), []byte(patch1), 0o644); err != nil {
		t.Fatal(err)
	}
	writeGzip(t, filepath.Join(dir, "p2.patch.gz"), patch2)
	return dir
}

func TestIterQuiltPatches(t *testing.T) {
	dir := setupSeries(t)
	entries, err := IterQuiltPatches(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "p1.patch" || string(entries[0].Bytes) != patch1 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if len(entries[0].Options) != 0 {
		t.Fatalf("expected no options on first entry, got %v", entries[0].Options)
	}
	if entries[1].Name != "p2.patch.gz" || string(entries[1].Bytes) != patch2 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if len(entries[1].Options) != 1 || entries[1].Options[0] != "-p1" {
		t.Fatalf("unexpected second entry options: %v", entries[1].Options)
	}
}

func TestIterQuiltPatchesMissingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "series"), []byte("missing.patch\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := IterQuiltPatches(dir); err == nil {
		t.Fatalf("expected error for missing patch file")
	}
}

func TestValidateSeriesAllOk(t *testing.T) {
	dir := setupSeries(t)
	errs, err := ValidateSeries(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(errs))
	}
	for i, e := range errs {
		if e != nil {
			t.Fatalf("entry %d: unexpected error %v", i, e)
		}
	}
}

func TestValidateSeriesReportsMissingAndBad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "series"), []byte("ok.patch\nmissing.patch\nbad.patch\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ok.patch"), []byte(patch1), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.patch"), []byte("not a patch at all\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs, err := ValidateSeries(dir)
	require.NoError(t, err)
	require.Len(t, errs, 3)
	require.NoError(t, errs[0], "ok.patch")
	require.Error(t, errs[1], "missing.patch")
	require.Error(t, errs[2], "bad.patch")
}

func TestReadPcPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".quilt_patches")
	if err := os.WriteFile(p, []byte("debian/patches\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadPcPath(p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "debian/patches" {
		t.Fatalf("got %q want %q", got, "debian/patches")
	}
}
