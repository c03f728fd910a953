// Package quiltwalk is the directory-walking boundary collaborator for
// quilt series (spec.md §4.8, "Quilt-patches directory walker"): it is the
// one place in this module that touches a filesystem. The semantic and
// lossless cores stay in-memory and I/O-free; everything here exists only
// to hand those cores bytes.
package quiltwalk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/antgroup/patchkit/patch"
	"github.com/antgroup/patchkit/quilt"
)

// Entry is one patch referenced from a series file, with its options and
// the raw bytes of the patch file it names.
type Entry struct {
	Name    string
	Options []string
	Bytes   []byte
}

// seriesEntry is a series line before its patch file has been read.
type seriesEntry struct {
	Name    string
	Options []string
}

// readSeriesEntries reads and parses dir/series, returning its patch
// entries in series order. It does not touch the patch files themselves.
func readSeriesEntries(dir string) ([]seriesEntry, error) {
	seriesPath := filepath.Join(dir, "series")
	raw, err := os.ReadFile(seriesPath)
	if err != nil {
		return nil, err
	}
	p := quilt.Parse(raw)
	if !p.Ok() {
		return nil, fmt.Errorf("parsing %s: %v", seriesPath, p.Errors())
	}
	sf := quilt.New(p.Tree())
	patches := sf.PatchEntries()
	entries := make([]seriesEntry, len(patches))
	for i, pe := range patches {
		name, _ := pe.Name()
		entries[i] = seriesEntry{Name: name, Options: pe.OptionStrings()}
	}
	return entries, nil
}

// readPatchFile reads dir/name, transparently gunzipping it when name ends
// in ".gz" (a common convention for storing patches compressed alongside a
// quilt series).
func readPatchFile(dir, name string) ([]byte, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return io.ReadAll(f)
}

// IterQuiltPatches reads dir/series and every patch file it names, in
// series order, returning the contract spec.md §4.8 names:
// {name, options, bytes} per entry. It stops at the first unreadable
// patch file; see ValidateSeries for a tolerant, concurrent check.
func IterQuiltPatches(dir string) ([]Entry, error) {
	entries, err := readSeriesEntries(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		b, err := readPatchFile(dir, e.Name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name, err)
		}
		out[i] = Entry{Name: e.Name, Options: e.Options, Bytes: b}
	}
	return out, nil
}

// ReadPcPath reads a single-line path file of the kind found at
// .pc/.quilt_patches and .pc/.quilt_series, returning its one line with the
// trailing newline (and any carriage return) stripped.
func ReadPcPath(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	s := strings.TrimSuffix(string(raw), "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// ValidateSeries checks that every patch dir/series names exists and
// parses as a semantic patch, without applying any of them. Per-entry
// checks are independent of one another and run concurrently; patch
// *application* itself is never performed here and stays strictly
// sequential wherever a caller goes on to do it (spec.md §5). The
// returned slice has one entry per series patch, in series order, nil
// where that patch read and parsed cleanly.
func ValidateSeries(dir string) ([]error, error) {
	entries, err := readSeriesEntries(dir)
	if err != nil {
		return nil, err
	}
	errs := make([]error, len(entries))
	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() error {
			b, err := readPatchFile(dir, e.Name)
			if err != nil {
				errs[i] = fmt.Errorf("reading %s: %w", e.Name, err)
				return nil
			}
			if _, err := patch.ParsePatch(patch.SplitLines(b)); err != nil {
				errs[i] = fmt.Errorf("parsing %s: %w", e.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs, nil
}
