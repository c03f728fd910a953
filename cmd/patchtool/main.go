// Command patchtool is a minimal example CLI over patchkit: it reads a
// patch file, parses it with the lossless front end, prints a structured
// summary of its files and hunks, and optionally verifies an exact apply
// against an original file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/rivo/uniseg"
	"github.com/sirupsen/logrus"

	"github.com/antgroup/patchkit/cst"
	"github.com/antgroup/patchkit/patch"
)

func main() {
	var configPath, origPath string
	var noColor bool
	flag.StringVar(&configPath, "config", "", "path to a TOML config file")
	flag.StringVar(&origPath, "orig", "", "original file to verify an exact apply against")
	flag.BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: patchtool [--config FILE] [--orig FILE] PATCHFILE")
		os.Exit(2)
	}
	patchPath := flag.Arg(0)

	cfg, err := loadConfig(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if noColor {
		cfg.Color = false
	}

	data, err := os.ReadFile(patchPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read patch file")
	}

	p := cst.Parse(data)
	root, ok := cst.CastPatch(p.Tree())
	if !ok {
		logrus.Fatal("parsed tree has no root patch node")
	}

	if !p.Ok() {
		fmt.Println("Parse errors:")
		for _, d := range p.Errors() {
			fmt.Printf("  %s\n", d)
		}
		fmt.Println()
	}

	files := root.PatchFiles()
	fmt.Printf("Successfully parsed patch with %d file(s)!\n\n", len(files))

	for _, f := range files {
		printPatchFile(f, cfg)
	}

	if got := root.Node().Bytes(); !bytes.Equal(got, data) {
		logrus.Warn("lossless roundtrip mismatch: parsed tree does not reproduce input byte-for-byte")
	} else {
		fmt.Println("=== Lossless Roundtrip ===")
		fmt.Println("Original patch preserved exactly.")
	}

	if origPath != "" {
		applyAgainst(data, origPath)
	}
}

func printPatchFile(f cst.PatchFile, cfg config) {
	fmt.Println("=== File Change ===")
	if oldPath, ok := f.OldPath(); ok {
		fmt.Printf("Old: %s\n", oldPath)
	}
	if newPath, ok := f.NewPath(); ok {
		fmt.Printf("New: %s\n", newPath)
	}

	for _, h := range f.Hunks() {
		fmt.Println("\n--- Hunk ---")
		if header, ok := h.Header(); ok {
			printHunkHeader(header)
		}
		for _, line := range h.Lines() {
			printHunkLine(line, cfg)
		}
	}
	fmt.Println()
}

func printHunkHeader(header cst.HunkHeader) {
	fmt.Print("@@")
	if start, count, ok := header.OldRange(); ok {
		fmt.Printf(" -%d,%d", start, count)
	}
	if start, count, ok := header.NewRange(); ok {
		fmt.Printf(" +%d,%d", start, count)
	}
	fmt.Println(" @@")
}

func printHunkLine(line cst.HunkLine, cfg config) {
	text := truncateLine(strings.TrimSuffix(string(line.Text()), "\n"), cfg.MaxLineWidth)
	switch {
	case isKind(line.AsAdd):
		fmt.Println(colorize(cfg, "green", "+"+text))
	case isKind(line.AsDelete):
		fmt.Println(colorize(cfg, "red", "-"+text))
	default:
		fmt.Println(" " + text)
	}
}

func isKind(cast func() (cst.HunkLine, bool)) bool {
	_, ok := cast()
	return ok
}

func colorize(cfg config, style, s string) string {
	if !cfg.Color {
		return s
	}
	return ansi.Color(s, style)
}

// truncateLine shortens s to fit within maxWidth terminal columns,
// measuring by grapheme cluster rather than byte or rune so multi-byte
// text isn't cut mid-character.
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 || uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	gr := uniseg.NewGraphemes(s)
	var b strings.Builder
	width := 0
	for gr.Next() {
		cluster := gr.Str()
		cw := uniseg.StringWidth(cluster)
		if width+cw > maxWidth-1 {
			break
		}
		b.WriteString(cluster)
		width += cw
	}
	b.WriteString("…")
	return b.String()
}

// applyAgainst parses data as a stream of per-file patch entries (§4.3) and
// applies each against orig's bytes, reporting a conflict or writing the
// patched result to stdout.
func applyAgainst(data []byte, origPath string) {
	orig, err := os.ReadFile(origPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read original file")
	}

	for _, entry := range patch.SplitEntries(data) {
		if entry.Kind != patch.PatchEntryKind {
			continue
		}
		pp, err := patch.ParsePatch(entry.Lines)
		if err != nil {
			logrus.WithError(err).Error("failed to parse patch entry")
			continue
		}
		out, err := pp.ApplyExact(orig)
		if err != nil {
			if ce, ok := err.(*patch.ConflictError); ok {
				logrus.Errorf("conflict at line %d: expected %q, found %q", ce.LineNo, ce.Expected, ce.Observed)
				continue
			}
			logrus.WithError(err).Error("apply failed")
			continue
		}
		os.Stdout.Write(out)
	}
}
