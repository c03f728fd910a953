// Package patch implements the semantic patch model: parsing, byte-exact
// serialization, and exact application of unified and binary patches, plus
// the multi-file patch-stream framing built on top of them.
package patch

import "bytes"

// SplitLines splits data into a sequence of line slices such that
// concatenating the result reproduces data exactly. Every non-final slice
// ends in '\n'; the final slice may omit it. An empty input yields no
// elements.
func SplitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	var lines [][]byte
	start := 0
	for {
		idx := bytes.IndexByte(data[start:], '\n')
		if idx < 0 {
			lines = append(lines, data[start:])
			return lines
		}
		end := start + idx + 1
		lines = append(lines, data[start:end])
		start = end
		if start == len(data) {
			return lines
		}
	}
}

// noNewlineMarker is the literal line unified diffs use to mark that the
// preceding line was not terminated by a newline in the original file.
const noNewlineMarker = "\\ No newline at end of file\n"

// FoldNoNewlineMarkers folds any noNewlineMarker line into the line that
// precedes it by stripping that line's trailing newline, and removes the
// marker from the result. It returns a *PatchSyntaxError, and does not
// panic, if the marker appears with no previous line.
func FoldNoNewlineMarkers(lines [][]byte) ([][]byte, error) {
	out := make([][]byte, 0, len(lines))
	for _, line := range lines {
		if string(line) == noNewlineMarker {
			if len(out) == 0 {
				return nil, &PatchSyntaxError{
					Message: "no-newline marker with no preceding line",
					Line:    line,
				}
			}
			last := out[len(out)-1]
			out[len(out)-1] = bytes.TrimSuffix(last, []byte("\n"))
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
