package patch

import "fmt"

// PatchSyntaxError reports a malformed line encountered outside of a hunk
// header or file header (missing newline, malformed hunk-line prefix, and
// so on).
type PatchSyntaxError struct {
	Message string
	Line    []byte
}

func (e *PatchSyntaxError) Error() string {
	return fmt.Sprintf("patch syntax error: %s: %q", e.Message, e.Line)
}

// IsPatchSyntaxError reports whether err is a *PatchSyntaxError.
func IsPatchSyntaxError(err error) bool {
	_, ok := err.(*PatchSyntaxError)
	return ok
}

// NewPatchSyntaxError constructs a *PatchSyntaxError.
func NewPatchSyntaxError(message string, line []byte) error {
	return &PatchSyntaxError{Message: message, Line: line}
}

// MalformedPatchHeaderError reports a `--- `/`+++ ` header line that cannot
// be split into path and optional timestamp.
type MalformedPatchHeaderError struct {
	Message string
	Line    []byte
}

func (e *MalformedPatchHeaderError) Error() string {
	return fmt.Sprintf("malformed patch header: %s: %q", e.Message, e.Line)
}

// IsMalformedPatchHeaderError reports whether err is a
// *MalformedPatchHeaderError.
func IsMalformedPatchHeaderError(err error) bool {
	_, ok := err.(*MalformedPatchHeaderError)
	return ok
}

// NewMalformedPatchHeaderError constructs a *MalformedPatchHeaderError.
func NewMalformedPatchHeaderError(message string, line []byte) error {
	return &MalformedPatchHeaderError{Message: message, Line: line}
}

// MalformedHunkHeaderError reports an `@@ ... @@` line that fails the
// header grammar or range parse.
type MalformedHunkHeaderError struct {
	Message string
	Line    []byte
}

func (e *MalformedHunkHeaderError) Error() string {
	return fmt.Sprintf("malformed hunk header: %s: %q", e.Message, e.Line)
}

// IsMalformedHunkHeaderError reports whether err is a
// *MalformedHunkHeaderError.
func IsMalformedHunkHeaderError(err error) bool {
	_, ok := err.(*MalformedHunkHeaderError)
	return ok
}

// NewMalformedHunkHeaderError constructs a *MalformedHunkHeaderError.
func NewMalformedHunkHeaderError(message string, line []byte) error {
	return &MalformedHunkHeaderError{Message: message, Line: line}
}

// BinaryFilesError describes a "Binary files ... differ" indicator line.
// No parser in this package returns it: ParsePatch reports that line as a
// *BinaryPatch.
type BinaryFilesError struct {
	OldName string
	NewName string
}

func (e *BinaryFilesError) Error() string {
	return fmt.Sprintf("binary files %s and %s differ", e.OldName, e.NewName)
}

// IsBinaryFilesError reports whether err is a *BinaryFilesError.
func IsBinaryFilesError(err error) bool {
	_, ok := err.(*BinaryFilesError)
	return ok
}

// NewBinaryFilesError constructs a *BinaryFilesError.
func NewBinaryFilesError(oldName, newName string) error {
	return &BinaryFilesError{OldName: oldName, NewName: newName}
}

// ConflictError reports an exact-apply mismatch: the patch's expected
// original content disagrees with the actual content at LineNo.
type ConflictError struct {
	LineNo   int
	Observed []byte
	Expected []byte
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict at line %d: observed %q, expected %q", e.LineNo, e.Observed, e.Expected)
}

// IsConflictError reports whether err is a *ConflictError.
func IsConflictError(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

// NewConflictError constructs a *ConflictError.
func NewConflictError(lineNo int, observed, expected []byte) error {
	return &ConflictError{LineNo: lineNo, Observed: observed, Expected: expected}
}

// UnapplyableError reports an attempt to exactly apply a BinaryPatch, which
// carries no content to apply.
type UnapplyableError struct {
	Reason string
}

func (e *UnapplyableError) Error() string {
	if e.Reason == "" {
		return "patch cannot be applied"
	}
	return fmt.Sprintf("patch cannot be applied: %s", e.Reason)
}

// IsUnapplyableError reports whether err is an *UnapplyableError.
func IsUnapplyableError(err error) bool {
	_, ok := err.(*UnapplyableError)
	return ok
}

// NewUnapplyableError constructs an *UnapplyableError.
func NewUnapplyableError(reason string) error {
	return &UnapplyableError{Reason: reason}
}
