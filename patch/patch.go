package patch

// Patch is satisfied by both UnifiedPatch and BinaryPatch so that callers
// parsing a patch stream (see stream.go) can treat entries uniformly.
type Patch interface {
	// AsBytes renders the patch as it would appear in a patch file. Hunk
	// headers are re-rendered from their ranges (see Hunk.Header), so a
	// header that spells out a count of 1 does not come back unchanged.
	AsBytes() []byte
	// ApplyExact applies the patch to orig, returning the patched bytes
	// or a *ConflictError / *UnapplyableError.
	ApplyExact(orig []byte) ([]byte, error)
}
