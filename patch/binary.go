package patch

import "fmt"

// BinaryPatch is surfaced when a single-file parse encounters the literal
// "Binary files X and Y differ" indicator in place of unified headers. It
// carries no content and can never be exactly applied.
type BinaryPatch struct {
	OldName string
	NewName string
}

// AsBytes renders the binary indicator line.
func (p *BinaryPatch) AsBytes() []byte {
	return []byte(fmt.Sprintf("Binary files %s and %s differ\n", p.OldName, p.NewName))
}

// ApplyExact always fails: binary patches carry no content to apply.
func (p *BinaryPatch) ApplyExact(orig []byte) ([]byte, error) {
	return nil, NewUnapplyableError("binary patch has no content to apply")
}
