package patchts

import "fmt"

// InvalidDateError reports a timestamp string that does not match the
// `YYYY-MM-DD HH:MM:SS [+-]HHMM` grammar at all.
type InvalidDateError struct {
	Raw string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid patch timestamp: %q", e.Raw)
}

// IsInvalidDateError reports whether err is an *InvalidDateError.
func IsInvalidDateError(err error) bool {
	_, ok := err.(*InvalidDateError)
	return ok
}

// NewInvalidDateError constructs an *InvalidDateError.
func NewInvalidDateError(raw string) error {
	return &InvalidDateError{Raw: raw}
}

// MissingTimezoneOffsetError reports a timestamp with a well-formed date and
// time but no trailing `[+-]HHMM` offset.
type MissingTimezoneOffsetError struct {
	Raw string
}

func (e *MissingTimezoneOffsetError) Error() string {
	return fmt.Sprintf("patch timestamp missing timezone offset: %q", e.Raw)
}

// IsMissingTimezoneOffsetError reports whether err is a
// *MissingTimezoneOffsetError.
func IsMissingTimezoneOffsetError(err error) bool {
	_, ok := err.(*MissingTimezoneOffsetError)
	return ok
}

// NewMissingTimezoneOffsetError constructs a *MissingTimezoneOffsetError.
func NewMissingTimezoneOffsetError(raw string) error {
	return &MissingTimezoneOffsetError{Raw: raw}
}

// InvalidTimezoneOffsetError reports a timestamp whose trailing offset is
// present but out of range (hours >= 24 or minutes >= 60) or unparseable.
type InvalidTimezoneOffsetError struct {
	Raw string
}

func (e *InvalidTimezoneOffsetError) Error() string {
	return fmt.Sprintf("invalid timezone offset in patch timestamp: %q", e.Raw)
}

// IsInvalidTimezoneOffsetError reports whether err is an
// *InvalidTimezoneOffsetError.
func IsInvalidTimezoneOffsetError(err error) bool {
	_, ok := err.(*InvalidTimezoneOffsetError)
	return ok
}

// NewInvalidTimezoneOffsetError constructs an *InvalidTimezoneOffsetError.
func NewInvalidTimezoneOffsetError(raw string) error {
	return &InvalidTimezoneOffsetError{Raw: raw}
}

// FormatOffsetError reports an offset passed to Format that isn't a whole
// number of minutes.
type FormatOffsetError struct {
	Offset int64
}

func (e *FormatOffsetError) Error() string {
	return fmt.Sprintf("timezone offset %d is not a whole number of minutes", e.Offset)
}

// IsFormatOffsetError reports whether err is a *FormatOffsetError.
func IsFormatOffsetError(err error) bool {
	_, ok := err.(*FormatOffsetError)
	return ok
}

// NewFormatOffsetError constructs a *FormatOffsetError.
func NewFormatOffsetError(offset int64) error {
	return &FormatOffsetError{Offset: offset}
}

// NegativeTimeError reports a (secs, offset) pair whose local time (secs +
// offset) falls before the epoch.
type NegativeTimeError struct {
	Secs   int64
	Offset int64
}

func (e *NegativeTimeError) Error() string {
	return fmt.Sprintf("negative local time: secs=%d offset=%d", e.Secs, e.Offset)
}

// IsNegativeTimeError reports whether err is a *NegativeTimeError.
func IsNegativeTimeError(err error) bool {
	_, ok := err.(*NegativeTimeError)
	return ok
}

// NewNegativeTimeError constructs a *NegativeTimeError.
func NewNegativeTimeError(secs, offset int64) error {
	return &NegativeTimeError{Secs: secs, Offset: offset}
}
