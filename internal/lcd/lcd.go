// Package lcd drives the 2x16 character display. The real implementation
// speaks the HD44780 4-bit parallel protocol over GPIO lines; the fake
// records writes into an in-memory buffer for tests.
package lcd

// Display geometry.
const (
	Rows = 2
	Cols = 16
)

// Display is the narrow rendering contract the controller needs: whole-line
// writes plus a blinking cursor as the edit affordance.
type Display interface {
	// Clear blanks the display and homes the cursor.
	Clear() error

	// WriteLine writes text starting at column 0 of row (0 or 1). Text
	// longer than Cols is truncated.
	WriteLine(row int, text string) error

	// SetCursor moves the cursor to (col, row).
	SetCursor(col, row int) error

	// SetBlink turns the blinking block cursor on or off at the current
	// cursor position.
	SetBlink(on bool) error

	// Close blanks the display and releases resources.
	Close() error
}
