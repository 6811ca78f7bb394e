package lcd

import "fmt"

// Fake is an in-memory display recording every write for assertions.
type Fake struct {
	lines [Rows][]byte

	CursorCol int
	CursorRow int
	Blink     bool
	Clears    int
	Closed    bool
}

// NewFake returns a blank fake display.
func NewFake() *Fake {
	f := &Fake{}
	f.blank()
	return f
}

func (f *Fake) blank() {
	for r := 0; r < Rows; r++ {
		f.lines[r] = make([]byte, Cols)
		for c := 0; c < Cols; c++ {
			f.lines[r][c] = ' '
		}
	}
}

// Clear blanks the buffer and homes the cursor.
func (f *Fake) Clear() error {
	f.blank()
	f.CursorCol, f.CursorRow = 0, 0
	f.Clears++
	return nil
}

// WriteLine writes text into the buffer at column 0 of row, truncated to the
// display width.
func (f *Fake) WriteLine(row int, text string) error {
	if row < 0 || row >= Rows {
		return fmt.Errorf("row %d out of range", row)
	}
	if len(text) > Cols {
		text = text[:Cols]
	}
	copy(f.lines[row], text)
	f.CursorRow = row
	f.CursorCol = len(text)
	return nil
}

// SetCursor moves the recorded cursor position.
func (f *Fake) SetCursor(col, row int) error {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return fmt.Errorf("cursor (%d,%d) out of range", col, row)
	}
	f.CursorCol, f.CursorRow = col, row
	return nil
}

// SetBlink records the blink state.
func (f *Fake) SetBlink(on bool) error {
	f.Blink = on
	return nil
}

// Close marks the fake as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Line returns the current contents of a row, trailing spaces trimmed.
func (f *Fake) Line(row int) string {
	s := string(f.lines[row])
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}
