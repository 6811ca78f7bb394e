//go:build !linux

package lcd

import "errors"

// Pins holds the HD44780 line assignments; unused off Linux.
type Pins struct {
	RS int
	E  int
	D4 int
	D5 int
	D6 int
	D7 int
}

// DefaultPins returns the default display wiring.
func DefaultPins() Pins {
	return Pins{RS: 25, E: 24, D4: 23, D5: 22, D6: 27, D7: 17}
}

// HD44780 is not available on non-Linux platforms.
type HD44780 struct{}

// NewHD44780 returns an error on non-Linux platforms.
func NewHD44780(Pins) (*HD44780, error) {
	return nil, errors.New("lcd: not supported on this platform (requires Linux)")
}

func (d *HD44780) Clear() error                { return errors.New("lcd: not supported") }
func (d *HD44780) WriteLine(int, string) error { return errors.New("lcd: not supported") }
func (d *HD44780) SetCursor(int, int) error    { return errors.New("lcd: not supported") }
func (d *HD44780) SetBlink(bool) error         { return errors.New("lcd: not supported") }
func (d *HD44780) Close() error                { return nil }
