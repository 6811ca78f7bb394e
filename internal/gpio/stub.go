//go:build !linux

package gpio

import "errors"

// RealIO is not available on non-Linux platforms.
type RealIO struct{}

// NewRealIO returns an error on non-Linux platforms.
func NewRealIO(Pins) (*RealIO, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (r *RealIO) Read() (InputState, error) {
	return InputState{}, errors.New("gpio: not supported")
}

func (r *RealIO) SetVent(bool) error      { return errors.New("gpio: not supported") }
func (r *RealIO) SetSprinkler(bool) error { return errors.New("gpio: not supported") }
func (r *RealIO) SetBuzzer(bool) error    { return errors.New("gpio: not supported") }

func (r *RealIO) Close() error { return nil }
