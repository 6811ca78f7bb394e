package sensor

import "errors"

// Fake is a test double returning scripted readings.
type Fake struct {
	// Readings are returned in order; when exhausted the last one repeats.
	Readings []Reading

	// ReadError, if set, is returned by Read instead of a reading.
	ReadError error

	// Closed tracks whether Close was called.
	Closed bool

	index int
}

// NewFake creates a Fake with the given readings.
func NewFake(readings ...Reading) *Fake {
	return &Fake{Readings: readings}
}

// Read returns the next scripted reading.
func (f *Fake) Read() (Reading, error) {
	if f.ReadError != nil {
		return Reading{}, f.ReadError
	}
	if len(f.Readings) == 0 {
		return Reading{}, errors.New("no readings configured")
	}
	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return r, nil
}

// Close marks the fake as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
