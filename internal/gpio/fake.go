package gpio

import "errors"

// FakeIO is a test double: reads return scripted input samples, writes are
// recorded for assertions.
type FakeIO struct {
	// Samples contains scripted input states. Each Read consumes the next
	// one; when exhausted the last sample repeats.
	Samples []InputState

	// ReadError, if set, is returned by Read.
	ReadError error

	// Current output levels as last written.
	Vent      bool
	Sprinkler bool
	Buzzer    bool

	// Closed tracks whether Close was called.
	Closed bool

	index int
}

// NewFakeIO creates a FakeIO with the given input samples.
func NewFakeIO(samples ...InputState) *FakeIO {
	return &FakeIO{Samples: samples}
}

// Read returns the next scripted sample, repeating the last one once the
// script runs out.
func (f *FakeIO) Read() (InputState, error) {
	if f.ReadError != nil {
		return InputState{}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return InputState{}, errors.New("no samples configured")
	}
	st := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return st, nil
}

func (f *FakeIO) SetVent(open bool) error {
	f.Vent = open
	return nil
}

func (f *FakeIO) SetSprinkler(on bool) error {
	f.Sprinkler = on
	return nil
}

func (f *FakeIO) SetBuzzer(on bool) error {
	f.Buzzer = on
	return nil
}

// Close marks the fake as closed.
func (f *FakeIO) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the sample script and clears recorded state.
func (f *FakeIO) Reset() {
	f.index = 0
	f.Closed = false
	f.Vent = false
	f.Sprinkler = false
	f.Buzzer = false
}
