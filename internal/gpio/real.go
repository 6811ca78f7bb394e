//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealIO drives actual hardware through the Linux GPIO character device.
type RealIO struct {
	chip *gpiocdev.Chip

	up     *gpiocdev.Line
	down   *gpiocdev.Line
	sel    *gpiocdev.Line
	fire   *gpiocdev.Line
	lines  []*gpiocdev.Line // all requested lines, for Close
	vent   *gpiocdev.Line
	sprink *gpiocdev.Line
	buzzer *gpiocdev.Line
}

// NewRealIO requests every controller line from gpiochip0. Buttons and the
// smoke input are wired to 3.3V and read active high, so they are requested
// with pull-down; outputs start low (everything off, vent closed).
func NewRealIO(p Pins) (*RealIO, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealIO{chip: chip}

	input := func(dst **gpiocdev.Line, pin int, name string) error {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			return fmt.Errorf("request %s pin %d: %w", name, pin, err)
		}
		*dst = line
		r.lines = append(r.lines, line)
		return nil
	}
	output := func(dst **gpiocdev.Line, pin int, name string) error {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			return fmt.Errorf("request %s pin %d: %w", name, pin, err)
		}
		*dst = line
		r.lines = append(r.lines, line)
		return nil
	}

	steps := []func() error{
		func() error { return input(&r.up, p.Up, "up") },
		func() error { return input(&r.down, p.Down, "down") },
		func() error { return input(&r.sel, p.Select, "select") },
		func() error { return input(&r.fire, p.Fire, "fire") },
		func() error { return output(&r.sprink, p.Sprinkler, "sprinkler") },
		func() error { return output(&r.vent, p.Vent, "vent") },
		func() error { return output(&r.buzzer, p.Buzzer, "buzzer") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			r.release()
			return nil, err
		}
	}
	return r, nil
}

// Read samples all input lines at once.
func (r *RealIO) Read() (InputState, error) {
	var st InputState
	reads := []struct {
		line *gpiocdev.Line
		dst  *bool
		name string
	}{
		{r.up, &st.Up, "up"},
		{r.down, &st.Down, "down"},
		{r.sel, &st.Select, "select"},
		{r.fire, &st.Fire, "fire"},
	}
	for _, rd := range reads {
		v, err := rd.line.Value()
		if err != nil {
			return InputState{}, fmt.Errorf("read %s pin: %w", rd.name, err)
		}
		*rd.dst = v != 0
	}
	return st, nil
}

func (r *RealIO) SetVent(open bool) error {
	return r.set(r.vent, open, "vent")
}

func (r *RealIO) SetSprinkler(on bool) error {
	return r.set(r.sprink, on, "sprinkler")
}

func (r *RealIO) SetBuzzer(on bool) error {
	return r.set(r.buzzer, on, "buzzer")
}

func (r *RealIO) set(line *gpiocdev.Line, on bool, name string) error {
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s pin: %w", name, err)
	}
	return nil
}

// Close drives the actuators to the safe posture, then releases every line
// and the chip, collecting errors.
func (r *RealIO) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{r.sprink, r.vent, r.buzzer} {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drive low: %w", err))
		}
	}
	errs = append(errs, r.release()...)
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func (r *RealIO) release() []error {
	var errs []error
	for _, line := range r.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	r.lines = nil
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}
	return errs
}
