// Package gpio provides the controller's digital I/O with hardware
// abstraction. The real implementation uses the Linux GPIO character device;
// the fake implementation allows testing without hardware.
package gpio

// InputState is one raw sample of the digital inputs, all active high.
type InputState struct {
	Up     bool
	Down   bool
	Select bool
	Fire   bool // smoke/fire detector
}

// Inputs reads the buttons and the smoke detector.
type Inputs interface {
	// Read samples all input lines at once.
	Read() (InputState, error)

	// Close releases input resources.
	Close() error
}

// Outputs drives the actuators. Implementations must be safe to call with
// the same value repeatedly.
type Outputs interface {
	SetVent(open bool) error
	SetSprinkler(on bool) error
	SetBuzzer(on bool) error

	// Close drives every actuator to the safe posture (vent closed,
	// sprinkler off, buzzer off) and releases resources.
	Close() error
}

// IO bundles both directions; the real chip implements them together.
type IO interface {
	Inputs
	Outputs
}

// Pins holds the line assignments, BCM numbering.
type Pins struct {
	Up        int
	Down      int
	Select    int
	Fire      int
	Sprinkler int
	Vent      int
	Buzzer    int
}

// Default pin assignments (BCM).
const (
	DefaultPinUp        = 5
	DefaultPinDown      = 6
	DefaultPinSelect    = 13
	DefaultPinFire      = 19
	DefaultPinSprinkler = 20
	DefaultPinVent      = 21
	DefaultPinBuzzer    = 12
)

// DefaultPins returns the default line assignments.
func DefaultPins() Pins {
	return Pins{
		Up:        DefaultPinUp,
		Down:      DefaultPinDown,
		Select:    DefaultPinSelect,
		Fire:      DefaultPinFire,
		Sprinkler: DefaultPinSprinkler,
		Vent:      DefaultPinVent,
		Buzzer:    DefaultPinBuzzer,
	}
}
