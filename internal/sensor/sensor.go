// Package sensor abstracts the environmental sensor. The real
// implementation reads a BME280 over I²C; the fake returns scripted
// readings for tests.
package sensor

import "errors"

// Reading is one sensor snapshot in engineering units.
type Reading struct {
	TemperatureC    float64
	HumidityPercent float64
	PressureHPa     float64
}

// Sensor produces readings on demand. Each Read arms a one-shot forced
// measurement, so back-to-back calls are cheap but not free.
type Sensor interface {
	Read() (Reading, error)
	Close() error
}

// Fault kinds. Errors from this package wrap exactly one of these so call
// sites can state a recovery policy with errors.Is: init faults are fatal at
// boot, read faults fall back to the last good reading.
var (
	ErrInit = errors.New("sensor init")
	ErrRead = errors.New("sensor read")
)
