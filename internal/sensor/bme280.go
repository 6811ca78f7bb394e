package sensor

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// DefaultI2CAddr is the BME280's primary address.
const DefaultI2CAddr = 0x76

// BME280 reads temperature, humidity and pressure through the periph.io
// bmxx80 driver. The device is left in standby between polls; Sense arms a
// forced one-shot measurement for every read.
type BME280 struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

// NewBME280 initializes the host, opens the I²C bus (empty name selects the
// default bus) and configures the device with the oversampling and filter
// settings the enclosure was tuned with: temperature 8x, pressure 4x,
// humidity 2x, IIR filter F4.
func NewBME280(busName string, addr uint16) (*BME280, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: host init: %v", ErrInit, err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("%w: open i2c bus %q: %v", ErrInit, busName, err)
	}

	logger.Infof("Starting BME280 reader [%#x]", addr)
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.Opts{
		Temperature: bmxx80.O8x,
		Pressure:    bmxx80.O4x,
		Humidity:    bmxx80.O2x,
		Filter:      bmxx80.F4,
	})
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("%w: bme280 at %#x: %v", ErrInit, addr, err)
	}

	return &BME280{bus: bus, dev: dev}, nil
}

// Read arms a forced measurement and converts the result to engineering
// units.
func (s *BME280) Read() (Reading, error) {
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return Reading{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return Reading{
		TemperatureC:    env.Temperature.Celsius(),
		HumidityPercent: float64(env.Humidity) / float64(physic.PercentRH),
		PressureHPa:     float64(env.Pressure) / float64(100*physic.Pascal),
	}, nil
}

// Close halts the device and closes the bus.
func (s *BME280) Close() error {
	var errs []error
	if err := s.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt bme280: %w", err))
	}
	if err := s.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
