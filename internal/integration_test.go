package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreem/greenhouse-controller/internal/gpio"
	"github.com/mfreem/greenhouse-controller/internal/lcd"
	"github.com/mfreem/greenhouse-controller/internal/logic"
	"github.com/mfreem/greenhouse-controller/internal/sensor"
)

// rig wires the controller to the three hardware fakes and replicates the
// main loop's tick handling: read inputs, sample the sensor on its own
// cadence, step the controller, mirror the outputs and redraw the display.
type rig struct {
	ctl  *logic.Controller
	io   *gpio.FakeIO
	sens *sensor.Fake
	disp *lcd.Fake

	sampleEvery int
	untilSample int
	last        logic.Reading
}

func newRig(io *gpio.FakeIO, sens *sensor.Fake, sampleEvery int) *rig {
	return &rig{
		ctl:         logic.NewController(),
		io:          io,
		sens:        sens,
		disp:        lcd.NewFake(),
		sampleEvery: sampleEvery,
		untilSample: 1,
	}
}

func (r *rig) run(t *testing.T, ticks int) {
	t.Helper()
	for i := 0; i < ticks; i++ {
		st, err := r.io.Read()
		require.NoError(t, err)

		in := logic.Input{
			Buttons: logic.Buttons{Up: st.Up, Down: st.Down, Select: st.Select},
			Fire:    st.Fire,
		}

		r.untilSample--
		if r.untilSample <= 0 {
			r.untilSample = r.sampleEvery
			if reading, err := r.sens.Read(); err == nil {
				r.last = logic.Reading{
					TemperatureC:    reading.TemperatureC,
					HumidityPercent: reading.HumidityPercent,
					PressureHPa:     reading.PressureHPa,
				}
			}
			in.Reading = r.last
			in.Sampled = true
		}

		out := r.ctl.Step(in)
		require.NoError(t, r.io.SetVent(out.VentOpen))
		require.NoError(t, r.io.SetSprinkler(out.SprinklerOn))
		require.NoError(t, r.io.SetBuzzer(out.BuzzerOn))

		if out.Frame != nil {
			require.NoError(t, r.disp.Clear())
			require.NoError(t, r.disp.WriteLine(0, out.Frame.Line1))
			if out.Frame.Line2 != "" {
				require.NoError(t, r.disp.WriteLine(1, out.Frame.Line2))
			}
			if out.Frame.Blink {
				require.NoError(t, r.disp.SetCursor(out.Frame.BlinkCol, out.Frame.BlinkRow))
			}
			require.NoError(t, r.disp.SetBlink(out.Frame.Blink))
		}
	}
}

// repeat returns n copies of sample.
func repeat(sample gpio.InputState, n int) []gpio.InputState {
	out := make([]gpio.InputState, n)
	for i := range out {
		out[i] = sample
	}
	return out
}

// press is a one-tick button sample followed by idle ticks.
func press(b gpio.InputState, idle int) []gpio.InputState {
	return append([]gpio.InputState{b}, repeat(gpio.InputState{}, idle)...)
}

// TestIntegrationRegulationFlow drives two sensor samples through the full
// stack and checks the actuators and display track the readings.
func TestIntegrationRegulationFlow(t *testing.T) {
	io := gpio.NewFakeIO(gpio.InputState{})
	sens := sensor.NewFake(
		sensor.Reading{TemperatureC: 30, HumidityPercent: 65, PressureHPa: 1010}, // 86°F, hot
		sensor.Reading{TemperatureC: 21, HumidityPercent: 40, PressureHPa: 1010}, // 70°F, dry
	)
	r := newRig(io, sens, logic.TicksPerSecond)

	// First second: hot but humid enough. Vent opens, sprinkler stays off.
	r.run(t, logic.TicksPerSecond)
	assert.True(t, io.Vent)
	assert.False(t, io.Sprinkler)
	assert.False(t, io.Buzzer)
	assert.Equal(t, "Temp: 86F", r.disp.Line(0))
	assert.Equal(t, "(60, 80)", r.disp.Line(1))

	// Second second: cooled off but dry. Vent closes, sprinkler turns on.
	r.run(t, logic.TicksPerSecond)
	assert.False(t, io.Vent)
	assert.True(t, io.Sprinkler)
	assert.Equal(t, "Temp: 70F", r.disp.Line(0))
}

// TestIntegrationEditRaisesBand walks a full edit session on the temperature
// screen: Select opens the editor, Select again moves to the high bound,
// three Up presses raise it from 80 to 83, a final Select closes the
// session, and the next sample evaluates against the new band.
func TestIntegrationEditRaisesBand(t *testing.T) {
	samples := repeat(gpio.InputState{}, 50) // boot cooldown drains
	samples = append(samples, press(gpio.InputState{Select: true}, 49)...)
	samples = append(samples, press(gpio.InputState{Select: true}, 49)...)
	samples = append(samples, press(gpio.InputState{Up: true}, 49)...)
	samples = append(samples, press(gpio.InputState{Up: true}, 49)...)
	samples = append(samples, press(gpio.InputState{Up: true}, 49)...)
	samples = append(samples, press(gpio.InputState{Select: true}, 0)...)
	samples = append(samples, gpio.InputState{})

	io := gpio.NewFakeIO(samples...)
	// 28°C is 82.4°F: outside the default band, inside the raised one.
	sens := sensor.NewFake(sensor.Reading{TemperatureC: 28, HumidityPercent: 65, PressureHPa: 1010})
	r := newRig(io, sens, logic.TicksPerSecond)

	// Boot sample opens the vent against the default 60-80 band.
	r.run(t, 50)
	assert.True(t, io.Vent)

	// Select enters the editor on the low bound.
	r.run(t, 1)
	assert.Equal(t, "60 - 80", r.disp.Line(0))
	assert.True(t, r.disp.Blink)
	assert.Equal(t, 0, r.disp.CursorCol)

	// Next poll: Select moves to the high bound.
	r.run(t, 50)
	assert.Equal(t, 15, r.disp.CursorCol)

	// Three Ups, one poll apart.
	r.run(t, 150)
	assert.Equal(t, "60 - 83", r.disp.Line(0))

	// The closing Select redraws the view with the new band.
	r.run(t, 50)
	assert.Equal(t, "(60, 83)", r.disp.Line(1))
	assert.False(t, r.disp.Blink)

	// The next sample finds 82.4°F inside the raised band.
	r.run(t, 100)
	assert.False(t, io.Vent)
	assert.Equal(t, "Temp: 82F", r.disp.Line(0))
}

// TestIntegrationFireLifecycle covers alarm entry, the held emergency
// posture while smoke persists, and the restore once it clears.
func TestIntegrationFireLifecycle(t *testing.T) {
	samples := repeat(gpio.InputState{}, 100)
	samples = append(samples, repeat(gpio.InputState{Fire: true}, 150)...)
	samples = append(samples, gpio.InputState{})

	io := gpio.NewFakeIO(samples...)
	sens := sensor.NewFake(sensor.Reading{TemperatureC: 21, HumidityPercent: 65, PressureHPa: 1010})
	r := newRig(io, sens, logic.TicksPerSecond)

	// Calm first second: everything idle.
	r.run(t, 100)
	assert.False(t, io.Vent)
	assert.False(t, io.Sprinkler)
	assert.False(t, io.Buzzer)

	// Smoke on the next sample: emergency posture and the banner.
	r.run(t, 1)
	assert.False(t, io.Vent)
	assert.True(t, io.Sprinkler)
	assert.True(t, io.Buzzer)
	assert.Equal(t, "Fire Present", r.disp.Line(0))
	assert.Equal(t, "", r.disp.Line(1))

	// One second later smoke is still present: posture holds.
	r.run(t, 100)
	assert.True(t, io.Sprinkler)
	assert.True(t, io.Buzzer)

	// Smoke clears before the next one-second check: posture restored and
	// the view redrawn.
	r.run(t, 100)
	assert.False(t, io.Sprinkler)
	assert.False(t, io.Buzzer)
	assert.False(t, io.Vent)
	assert.Equal(t, "Temp: 70F", r.disp.Line(0))
}

// TestIntegrationNavigationCycle pages through every screen with Down and
// confirms the cycle returns to temperature.
func TestIntegrationNavigationCycle(t *testing.T) {
	samples := repeat(gpio.InputState{}, 50)
	for i := 0; i < 5; i++ {
		samples = append(samples, press(gpio.InputState{Down: true}, 49)...)
	}
	samples = append(samples, gpio.InputState{})

	io := gpio.NewFakeIO(samples...)
	sens := sensor.NewFake(sensor.Reading{TemperatureC: 21, HumidityPercent: 65, PressureHPa: 1013})
	r := newRig(io, sens, 1000) // one boot sample only

	r.run(t, 51)
	assert.Equal(t, "RH: 65%", r.disp.Line(0))
	assert.Equal(t, "(60%, 70%)", r.disp.Line(1))

	r.run(t, 50)
	assert.Equal(t, "PRS: 1013 mb", r.disp.Line(0))

	r.run(t, 50)
	assert.Equal(t, "00:00:01", r.disp.Line(0))
	assert.Equal(t, "01/01/2000", r.disp.Line(1))

	r.run(t, 50)
	assert.Equal(t, "None", r.disp.Line(0))

	r.run(t, 50)
	assert.Equal(t, "Temp: 70F", r.disp.Line(0))
}
