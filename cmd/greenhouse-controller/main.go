// Command greenhouse-controller runs the greenhouse enclosure: it polls the
// panel buttons and the smoke detector, samples a BME280 once per second,
// drives the roof vent, sprinkler and buzzer, and renders the menu on a 2x16
// character LCD.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"

	"github.com/mfreem/greenhouse-controller/internal/gpio"
	"github.com/mfreem/greenhouse-controller/internal/lcd"
	"github.com/mfreem/greenhouse-controller/internal/logic"
	"github.com/mfreem/greenhouse-controller/internal/sensor"
)

type config struct {
	poll       time.Duration
	sensorPoll time.Duration
	i2cBus     string
	i2cAddr    uint16
	pins       gpio.Pins
	lcdPins    lcd.Pins
}

func main() {
	poll := flag.Duration("poll", 10*time.Millisecond, "Control loop tick interval")
	sensorPoll := flag.Duration("sensor-poll", time.Second, "Sensor sampling interval")
	i2cBus := flag.String("i2c-bus", "", `I²C bus name ("" selects the default bus)`)
	i2cAddr := flag.Int("i2c-addr", sensor.DefaultI2CAddr, "BME280 I²C address")

	pinUp := flag.Int("pin-up", gpio.DefaultPinUp, "BCM pin number for the Up button")
	pinDown := flag.Int("pin-down", gpio.DefaultPinDown, "BCM pin number for the Down button")
	pinSelect := flag.Int("pin-select", gpio.DefaultPinSelect, "BCM pin number for the Select button")
	pinFire := flag.Int("pin-fire", gpio.DefaultPinFire, "BCM pin number for the smoke detector")
	pinSprinkler := flag.Int("pin-sprinkler", gpio.DefaultPinSprinkler, "BCM pin number for the sprinkler relay")
	pinVent := flag.Int("pin-vent", gpio.DefaultPinVent, "BCM pin number for the vent servo relay")
	pinBuzzer := flag.Int("pin-buzzer", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer")

	def := lcd.DefaultPins()
	lcdRS := flag.Int("pin-lcd-rs", def.RS, "BCM pin number for LCD register select")
	lcdE := flag.Int("pin-lcd-e", def.E, "BCM pin number for LCD enable")
	lcdD4 := flag.Int("pin-lcd-d4", def.D4, "BCM pin number for LCD data 4")
	lcdD5 := flag.Int("pin-lcd-d5", def.D5, "BCM pin number for LCD data 5")
	lcdD6 := flag.Int("pin-lcd-d6", def.D6, "BCM pin number for LCD data 6")
	lcdD7 := flag.Int("pin-lcd-d7", def.D7, "BCM pin number for LCD data 7")

	flag.Parse()

	cfg := config{
		poll:       *poll,
		sensorPoll: *sensorPoll,
		i2cBus:     *i2cBus,
		i2cAddr:    uint16(*i2cAddr),
		pins: gpio.Pins{
			Up:        *pinUp,
			Down:      *pinDown,
			Select:    *pinSelect,
			Fire:      *pinFire,
			Sprinkler: *pinSprinkler,
			Vent:      *pinVent,
			Buzzer:    *pinBuzzer,
		},
		lcdPins: lcd.Pins{RS: *lcdRS, E: *lcdE, D4: *lcdD4, D5: *lcdD5, D6: *lcdD6, D7: *lcdD7},
	}

	if err := run(cfg); err != nil {
		logger.Fatalf("fatal: %v", err)
	}
}

func run(cfg config) error {
	if cfg.sensorPoll < cfg.poll {
		return fmt.Errorf("sensor-poll %v must be at least poll %v", cfg.sensorPoll, cfg.poll)
	}

	io, err := gpio.NewRealIO(cfg.pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer io.Close()

	disp, err := lcd.NewHD44780(cfg.lcdPins)
	if err != nil {
		return fmt.Errorf("init lcd: %w", err)
	}
	defer disp.Close()

	clk := clockwork.NewRealClock()

	sens, err := sensor.NewBME280(cfg.i2cBus, cfg.i2cAddr)
	if err != nil {
		// A controller that cannot measure must not quietly regulate.
		// Make the fault audible and hold there until power-cycled.
		logger.Errorf("sensor init failed: %v", err)
		alarmBlink(io, clk)
	}
	defer sens.Close()

	ticker := clk.NewTicker(cfg.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logger.Infof("started: poll=%v sensor-poll=%v", cfg.poll, cfg.sensorPoll)

	sampleEvery := int(cfg.sensorPoll / cfg.poll)
	return runLoop(logic.NewController(), io, sens, disp, sampleEvery, ticker.Chan(), sigCh)
}

// runLoop drives the controller one tick at a time. The sensor is sampled
// every sampleEvery ticks; a failed read keeps the previous reading so
// regulation degrades gracefully instead of flapping.
func runLoop(ctl *logic.Controller, io gpio.IO, sens sensor.Sensor, disp lcd.Display, sampleEvery int, tick <-chan time.Time, sig <-chan os.Signal) error {
	applyFrame(disp, ctl.CurrentFrame())

	var (
		last        logic.Reading
		prev        logic.Output
		first       = true
		untilSample = 1
	)

	for {
		select {
		case s := <-sig:
			logger.Infof("received %v, shutting down", s)
			return nil

		case <-tick:
			st, err := io.Read()
			if err != nil {
				logger.Errorf("gpio read error: %v", err)
				continue
			}

			in := logic.Input{
				Buttons: logic.Buttons{Up: st.Up, Down: st.Down, Select: st.Select},
				Fire:    st.Fire,
			}

			untilSample--
			if untilSample <= 0 {
				untilSample = sampleEvery
				r, err := sens.Read()
				if err != nil {
					logger.Warnf("sensor read error, keeping last reading: %v", err)
				} else {
					last = logic.Reading{
						TemperatureC:    r.TemperatureC,
						HumidityPercent: r.HumidityPercent,
						PressureHPa:     r.PressureHPa,
					}
				}
				in.Reading = last
				in.Sampled = true
			}

			out := ctl.Step(in)
			applyOutputs(io, prev, out, first)
			if out.Frame != nil {
				applyFrame(disp, *out.Frame)
			}
			prev, first = out, false
		}
	}
}

// applyOutputs writes only the actuator lines that changed since the last
// tick, logging each transition.
func applyOutputs(io gpio.Outputs, prev, out logic.Output, first bool) {
	if first || out.VentOpen != prev.VentOpen {
		logger.Infof("vent %s", openClosed(out.VentOpen))
		if err := io.SetVent(out.VentOpen); err != nil {
			logger.Errorf("set vent: %v", err)
		}
	}
	if first || out.SprinklerOn != prev.SprinklerOn {
		logger.Infof("sprinkler %s", stateString(out.SprinklerOn))
		if err := io.SetSprinkler(out.SprinklerOn); err != nil {
			logger.Errorf("set sprinkler: %v", err)
		}
	}
	if first || out.BuzzerOn != prev.BuzzerOn {
		logger.Infof("buzzer %s", stateString(out.BuzzerOn))
		if err := io.SetBuzzer(out.BuzzerOn); err != nil {
			logger.Errorf("set buzzer: %v", err)
		}
	}
}

// applyFrame redraws the whole display from a frame: both lines, then the
// blinking edit cursor if the frame wants one.
func applyFrame(disp lcd.Display, f logic.Frame) {
	if err := disp.Clear(); err != nil {
		logger.Errorf("lcd clear: %v", err)
		return
	}
	if err := disp.WriteLine(0, f.Line1); err != nil {
		logger.Errorf("lcd line 1: %v", err)
	}
	if f.Line2 != "" {
		if err := disp.WriteLine(1, f.Line2); err != nil {
			logger.Errorf("lcd line 2: %v", err)
		}
	}
	if f.Blink {
		if err := disp.SetCursor(f.BlinkCol, f.BlinkRow); err != nil {
			logger.Errorf("lcd cursor: %v", err)
		}
	}
	if err := disp.SetBlink(f.Blink); err != nil {
		logger.Errorf("lcd blink: %v", err)
	}
}

// alarmBlink pulses the buzzer forever. Never returns; this is the terminal
// posture for a sensor that failed to initialize.
func alarmBlink(io gpio.Outputs, clk clockwork.Clock) {
	for {
		if err := io.SetBuzzer(true); err != nil {
			logger.Errorf("set buzzer: %v", err)
		}
		clk.Sleep(500 * time.Millisecond)
		if err := io.SetBuzzer(false); err != nil {
			logger.Errorf("set buzzer: %v", err)
		}
		clk.Sleep(time.Second)
	}
}

func stateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func openClosed(open bool) string {
	if open {
		return "OPEN"
	}
	return "CLOSED"
}
