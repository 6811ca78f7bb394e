package logic

// Controller is the control-and-state engine. It is a single re-entrant
// state machine driven by Step at a fixed TickInterval cadence; all timing
// is expressed in tick counters so the package stays free of hardware, the
// OS and time.Sleep, and tests can drive it deterministically.
//
// Modes:
//
//	viewing — Up/Down cycle screens, Select opens the editor, and on each
//	          sensor sample the fire input is checked first, then thresholds
//	          are evaluated and the current screen rendered.
//	editing — per-screen field edit session polled at a 500 ms sub-cadence.
//	alarm   — fire override: sprinkler on, vent closed, buzzer on until the
//	          smoke input clears, then the vent is restored exactly.
type Controller struct {
	Prefs Preferences

	screen Screen
	mode   mode
	edit   editSession

	// cooldown gates Up/Down/Select; it decrements every tick regardless of
	// button state and a press is accepted only at zero.
	cooldown int

	// secondCountdown drives the wall clock at one Tick per second while in
	// viewing or alarm mode. The editor keeps its own cadence.
	secondCountdown int

	// alarmVentOpen remembers the vent posture to restore when the alarm
	// clears.
	alarmVentOpen bool

	vent      bool
	sprinkler bool
	buzzer    bool

	lastReading Reading
}

type mode int

const (
	modeViewing mode = iota
	modeEditing
	modeAlarm
)

// Tick cadence constants. Step must be called every TickInterval; the
// controller never reads a clock.
const (
	// TicksPerSecond is the number of Step calls per wall-clock second at
	// the 10 ms loop cadence.
	TicksPerSecond = 100

	// CooldownTicks is the 500 ms button debounce cooldown.
	CooldownTicks = 50

	// EditPollTicks is the 500 ms polling sub-cadence inside an edit
	// session.
	EditPollTicks = 50
)

// Edit value clamps. The humidity band is a percentage; the temperature band
// clamp is generous but keeps runaway presses bounded.
const (
	maxTemperatureF = 140
	maxHumidityPct  = 100
)

// Buttons is one raw sample of the three panel buttons, active high.
type Buttons struct {
	Up     bool
	Down   bool
	Select bool
}

// Input is everything the controller consumes on one tick. Reading is only
// inspected when Sampled is true, which the loop sets once per sensor poll
// interval.
type Input struct {
	Buttons Buttons
	Fire    bool
	Reading Reading
	Sampled bool
}

// Output is the controller's verdict for one tick. Frame is non-nil only
// when the display needs a redraw.
type Output struct {
	VentOpen    bool
	SprinklerOn bool
	BuzzerOn    bool
	Frame       *Frame
}

// editSession exists only while the operator walks a screen's fields.
type editSession struct {
	screen Screen
	field  int
	poll   int
	// parity alternates so the clock advances one real second per two
	// 500 ms polls.
	parity bool
}

// NewController returns a controller with default preferences, showing the
// temperature screen. The cooldown starts armed so a button held through
// boot does not navigate immediately.
func NewController() *Controller {
	return &Controller{
		Prefs:           DefaultPreferences(),
		cooldown:        CooldownTicks,
		secondCountdown: TicksPerSecond,
	}
}

// CurrentFrame renders the current screen for an unconditional redraw, e.g.
// at boot before the first sensor sample.
func (c *Controller) CurrentFrame() Frame {
	return viewFrame(c.screen, c.lastReading, &c.Prefs)
}

// Step advances the controller by one tick.
func (c *Controller) Step(in Input) Output {
	if c.cooldown > 0 {
		c.cooldown--
	}

	switch c.mode {
	case modeAlarm:
		return c.stepAlarm(in)
	case modeEditing:
		return c.stepEditing(in)
	default:
		return c.stepViewing(in)
	}
}

func (c *Controller) stepViewing(in Input) Output {
	c.secondCountdown--
	if c.secondCountdown <= 0 {
		c.secondCountdown = TicksPerSecond
		c.Prefs.Clock.Tick()
	}

	// Button input takes priority over sensor handling; Up wins over Down
	// wins over Select when several read high in the same tick. A press
	// inside the cooldown is swallowed, not queued.
	b := in.Buttons
	switch {
	case b.Up:
		if c.cooldown == 0 {
			c.cooldown = CooldownTicks
			c.screen = c.screen.Prev()
			return c.render()
		}
		return c.output(nil)
	case b.Down:
		if c.cooldown == 0 {
			c.cooldown = CooldownTicks
			c.screen = c.screen.Next()
			return c.render()
		}
		return c.output(nil)
	case b.Select:
		if c.cooldown == 0 {
			c.cooldown = CooldownTicks
			// Pressure is read-only; Select is a no-op there.
			if c.screen != ScreenPressure {
				return c.beginEdit()
			}
		}
		return c.output(nil)
	}

	if !in.Sampled {
		return c.output(nil)
	}

	// Fire override pre-empts threshold evaluation.
	if in.Fire {
		c.mode = modeAlarm
		c.alarmVentOpen = c.vent
		c.vent = false
		c.sprinkler = true
		c.buzzer = true
		c.secondCountdown = TicksPerSecond
		return c.output(&Frame{Line1: fireBanner})
	}

	c.lastReading = in.Reading
	intent := Evaluate(in.Reading, &c.Prefs)
	c.vent = intent.VentOpen
	c.sprinkler = intent.SprinklerOn
	return c.render()
}

// stepAlarm holds the emergency posture. It acts once per second: tick the
// clock, re-poll the smoke input, and on all-clear restore the pre-alarm
// vent state.
func (c *Controller) stepAlarm(in Input) Output {
	c.secondCountdown--
	if c.secondCountdown > 0 {
		return c.output(nil)
	}
	c.secondCountdown = TicksPerSecond
	c.Prefs.Clock.Tick()

	if in.Fire {
		return c.output(nil)
	}

	c.mode = modeViewing
	c.buzzer = false
	c.sprinkler = false
	c.vent = c.alarmVentOpen
	return c.render()
}

func (c *Controller) beginEdit() Output {
	c.mode = modeEditing
	c.edit = editSession{screen: c.screen, poll: EditPollTicks}
	return c.output(c.editFrame())
}

// finishEdit returns to viewing on the same screen and forces a render. The
// cooldown is re-armed so the Select that closed the session does not also
// navigate.
func (c *Controller) finishEdit() Output {
	c.mode = modeViewing
	c.cooldown = CooldownTicks
	return c.render()
}

func (c *Controller) stepEditing(in Input) Output {
	c.edit.poll--
	if c.edit.poll > 0 {
		return c.output(nil)
	}
	c.edit.poll = EditPollTicks

	// Wall-clock time keeps advancing during edits, at half the poll rate
	// so it does not drift at 2x.
	if c.edit.parity {
		c.Prefs.Clock.Tick()
	}
	c.edit.parity = !c.edit.parity

	switch c.edit.screen {
	case ScreenTemperature:
		return c.stepBandEdit(&c.Prefs.Temperature, in.Buttons, maxTemperatureF)
	case ScreenHumidity:
		return c.stepBandEdit(&c.Prefs.Humidity, in.Buttons, maxHumidityPct)
	case ScreenDateTime:
		return c.stepDateEdit(in.Buttons)
	case ScreenWatering:
		return c.stepWateringEdit(in.Buttons)
	}
	return c.finishEdit()
}

// stepBandEdit runs the two-pass bound edit shared by the temperature and
// humidity screens: field 0 is the low bound, field 1 the high bound, and
// the pair is swapped if the passes left it inverted.
func (c *Controller) stepBandEdit(b *Band, btn Buttons, max int) Output {
	bound := &b.Low
	if c.edit.field == 1 {
		bound = &b.High
	}

	switch {
	case btn.Up:
		if *bound < max {
			*bound++
		}
		return c.output(c.editFrame())
	case btn.Down:
		if *bound > 0 {
			*bound--
		}
		return c.output(c.editFrame())
	case btn.Select:
		c.edit.field++
		if c.edit.field > 1 {
			b.Normalize()
			return c.finishEdit()
		}
		return c.output(c.editFrame())
	}
	return c.output(nil)
}

// stepDateEdit walks minute, hour, day, month, year. Each field wraps in its
// own range; see Calendar's Adjust methods.
func (c *Controller) stepDateEdit(btn Buttons) Output {
	adjust := func(up bool) {
		cal := &c.Prefs.Clock
		switch c.edit.field {
		case 0:
			cal.AdjustMinute(up)
		case 1:
			cal.AdjustHour(up)
		case 2:
			cal.AdjustDay(up)
		case 3:
			cal.AdjustMonth(up)
		case 4:
			cal.AdjustYear(up)
		}
	}

	switch {
	case btn.Up:
		adjust(true)
		return c.output(c.editFrame())
	case btn.Down:
		adjust(false)
		return c.output(c.editFrame())
	case btn.Select:
		c.edit.field++
		if c.edit.field > 4 {
			return c.finishEdit()
		}
		return c.output(c.editFrame())
	}
	return c.output(nil)
}

// stepWateringEdit walks the four window fields in their encoded order:
// end-hour, start-minute, end-minute, start-hour. Pressing Up and Down
// together deletes the window at any point; the first Up/Down press on an
// unset window materializes the default one without adjusting it.
func (c *Controller) stepWateringEdit(btn Buttons) Output {
	if btn.Up && btn.Down {
		c.Prefs.Watering = nil
		return c.finishEdit()
	}

	switch {
	case btn.Up, btn.Down:
		if c.Prefs.Watering == nil {
			c.Prefs.SetDefaultWatering()
		} else {
			c.adjustWateringField(btn.Up)
		}
		return c.output(c.editFrame())
	case btn.Select:
		c.edit.field++
		if c.edit.field > 3 {
			if w := c.Prefs.Watering; w != nil {
				w.Normalize()
			}
			return c.finishEdit()
		}
		return c.output(c.editFrame())
	}
	return c.output(nil)
}

func (c *Controller) adjustWateringField(up bool) {
	w := c.Prefs.Watering
	switch c.edit.field {
	case 0:
		w.EndHour = wrap(w.EndHour, 24, up)
	case 1:
		w.StartMinute = wrap(w.StartMinute, 60, up)
	case 2:
		w.EndMinute = wrap(w.EndMinute, 60, up)
	case 3:
		w.StartHour = wrap(w.StartHour, 24, up)
	}
}

// editFrame renders the active edit field with the blinking cursor that
// marks which bound is live: column 0 for low/left fields, 15 for
// high/right fields, 7 for the single-value date fields.
func (c *Controller) editFrame() *Frame {
	p := &c.Prefs
	switch c.edit.screen {
	case ScreenTemperature:
		f := &Frame{
			Line1:    formatBand(p.Temperature, ""),
			Blink:    true,
			BlinkRow: 1,
		}
		if c.edit.field == 1 {
			f.BlinkCol = Cols - 1
		}
		return f
	case ScreenHumidity:
		f := &Frame{
			Line1:    formatBand(p.Humidity, "%"),
			Blink:    true,
			BlinkRow: 1,
		}
		if c.edit.field == 1 {
			f.BlinkCol = Cols - 1
		}
		return f
	case ScreenDateTime:
		return &Frame{
			Line1:    formatDateField(c.edit.field, p.Clock),
			Blink:    true,
			BlinkCol: 7,
			BlinkRow: 1,
		}
	case ScreenWatering:
		f := &Frame{
			Line1:    formatWatering(p.Watering),
			Blink:    true,
			BlinkRow: 1,
		}
		// Fields 0 and 1 sit in the left half of the window display.
		if c.edit.field >= 2 {
			f.BlinkCol = Cols - 1
		}
		return f
	}
	return nil
}

func (c *Controller) render() Output {
	f := viewFrame(c.screen, c.lastReading, &c.Prefs)
	return c.output(&f)
}

func (c *Controller) output(f *Frame) Output {
	return Output{
		VentOpen:    c.vent,
		SprinklerOn: c.sprinkler,
		BuzzerOn:    c.buzzer,
		Frame:       f,
	}
}
