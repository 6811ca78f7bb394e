package logic

// Band is an inclusive (low, high) acceptable range for a sensed quantity.
type Band struct {
	Low  int
	High int
}

// Normalize swaps the bounds when an edit left them inverted. The set of
// values is unchanged, only the order.
func (b *Band) Normalize() {
	if b.Low > b.High {
		b.Low, b.High = b.High, b.Low
	}
}

// Contains reports whether v is inside the band.
func (b Band) Contains(v float64) bool {
	return v >= float64(b.Low) && v <= float64(b.High)
}

// WateringWindow is a daily time-of-day range during which the sprinkler is
// forced on regardless of humidity.
type WateringWindow struct {
	StartMinute int
	StartHour   int
	EndMinute   int
	EndHour     int
}

// Normalize swaps the start and end endpoints when the start sorts after the
// end, comparing hour first and minute second.
func (w *WateringWindow) Normalize() {
	if w.StartHour > w.EndHour ||
		(w.StartHour == w.EndHour && w.StartMinute > w.EndMinute) {
		w.StartMinute, w.EndMinute = w.EndMinute, w.StartMinute
		w.StartHour, w.EndHour = w.EndHour, w.StartHour
	}
}

// Preferences holds the operator-editable configuration and the running
// clock. Nothing is persisted; every boot starts from DefaultPreferences.
type Preferences struct {
	Temperature Band // degrees Fahrenheit
	Humidity    Band // percent relative humidity
	Watering    *WateringWindow
	Clock       Calendar
}

// DefaultPreferences returns the boot configuration: 60-80 F, 60-70 % RH,
// no watering window.
func DefaultPreferences() Preferences {
	return Preferences{
		Temperature: Band{Low: 60, High: 80},
		Humidity:    Band{Low: 60, High: 70},
		Clock:       NewCalendar(),
	}
}

// SetDefaultWatering materializes the default 00:00 - 01:00 window. The
// watering editor calls this on the first Up/Down press when no window is
// set.
func (p *Preferences) SetDefaultWatering() {
	p.Watering = &WateringWindow{EndHour: 1}
}

// IsWateringTime reports whether the clock is inside the watering window.
// Always false when no window is set.
//
// The minute and hour bounds are tested independently rather than as one
// chronological interval: a window crossing midnight never matches, and a
// time like 10:45 is outside a 10:30 - 11:10 window because 45 > 10. This is
// the specified behavior, kept as-is.
func (p *Preferences) IsWateringTime() bool {
	w := p.Watering
	if w == nil {
		return false
	}
	return p.Clock.Minute >= w.StartMinute &&
		p.Clock.Minute <= w.EndMinute &&
		p.Clock.Hour >= w.StartHour &&
		p.Clock.Hour <= w.EndHour
}
