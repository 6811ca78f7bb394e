package logic

import "fmt"

// Screen identifies one of the status pages shown on the 2x16 display.
type Screen int

const (
	ScreenTemperature Screen = iota
	ScreenHumidity
	ScreenPressure
	ScreenDateTime
	ScreenWatering

	screenCount
)

func (s Screen) String() string {
	switch s {
	case ScreenTemperature:
		return "temperature"
	case ScreenHumidity:
		return "humidity"
	case ScreenPressure:
		return "pressure"
	case ScreenDateTime:
		return "datetime"
	case ScreenWatering:
		return "watering"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Next cycles forward through the screen list, wrapping at the end.
func (s Screen) Next() Screen {
	return (s + 1) % screenCount
}

// Prev cycles backward, wrapping at the start.
func (s Screen) Prev() Screen {
	return (s + screenCount - 1) % screenCount
}

// Display geometry.
const (
	Rows = 2
	Cols = 16
)

// Frame is one full display update: two lines plus an optional blinking
// cursor used as the edit affordance. Frames are plain values so rendering
// stays testable without hardware.
type Frame struct {
	Line1    string
	Line2    string
	Blink    bool
	BlinkCol int
	BlinkRow int
}

const fireBanner = "Fire Present"

// viewFrame renders the status page for a screen from the latest reading and
// the current preferences.
func viewFrame(s Screen, r Reading, p *Preferences) Frame {
	switch s {
	case ScreenTemperature:
		return Frame{
			Line1: fmt.Sprintf("Temp: %.0fF", r.TemperatureF()),
			Line2: fmt.Sprintf("(%d, %d)", p.Temperature.Low, p.Temperature.High),
		}
	case ScreenHumidity:
		return Frame{
			Line1: fmt.Sprintf("RH: %.0f%%", r.HumidityPercent),
			Line2: fmt.Sprintf("(%d%%, %d%%)", p.Humidity.Low, p.Humidity.High),
		}
	case ScreenPressure:
		return Frame{
			Line1: fmt.Sprintf("PRS: %.0f mb", r.PressureHPa),
			Line2: fmt.Sprintf("%.3f atm", r.PressureAtm()),
		}
	case ScreenDateTime:
		return Frame{
			Line1: fmt.Sprintf("%02d:%02d:%02d", p.Clock.Hour, p.Clock.Minute, p.Clock.Second),
			Line2: fmt.Sprintf("%02d/%02d/%04d", p.Clock.Day, p.Clock.Month, p.Clock.Year),
		}
	default:
		return Frame{Line1: formatWatering(p.Watering)}
	}
}

// formatBand renders an edit-screen band line, e.g. "60 - 80" or
// "60% - 70%".
func formatBand(b Band, unit string) string {
	return fmt.Sprintf("%d%s - %d%s", b.Low, unit, b.High, unit)
}

// formatDateField renders one date edit field, e.g. "Minute: 30".
func formatDateField(field int, c Calendar) string {
	switch field {
	case 0:
		return fmt.Sprintf("Minute: %d", c.Minute)
	case 1:
		return fmt.Sprintf("Hour: %d", c.Hour)
	case 2:
		return fmt.Sprintf("Day: %d", c.Day)
	case 3:
		return fmt.Sprintf("Month: %d", c.Month)
	default:
		return fmt.Sprintf("Year: %d", c.Year)
	}
}

func formatWatering(w *WateringWindow) string {
	if w == nil {
		return "None"
	}
	return fmt.Sprintf("%02d:%02d - %02d:%02d",
		w.StartHour, w.StartMinute, w.EndHour, w.EndMinute)
}
