package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Starting at screen 0, five Downs come back around; one Up from 0 lands on
// the last screen.
func TestScreenCycling(t *testing.T) {
	s := ScreenTemperature
	for i := 0; i < 5; i++ {
		s = s.Next()
	}
	assert.Equal(t, ScreenTemperature, s)

	assert.Equal(t, ScreenWatering, ScreenTemperature.Prev())
	assert.Equal(t, ScreenTemperature, ScreenWatering.Next())
}

func TestScreenOrder(t *testing.T) {
	want := []Screen{
		ScreenTemperature,
		ScreenHumidity,
		ScreenPressure,
		ScreenDateTime,
		ScreenWatering,
	}
	s := ScreenTemperature
	for _, w := range want {
		assert.Equal(t, w, s)
		s = s.Next()
	}
}

func TestViewFrames(t *testing.T) {
	p := DefaultPreferences()
	p.Clock = Calendar{Second: 5, Minute: 7, Hour: 9, Day: 3, Month: 4, Year: 2024}
	r := Reading{TemperatureC: fToC(85), HumidityPercent: 65, PressureHPa: 1013}

	f := viewFrame(ScreenTemperature, r, &p)
	assert.Equal(t, "Temp: 85F", f.Line1)
	assert.Equal(t, "(60, 80)", f.Line2)
	assert.False(t, f.Blink)

	f = viewFrame(ScreenHumidity, r, &p)
	assert.Equal(t, "RH: 65%", f.Line1)
	assert.Equal(t, "(60%, 70%)", f.Line2)

	f = viewFrame(ScreenPressure, r, &p)
	assert.Equal(t, "PRS: 1013 mb", f.Line1)
	assert.Equal(t, "1.000 atm", f.Line2)

	f = viewFrame(ScreenDateTime, r, &p)
	assert.Equal(t, "09:07:05", f.Line1)
	assert.Equal(t, "03/04/2024", f.Line2)

	f = viewFrame(ScreenWatering, r, &p)
	assert.Equal(t, "None", f.Line1)

	p.Watering = &WateringWindow{StartMinute: 5, StartHour: 6, EndMinute: 30, EndHour: 7}
	f = viewFrame(ScreenWatering, r, &p)
	assert.Equal(t, "06:05 - 07:30", f.Line1)
}

func TestFrameLinesFitDisplay(t *testing.T) {
	p := DefaultPreferences()
	p.Temperature = Band{Low: 100, High: 140}
	p.Humidity = Band{Low: 100, High: 100}
	p.Clock = Calendar{Second: 59, Minute: 59, Hour: 23, Day: 31, Month: 12, Year: 65535}
	p.Watering = &WateringWindow{StartMinute: 59, StartHour: 23, EndMinute: 59, EndHour: 23}
	r := Reading{TemperatureC: 60, HumidityPercent: 100, PressureHPa: 1084.8}

	for s := ScreenTemperature; s < screenCount; s++ {
		f := viewFrame(s, r, &p)
		assert.LessOrEqual(t, len(f.Line1), Cols, "screen %v line 1: %q", s, f.Line1)
		assert.LessOrEqual(t, len(f.Line2), Cols, "screen %v line 2: %q", s, f.Line2)
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "60 - 80", formatBand(Band{Low: 60, High: 80}, ""))
	assert.Equal(t, "60% - 70%", formatBand(Band{Low: 60, High: 70}, "%"))

	cal := Calendar{Minute: 3, Hour: 14, Day: 9, Month: 11, Year: 2024}
	assert.Equal(t, "Minute: 3", formatDateField(0, cal))
	assert.Equal(t, "Hour: 14", formatDateField(1, cal))
	assert.Equal(t, "Day: 9", formatDateField(2, cal))
	assert.Equal(t, "Month: 11", formatDateField(3, cal))
	assert.Equal(t, "Year: 2024", formatDateField(4, cal))
}
