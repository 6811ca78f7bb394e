package logic

// Calendar keeps wall-clock time and a date. The board has no RTC, so the
// calendar starts from a fixed epoch at boot and is advanced by Tick once
// per second from the control loop. Outside Tick every field is normalized:
// second/minute in [0,59], hour in [0,23], day in [1,DaysInMonth], month in
// [1,12].
type Calendar struct {
	Second int
	Minute int
	Hour   int
	Day    int
	Month  int // January = 1
	Year   int
}

// maxYear matches the 16-bit year register of the original hardware build.
const maxYear = 65535

// NewCalendar returns the boot epoch: 00:00:00 on 1 January 2000.
func NewCalendar() Calendar {
	return Calendar{Day: 1, Month: 1, Year: 2000}
}

// Tick advances the calendar by one second, cascading carries through
// minute, hour, day, month and year. The day/month rollover is a loop so a
// bulk catch-up that lands several months past the end of a month still
// normalizes; at one-tick granularity it runs at most once.
func (c *Calendar) Tick() {
	c.Second++
	if c.Second < 60 {
		return
	}
	c.Minute += c.Second / 60
	c.Second %= 60

	if c.Minute < 60 {
		return
	}
	c.Hour += c.Minute / 60
	c.Minute %= 60

	if c.Hour < 24 {
		return
	}
	c.Day += c.Hour / 24
	c.Hour %= 24

	for {
		dim := DaysInMonth(c.Month, c.Year)
		if c.Day <= dim {
			return
		}
		c.Day -= dim
		c.Month++
		if c.Month > 12 {
			c.Month = 1
			c.Year++
		}
	}
}

// IsLeapYear implements the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the day count for a 1-based month.
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// The Adjust methods implement the date edit screen: each field wraps within
// its own range without cascading into its neighbours. Day wraps against the
// current month's day count; editing the month afterwards does not
// re-validate a previously chosen day.

func (c *Calendar) AdjustMinute(up bool) {
	c.Minute = wrap(c.Minute, 60, up)
}

func (c *Calendar) AdjustHour(up bool) {
	c.Hour = wrap(c.Hour, 24, up)
}

func (c *Calendar) AdjustDay(up bool) {
	dim := DaysInMonth(c.Month, c.Year)
	c.Day = wrap(c.Day-1, dim, up) + 1
}

func (c *Calendar) AdjustMonth(up bool) {
	c.Month = wrap(c.Month-1, 12, up) + 1
}

// AdjustYear clamps instead of wrapping: down stops at 0, up at maxYear.
func (c *Calendar) AdjustYear(up bool) {
	if up {
		if c.Year < maxYear {
			c.Year++
		}
		return
	}
	if c.Year > 0 {
		c.Year--
	}
}

// wrap steps a 0-based value one up or down modulo n.
func wrap(v, n int, up bool) int {
	if up {
		return (v + 1) % n
	}
	return (v + n - 1) % n
}
