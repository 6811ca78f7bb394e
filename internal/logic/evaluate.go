package logic

// Reading is one environmental sensor snapshot in engineering units. A new
// one is produced per sensor poll and the previous one discarded; no history
// is kept.
type Reading struct {
	TemperatureC    float64
	HumidityPercent float64
	PressureHPa     float64
}

// TemperatureF converts to Fahrenheit, the unit the temperature band uses.
func (r Reading) TemperatureF() float64 {
	return r.TemperatureC*9/5 + 32
}

// PressureAtm converts hPa to standard atmospheres.
func (r Reading) PressureAtm() float64 {
	return r.PressureHPa * 0.000987
}

// ActuatorIntent is the output of threshold evaluation.
type ActuatorIntent struct {
	VentOpen    bool
	SprinklerOn bool
}

// Evaluate maps a reading and the preferences to actuator intents.
//
// The vent opens whenever the temperature leaves its band. The sprinkler runs
// when humidity is outside its band OR the watering window is active: either
// reason alone is sufficient. (The schedule check does not override a
// humidity-driven decision; that would make the humidity band dead whenever a
// window is set.)
func Evaluate(r Reading, p *Preferences) ActuatorIntent {
	return ActuatorIntent{
		VentOpen:    !p.Temperature.Contains(r.TemperatureF()),
		SprinklerOn: !p.Humidity.Contains(r.HumidityPercent) || p.IsWateringTime(),
	}
}
