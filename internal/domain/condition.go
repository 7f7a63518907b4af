package domain

// Temperature band thresholds in °F.
const (
	FreezingBelow = 32.0
	ColdBelow     = 50.0
	MildBelow     = 75.0
)

var (
	freezingConditions = []string{"Snow", "Sleet", "Freezing Rain", "Blizzard", "Cloudy"}
	coldConditions     = []string{"Rain", "Drizzle", "Overcast", "Partly Cloudy", "Cloudy"}
	mildConditions     = []string{"Partly Cloudy", "Mostly Sunny", "Clear", "Sunny", "Mild"}
	hotConditions      = []string{"Sunny", "Hot", "Clear", "Hazy", "Partly Cloudy"}
)

// ConditionsFor returns the condition vocabulary for a temperature band.
// Callers must not modify the returned slice.
func ConditionsFor(temp float64) []string {
	switch {
	case temp < FreezingBelow:
		return freezingConditions
	case temp < ColdBelow:
		return coldConditions
	case temp < MildBelow:
		return mildConditions
	default:
		return hotConditions
	}
}

// AllConditions returns every condition that can appear in any band.
func AllConditions() map[string]bool {
	all := make(map[string]bool)
	for _, set := range [][]string{freezingConditions, coldConditions, mildConditions, hotConditions} {
		for _, c := range set {
			all[c] = true
		}
	}
	return all
}
