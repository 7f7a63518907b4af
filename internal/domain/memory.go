package domain

import "unsafe"

// EstimateMemory approximates the in-memory footprint of readings in bytes:
// the fixed struct size of every row plus its string payloads. Strings shared
// between rows are counted once per row, the way a dataframe's deep memory
// accounting treats object columns.
func EstimateMemory(readings []Reading) int64 {
	total := int64(len(readings)) * int64(unsafe.Sizeof(Reading{}))
	for i := range readings {
		r := &readings[i]
		total += int64(len(r.StationID) + len(r.City) + len(r.Region) + len(r.Country) +
			len(r.WeatherCondition) + len(r.ForecastDay1Condition) + len(r.ForecastDay2Condition) +
			len(r.Metadata))
	}
	return total
}
