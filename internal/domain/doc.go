// Package domain generates synthetic weather station data.
//
// # Stations
//
// A run draws a fixed number of stations inside the continental US bounding
// box:
//
//	latitude   25.0 .. 49.0
//	longitude -125.0 .. -65.0
//	elevation  0 .. 14000 ft
//
// Station IDs look like "KQX-0417" (three uppercase letters, four digits).
// IDs are random and may collide; nothing downstream relies on uniqueness.
//
// # Readings
//
// Every station produces one reading per hour of every day in the configured
// calendar window (365 days from 2023-01-01 by default). Temperature follows
// two cosine cycles plus uniform noise:
//
//	seasonal = cos(2π(yearDay-172)/365)    peaks around June 21
//	hourly   = cos(2π(hour-14)/24)         peaks at 14:00
//	temp     = base + seasonal*amplitude + 10*hourly + U(-5,5)
//
// base (45..75 °F) and amplitude (10..30 °F) are drawn once per station. The
// remaining metrics are either independent uniforms or simple functions of
// temperature. Humidity is clamped to [0,100], UV index to [0,12], and
// precipitation and solar radiation to be non-negative.
//
// # Conditions
//
// Weather conditions are drawn from one of four vocabularies chosen by
// temperature band: freezing (<32), cold (<50), mild (<75) and hot. Forecast
// conditions use the same bands applied to a perturbed temperature.
//
// # Determinism
//
// All randomness comes from a single PCG source seeded by the caller. Draws
// happen in a fixed order, so a seed fully determines the dataset.
package domain
