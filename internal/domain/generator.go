package domain

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"

	// summerSolsticeDay is the day of year at which the seasonal cycle peaks.
	summerSolsticeDay = 172
	// afternoonPeakHour is the hour index at which the daily cycle peaks.
	afternoonPeakHour = 14
)

// DefaultStartDate is the first calendar day of a default run.
var DefaultStartDate = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// Params fixes the shape of a generated dataset.
type Params struct {
	NumStations    int
	Days           int
	ReadingsPerDay int
	StartDate      time.Time
}

// DefaultParams returns the full-year, 100-station shape.
func DefaultParams() Params {
	return Params{
		NumStations:    100,
		Days:           365,
		ReadingsPerDay: 24,
		StartDate:      DefaultStartDate,
	}
}

// Rows is the exact number of readings the params produce.
func (p Params) Rows() int {
	return p.NumStations * p.Days * p.ReadingsPerDay
}

// Generator draws stations and readings from a seeded random source.
// It is not safe for concurrent use.
type Generator struct {
	params Params
	rng    *rand.Rand
}

// NewGenerator creates a Generator whose output is fully determined by seed.
func NewGenerator(params Params, seed uint64) *Generator {
	return &Generator{
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Params returns the dataset shape the generator was built with.
func (g *Generator) Params() Params {
	return g.params
}

// Stations draws the configured number of stations.
func (g *Generator) Stations() []Station {
	stations := make([]Station, g.params.NumStations)
	for i := range stations {
		stations[i] = g.station()
	}
	return stations
}

func (g *Generator) station() Station {
	id := g.code(letters, 3) + "-" + g.code(digits, 4)
	lat := g.uniform(MinLatitude, MaxLatitude)
	lon := g.uniform(MinLongitude, MaxLongitude)
	elev := g.uniform(MinElevation, MaxElevation)
	city := g.choice(Cities)
	region := g.choice(Regions)
	return Station{
		ID:        id,
		Latitude:  lat,
		Longitude: lon,
		Elevation: elev,
		City:      city,
		Region:    region,
		Country:   Country,
	}
}

// Readings produces every hourly reading for the given stations, station by
// station in calendar order. The result has exactly
// len(stations)*Days*ReadingsPerDay entries. Cancellation is checked between
// stations.
func (g *Generator) Readings(ctx context.Context, stations []Station) ([]Reading, error) {
	out := make([]Reading, 0, len(stations)*g.params.Days*g.params.ReadingsPerDay)

	for _, st := range stations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Per-station temperature profile, fixed for the whole year.
		baseTemp := g.uniform(45, 75)
		amplitude := g.uniform(10, 30)
		metadata := st.Metadata()

		for d := 0; d < g.params.Days; d++ {
			day := g.params.StartDate.AddDate(0, 0, d)
			seasonal := math.Cos(2 * math.Pi * float64(day.YearDay()-summerSolsticeDay) / 365)
			dailyBase := baseTemp + seasonal*amplitude

			for h := 0; h < g.params.ReadingsPerDay; h++ {
				at := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, time.UTC)
				out = append(out, g.reading(st, metadata, at, h, dailyBase))
			}
		}
	}
	return out, nil
}

// reading draws one observation. The order of random draws is part of the
// seed contract and must not change.
func (g *Generator) reading(st Station, metadata string, at time.Time, hour int, dailyBase float64) Reading {
	hourly := math.Cos(2 * math.Pi * float64(hour-afternoonPeakHour) / 24)
	temp := dailyBase + hourly*10 + g.uniform(-5, 5)

	humidity := clamp(100-temp+g.uniform(-20, 20), 0, 100)
	windSpeed := g.uniform(0, 35)
	windDirection := g.uniform(0, 360)
	pressure := g.uniform(980, 1040)
	precipitation := max(0, g.uniform(-0.1, 0.5))
	visibility := g.uniform(0.1, 15)
	cloudCover := g.uniform(0, 100)
	uvIndex := clamp((temp-40)/10+g.uniform(-2, 5), 0, 12)
	dewPoint := temp - (100-humidity)/5 + g.uniform(-3, 3)
	condition := g.condition(temp)
	airQuality := g.uniform(0, 300)
	soilMoisture := g.uniform(0, 100)
	solarRadiation := max(0, temp*2+g.uniform(-50, 150))

	day1High := temp + g.uniform(0, 15)
	day1Low := temp - g.uniform(5, 15)
	day1Condition := g.condition(temp + g.uniform(-5, 5))
	day2High := temp + g.uniform(-10, 15)
	day2Low := temp - g.uniform(5, 20)
	day2Condition := g.condition(temp + g.uniform(-10, 10))

	return Reading{
		StationID: st.ID,
		Latitude:  st.Latitude,
		Longitude: st.Longitude,
		Elevation: st.Elevation,
		City:      st.City,
		Region:    st.Region,
		Country:   st.Country,

		Timestamp: at.UnixMilli(),
		Datetime:  at,

		Temperature:      round1(temp),
		FeelsLike:        round1(temp - windSpeed*0.1 + humidity*0.05 - 5),
		Humidity:         round1(humidity),
		WindSpeed:        round1(windSpeed),
		WindDirection:    round1(windDirection),
		Pressure:         round1(pressure),
		Precipitation:    round2(precipitation),
		Visibility:       round1(visibility),
		CloudCover:       round1(cloudCover),
		WeatherCondition: condition,
		UVIndex:          round1(uvIndex),
		DewPoint:         round1(dewPoint),
		AirQualityIndex:  round1(airQuality),
		SoilMoisture:     round1(soilMoisture),
		SolarRadiation:   round1(solarRadiation),

		ForecastDay1High:      round1(day1High),
		ForecastDay1Low:       round1(day1Low),
		ForecastDay1Condition: day1Condition,
		ForecastDay2High:      round1(day2High),
		ForecastDay2Low:       round1(day2Low),
		ForecastDay2Condition: day2Condition,

		Metadata: metadata,
	}
}

func (g *Generator) condition(temp float64) string {
	return g.choice(ConditionsFor(temp))
}

// uniform returns a value in [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

func (g *Generator) choice(options []string) string {
	return options[g.rng.IntN(len(options))]
}

func (g *Generator) code(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[g.rng.IntN(len(alphabet))]
	}
	return string(b)
}
