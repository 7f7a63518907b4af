// Command validate checks a generated weather Parquet file for structural and
// value integrity: schema and column order, row counts, value bounds,
// condition vocabularies, and consistency of the denormalized station fields.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -file data.parquet \
//	  -stations 100 -days 365 -readings-per-day 24
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	parquetadapter "github.com/couchcryptid/weather-fixture-gen/internal/adapter/parquet"
	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

// maxErrors caps the messages kept per phase; the count is still exact.
const maxErrors = 20

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// shape is the dataset shape the file is expected to have. Zero fields are
// not checked.
type shape struct {
	stations       int
	days           int
	readingsPerDay int
}

func (s shape) rows() int {
	return s.stations * s.days * s.readingsPerDay
}

func main() {
	file := flag.String("file", "data.parquet", "path to the generated Parquet file")
	stations := flag.Int("stations", 0, "expected number of stations (0 skips the check)")
	days := flag.Int("days", 0, "expected number of days per station (0 skips the check)")
	readingsPerDay := flag.Int("readings-per-day", 0, "expected readings per day (0 skips the check)")
	flag.Parse()

	os.Exit(run(os.Stdout, *file, shape{stations: *stations, days: *days, readingsPerDay: *readingsPerDay}))
}

func run(out io.Writer, path string, want shape) int {
	fmt.Fprintln(out, "=== Weather Data Integrity Validation ===")
	fmt.Fprintln(out)

	info, err := parquetadapter.Inspect(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: inspect parquet: %v\n", err)
		return 1
	}

	readings, err := parquetadapter.ReadAll(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read parquet: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(info),
		validateRowCounts(info, readings, want),
		validateBounds(readings),
		validateConditions(readings),
		validateDenormalization(readings),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d in %d row group(s), %d bytes on disk\n", info.Rows, info.RowGroups, info.Size)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors[:min(len(p.errors), maxErrors)] {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
		if len(p.errors) > maxErrors {
			fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxErrors)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──

func validateSchema(info parquetadapter.FileInfo) *phase {
	p := &phase{name: "Phase 1: Schema (columns and order)"}

	if len(info.Columns) != len(domain.Columns) {
		p.errorf("expected %d columns, got %d", len(domain.Columns), len(info.Columns))
	}
	for i := range min(len(info.Columns), len(domain.Columns)) {
		col := info.Columns[i]
		if col.Name != domain.Columns[i] {
			p.errorf("column %d: expected %q, got %q", i, domain.Columns[i], col.Name)
			continue
		}
		if want := physicalKind(col.Name); col.Kind != want {
			p.errorf("column %q: expected physical type %s, got %s", col.Name, want, col.Kind)
		}
	}
	if info.RowGroups != 1 {
		p.errorf("expected a single row group, got %d", info.RowGroups)
	}
	return p
}

var stringColumns = map[string]bool{
	"station_id": true, "city": true, "region": true, "country": true,
	"weather_condition": true, "forecast_day1_condition": true, "forecast_day2_condition": true,
	"metadata": true,
}

func physicalKind(column string) string {
	switch {
	case stringColumns[column]:
		return "BYTE_ARRAY"
	case column == "timestamp" || column == "datetime":
		return "INT64"
	default:
		return "DOUBLE"
	}
}

// ── Phase 2: Row counts ──

func validateRowCounts(info parquetadapter.FileInfo, readings []domain.Reading, want shape) *phase {
	p := &phase{name: "Phase 2: Row Counts"}

	if int64(len(readings)) != info.Rows {
		p.errorf("footer reports %d rows, decoded %d", info.Rows, len(readings))
	}
	if len(readings) == 0 {
		p.errorf("file has no rows")
		return p
	}

	perStation := map[string]int{}
	for i := range readings {
		perStation[readings[i].StationID]++
	}

	if want.stations > 0 && len(perStation) != want.stations {
		p.errorf("expected %d stations, got %d", want.stations, len(perStation))
	}
	if want.rows() > 0 && len(readings) != want.rows() {
		p.errorf("expected %d rows, got %d", want.rows(), len(readings))
	}

	if want.days > 0 && want.readingsPerDay > 0 {
		perStationWant := want.days * want.readingsPerDay
		for id, n := range perStation {
			if n != perStationWant {
				p.errorf("station %s: expected %d readings, got %d", id, perStationWant, n)
			}
		}
	}

	// Readings of a station are contiguous and strictly increasing in time.
	seen := map[string]bool{}
	for i := range readings {
		r := &readings[i]
		if r.Timestamp != r.Datetime.UnixMilli() {
			p.errorf("row %d: timestamp %d does not match datetime %s", i, r.Timestamp, r.Datetime.Format(time.RFC3339))
		}
		if i > 0 && readings[i-1].StationID == r.StationID {
			if r.Timestamp <= readings[i-1].Timestamp {
				p.errorf("row %d: station %s timestamps not increasing", i, r.StationID)
			}
			continue
		}
		if seen[r.StationID] {
			p.errorf("row %d: station %s readings are not contiguous", i, r.StationID)
		}
		seen[r.StationID] = true
	}
	return p
}

// ── Phase 3: Bounds ──

// epsilon absorbs float error when comparing two independently rounded values.
const epsilon = 1e-9

type bound struct {
	name   string
	lo, hi float64
	get    func(*domain.Reading) float64
}

var bounds = []bound{
	{"latitude", domain.MinLatitude, domain.MaxLatitude, func(r *domain.Reading) float64 { return r.Latitude }},
	{"longitude", domain.MinLongitude, domain.MaxLongitude, func(r *domain.Reading) float64 { return r.Longitude }},
	{"elevation", domain.MinElevation, domain.MaxElevation, func(r *domain.Reading) float64 { return r.Elevation }},
	{"humidity", 0, 100, func(r *domain.Reading) float64 { return r.Humidity }},
	{"wind_speed", 0, 35, func(r *domain.Reading) float64 { return r.WindSpeed }},
	{"wind_direction", 0, 360, func(r *domain.Reading) float64 { return r.WindDirection }},
	{"pressure", 980, 1040, func(r *domain.Reading) float64 { return r.Pressure }},
	{"precipitation", 0, 0.5, func(r *domain.Reading) float64 { return r.Precipitation }},
	{"visibility", 0.1, 15, func(r *domain.Reading) float64 { return r.Visibility }},
	{"cloud_cover", 0, 100, func(r *domain.Reading) float64 { return r.CloudCover }},
	{"uv_index", 0, 12, func(r *domain.Reading) float64 { return r.UVIndex }},
	{"air_quality_index", 0, 300, func(r *domain.Reading) float64 { return r.AirQualityIndex }},
	{"soil_moisture", 0, 100, func(r *domain.Reading) float64 { return r.SoilMoisture }},
}

func validateBounds(readings []domain.Reading) *phase {
	p := &phase{name: "Phase 3: Value Bounds"}

	for i := range readings {
		r := &readings[i]
		for _, b := range bounds {
			if v := b.get(r); v < b.lo || v > b.hi {
				p.errorf("row %d: %s=%g outside [%g, %g]", i, b.name, v, b.lo, b.hi)
			}
		}
		if r.SolarRadiation < 0 {
			p.errorf("row %d: solar_radiation=%g is negative", i, r.SolarRadiation)
		}
		if r.ForecastDay1High < r.Temperature {
			p.errorf("row %d: forecast_day1_high=%g below temperature=%g", i, r.ForecastDay1High, r.Temperature)
		}
		if r.ForecastDay1Low > r.Temperature-5+epsilon {
			p.errorf("row %d: forecast_day1_low=%g not at least 5 below temperature=%g", i, r.ForecastDay1Low, r.Temperature)
		}
		if r.ForecastDay2Low > r.Temperature-5+epsilon {
			p.errorf("row %d: forecast_day2_low=%g not at least 5 below temperature=%g", i, r.ForecastDay2Low, r.Temperature)
		}
	}
	return p
}

// ── Phase 4: Conditions ──

// bandTolerance absorbs rounding of the stored temperature; the condition was
// drawn from the unrounded value.
const bandTolerance = 0.05

func validateConditions(readings []domain.Reading) *phase {
	p := &phase{name: "Phase 4: Condition Vocabularies"}
	all := domain.AllConditions()

	for i := range readings {
		r := &readings[i]
		if !slices.Contains(domain.ConditionsFor(r.Temperature-bandTolerance), r.WeatherCondition) &&
			!slices.Contains(domain.ConditionsFor(r.Temperature+bandTolerance), r.WeatherCondition) {
			p.errorf("row %d: weather_condition %q not valid for temperature %g", i, r.WeatherCondition, r.Temperature)
		}
		for _, c := range []string{r.ForecastDay1Condition, r.ForecastDay2Condition} {
			if !all[c] {
				p.errorf("row %d: forecast condition %q not in vocabulary", i, c)
			}
		}
	}
	return p
}

// ── Phase 5: Denormalization ──

func validateDenormalization(readings []domain.Reading) *phase {
	p := &phase{name: "Phase 5: Station Denormalization"}
	stations := map[string]domain.Station{}

	for i := range readings {
		r := &readings[i]
		st := r.Station()

		if st.Country != domain.Country {
			p.errorf("row %d: country %q, expected %q", i, st.Country, domain.Country)
		}
		if !slices.Contains(domain.Cities, st.City) {
			p.errorf("row %d: unknown city %q", i, st.City)
		}
		if !slices.Contains(domain.Regions, st.Region) {
			p.errorf("row %d: unknown region %q", i, st.Region)
		}
		if r.Metadata != st.Metadata() {
			p.errorf("row %d: metadata %q does not describe station %s", i, r.Metadata, st.ID)
		}

		first, ok := stations[st.ID]
		if !ok {
			stations[st.ID] = st
			continue
		}
		if first != st {
			p.errorf("row %d: station %s fields differ from its first reading", i, st.ID)
		}
	}
	return p
}
