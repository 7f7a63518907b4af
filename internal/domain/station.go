package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Country is shared by every generated station.
const Country = "United States"

// Cities is the fixed pool station cities are drawn from.
var Cities = []string{
	"Springfield", "Riverdale", "Lakeside", "Mountainview", "Westport",
	"Oakridge", "Newport", "Fairview", "Brighton", "Cedar Hills",
	"Millville", "Pleasantville", "Greenfield", "Summerdale", "Winterfell",
	"Sunnyvale", "Brookside", "Highland", "Meadowbrook", "Pinecrest",
}

// Regions is the fixed set of station regions.
var Regions = []string{"North", "South", "East", "West", "Central"}

// Station bounds.
const (
	MinLatitude  = 25.0
	MaxLatitude  = 49.0
	MinLongitude = -125.0
	MaxLongitude = -65.0
	MinElevation = 0.0
	MaxElevation = 14000.0
)

// Station is a synthetic weather-sensing site. Its fields are copied into
// every reading it produces.
type Station struct {
	ID        string  `json:"station_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"` // feet
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
}

// Metadata renders the free-text description attached to each reading.
func (s Station) Metadata() string {
	return fmt.Sprintf("Weather data for %s region. Station ID: %s. Located at lat: %s, long: %s, elev: %sft.",
		s.City, s.ID, formatFloat(s.Latitude), formatFloat(s.Longitude), formatFloat(s.Elevation))
}

// formatFloat renders v in its shortest round-trip form, keeping a decimal
// point on integral values ("1200.0", not "1200").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
