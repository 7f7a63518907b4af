package domain

import "time"

// Reading is one hourly observation for a station. Field order is the column
// order of the Parquet artifact; parquet and json names match.
type Reading struct {
	StationID string  `parquet:"station_id" json:"station_id"`
	Latitude  float64 `parquet:"latitude" json:"latitude"`
	Longitude float64 `parquet:"longitude" json:"longitude"`
	Elevation float64 `parquet:"elevation" json:"elevation"`
	City      string  `parquet:"city" json:"city"`
	Region    string  `parquet:"region" json:"region"`
	Country   string  `parquet:"country" json:"country"`

	Timestamp int64     `parquet:"timestamp" json:"timestamp"` // epoch milliseconds
	Datetime  time.Time `parquet:"datetime,timestamp(millisecond)" json:"datetime"`

	Temperature      float64 `parquet:"temperature" json:"temperature"`
	FeelsLike        float64 `parquet:"feels_like" json:"feels_like"`
	Humidity         float64 `parquet:"humidity" json:"humidity"`
	WindSpeed        float64 `parquet:"wind_speed" json:"wind_speed"`
	WindDirection    float64 `parquet:"wind_direction" json:"wind_direction"`
	Pressure         float64 `parquet:"pressure" json:"pressure"`
	Precipitation    float64 `parquet:"precipitation" json:"precipitation"`
	Visibility       float64 `parquet:"visibility" json:"visibility"`
	CloudCover       float64 `parquet:"cloud_cover" json:"cloud_cover"`
	WeatherCondition string  `parquet:"weather_condition" json:"weather_condition"`
	UVIndex          float64 `parquet:"uv_index" json:"uv_index"`
	DewPoint         float64 `parquet:"dew_point" json:"dew_point"`
	AirQualityIndex  float64 `parquet:"air_quality_index" json:"air_quality_index"`
	SoilMoisture     float64 `parquet:"soil_moisture" json:"soil_moisture"`
	SolarRadiation   float64 `parquet:"solar_radiation" json:"solar_radiation"`

	ForecastDay1High      float64 `parquet:"forecast_day1_high" json:"forecast_day1_high"`
	ForecastDay1Low       float64 `parquet:"forecast_day1_low" json:"forecast_day1_low"`
	ForecastDay1Condition string  `parquet:"forecast_day1_condition" json:"forecast_day1_condition"`
	ForecastDay2High      float64 `parquet:"forecast_day2_high" json:"forecast_day2_high"`
	ForecastDay2Low       float64 `parquet:"forecast_day2_low" json:"forecast_day2_low"`
	ForecastDay2Condition string  `parquet:"forecast_day2_condition" json:"forecast_day2_condition"`

	Metadata string `parquet:"metadata" json:"metadata"`
}

// Columns lists the artifact's column names in schema order.
var Columns = []string{
	"station_id", "latitude", "longitude", "elevation", "city", "region", "country",
	"timestamp", "datetime",
	"temperature", "feels_like", "humidity", "wind_speed", "wind_direction", "pressure",
	"precipitation", "visibility", "cloud_cover", "weather_condition", "uv_index",
	"dew_point", "air_quality_index", "soil_moisture", "solar_radiation",
	"forecast_day1_high", "forecast_day1_low", "forecast_day1_condition",
	"forecast_day2_high", "forecast_day2_low", "forecast_day2_condition",
	"metadata",
}

// Station returns the denormalized station fields carried by the reading.
// The metadata string is not part of the comparison key.
func (r Reading) Station() Station {
	return Station{
		ID:        r.StationID,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Elevation: r.Elevation,
		City:      r.City,
		Region:    r.Region,
		Country:   r.Country,
	}
}
