package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSchemaMismatch is returned when a forecast payload is not valid JSON or
// does not satisfy the required-field contract of the data model. No partial
// result is ever produced alongside it.
var ErrSchemaMismatch = errors.New("forecast payload does not match schema")

// ForecastResult is the top-level Dark Sky forecast response for one
// coordinate query. The tree is populated once by ParseForecast and not
// mutated afterwards.
//
// Latitude and longitude are kept as json.Number so the provider's exact
// decimal text survives a parse/serialize round trip. Alerts is a slice
// pointer rather than a bare slice so a present-but-empty alert list stays
// distinct from an absent one across that round trip.
type ForecastResult struct {
	Latitude  json.Number     `json:"latitude"`
	Longitude json.Number     `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Currently Weather         `json:"currently"`
	Minutely  *MinutelySeries `json:"minutely,omitempty"`
	Hourly    HourlySeries    `json:"hourly"`
	Daily     DailySeries     `json:"daily"`
	Alerts    *[]Alert        `json:"alerts,omitempty"`
	Flags     Flags           `json:"flags"`
	Offset    int             `json:"offset"`
}

// Weather is a point-in-time set of conditions. It doubles as the element
// type of the hourly series. Pointer fields are optional on the wire;
// absence is valid and preserved on re-serialization.
type Weather struct {
	Time                 int64    `json:"time"`
	Summary              string   `json:"summary"`
	Icon                 string   `json:"icon"`
	NearestStormDistance *float64 `json:"nearestStormDistance,omitempty"`
	NearestStormBearing  *int     `json:"nearestStormBearing,omitempty"`
	PrecipIntensity      float64  `json:"precipIntensity"`
	PrecipProbability    float64  `json:"precipProbability"`
	PrecipType           *string  `json:"precipType,omitempty"`
	Temperature          float64  `json:"temperature"`
	ApparentTemperature  float64  `json:"apparentTemperature"`
	DewPoint             float64  `json:"dewPoint"`
	Humidity             float64  `json:"humidity"`
	Pressure             float64  `json:"pressure"`
	WindSpeed            float64  `json:"windSpeed"`
	WindGust             float64  `json:"windGust"`
	WindBearing          int      `json:"windBearing"`
	CloudCover           float64  `json:"cloudCover"`
	UVIndex              int      `json:"uvIndex"`
	Visibility           float64  `json:"visibility"`
	Ozone                float64  `json:"ozone"`
}

// Precipitation is one minute-by-minute precipitation forecast point.
type Precipitation struct {
	Time              int64   `json:"time"`
	PrecipIntensity   float64 `json:"precipIntensity"`
	PrecipProbability float64 `json:"precipProbability"`
}

// MinutelySeries is the minute-by-minute series, present only when the
// provider has short-term precipitation data for the location.
type MinutelySeries struct {
	Summary string          `json:"summary"`
	Icon    string          `json:"icon"`
	Data    []Precipitation `json:"data"`
}

type HourlySeries struct {
	Summary string    `json:"summary"`
	Icon    string    `json:"icon"`
	Data    []Weather `json:"data"`
}

type DailySeries struct {
	Summary string         `json:"summary"`
	Icon    string         `json:"icon"`
	Data    []DailyWeather `json:"data"`
}

// DailyWeather is one day of the daily series. Unlike Weather it carries
// separate high/low temperatures, each with the time it occurs, plus
// sun and moon data.
type DailyWeather struct {
	Time                        int64   `json:"time"`
	Summary                     string  `json:"summary"`
	Icon                        string  `json:"icon"`
	SunriseTime                 int64   `json:"sunriseTime"`
	SunsetTime                  int64   `json:"sunsetTime"`
	MoonPhase                   float64 `json:"moonPhase"`
	PrecipIntensity             float64 `json:"precipIntensity"`
	PrecipIntensityMax          float64 `json:"precipIntensityMax"`
	PrecipIntensityMaxTime      *int64  `json:"precipIntensityMaxTime,omitempty"`
	PrecipProbability           float64 `json:"precipProbability"`
	PrecipType                  *string `json:"precipType,omitempty"`
	TemperatureHigh             float64 `json:"temperatureHigh"`
	TemperatureHighTime         int64   `json:"temperatureHighTime"`
	TemperatureLow              float64 `json:"temperatureLow"`
	TemperatureLowTime          int64   `json:"temperatureLowTime"`
	ApparentTemperatureHigh     float64 `json:"apparentTemperatureHigh"`
	ApparentTemperatureHighTime int64   `json:"apparentTemperatureHighTime"`
	ApparentTemperatureLow      float64 `json:"apparentTemperatureLow"`
	ApparentTemperatureLowTime  int64   `json:"apparentTemperatureLowTime"`
	DewPoint                    float64 `json:"dewPoint"`
	Humidity                    float64 `json:"humidity"`
	Pressure                    float64 `json:"pressure"`
	WindSpeed                   float64 `json:"windSpeed"`
	WindGust                    float64 `json:"windGust"`
	WindGustTime                int64   `json:"windGustTime"`
	WindBearing                 int     `json:"windBearing"`
	CloudCover                  float64 `json:"cloudCover"`
	UVIndex                     int     `json:"uvIndex"`
	UVIndexTime                 int64   `json:"uvIndexTime"`
	Visibility                  float64 `json:"visibility"`
	Ozone                       float64 `json:"ozone"`
}

// Alert is a severe-weather notice.
type Alert struct {
	Title       string `json:"title"`
	Time        int64  `json:"time"`
	Expires     int64  `json:"expires"`
	Description string `json:"description"`
	URI         string `json:"uri"`
}

// Flags is the response metadata object. The provider names these fields in
// kebab-case, unlike the rest of the payload; the tags replicate that
// exactly for interoperability.
type Flags struct {
	Sources        []string `json:"sources"`
	NearestStation float64  `json:"nearest-station"`
	Units          string   `json:"units"`
}

// Required wire fields per object. These lists, together with the struct
// tags above, are the statically declared schema: absent or null values for
// any listed field fail the whole parse.
var (
	forecastRequired = []string{
		"latitude", "longitude", "timezone", "currently", "hourly", "daily",
		"flags", "offset",
	}
	weatherRequired = []string{
		"time", "summary", "icon", "precipIntensity", "precipProbability",
		"temperature", "apparentTemperature", "dewPoint", "humidity",
		"pressure", "windSpeed", "windGust", "windBearing", "cloudCover",
		"uvIndex", "visibility", "ozone",
	}
	precipitationRequired = []string{"time", "precipIntensity", "precipProbability"}
	seriesRequired        = []string{"summary", "icon", "data"}
	dailyWeatherRequired  = []string{
		"time", "summary", "icon", "sunriseTime", "sunsetTime", "moonPhase",
		"precipIntensity", "precipIntensityMax", "precipProbability",
		"temperatureHigh", "temperatureHighTime", "temperatureLow",
		"temperatureLowTime", "apparentTemperatureHigh",
		"apparentTemperatureHighTime", "apparentTemperatureLow",
		"apparentTemperatureLowTime", "dewPoint", "humidity", "pressure",
		"windSpeed", "windGust", "windGustTime", "windBearing", "cloudCover",
		"uvIndex", "uvIndexTime", "visibility", "ozone",
	}
	alertRequired = []string{"title", "time", "expires", "description", "uri"}
	flagsRequired = []string{"sources", "nearest-station", "units"}
)

// ParseForecast decodes a forecast payload into a ForecastResult. The parse
// is atomic: any schema violation anywhere in the tree returns an error
// wrapping ErrSchemaMismatch and no result.
func ParseForecast(data []byte) (*ForecastResult, error) {
	var result ForecastResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, schemaErr(err)
	}
	return &result, nil
}

func schemaErr(err error) error {
	if errors.Is(err, ErrSchemaMismatch) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
}

// requireFields checks that data is a JSON object carrying a non-null value
// for every listed field.
func requireFields(data []byte, object string, fields []string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return schemaErr(err)
	}
	for _, name := range fields {
		v, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("%w: %s: missing required field %q", ErrSchemaMismatch, object, name)
		}
	}
	return nil
}

func (f *ForecastResult) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "forecast", forecastRequired); err != nil {
		return err
	}
	type alias ForecastResult
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*f = ForecastResult(a)
	return nil
}

func (w *Weather) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "weather", weatherRequired); err != nil {
		return err
	}
	type alias Weather
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*w = Weather(a)
	return nil
}

func (p *Precipitation) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "precipitation", precipitationRequired); err != nil {
		return err
	}
	type alias Precipitation
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*p = Precipitation(a)
	return nil
}

func (s *MinutelySeries) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "minutely", seriesRequired); err != nil {
		return err
	}
	type alias MinutelySeries
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*s = MinutelySeries(a)
	return nil
}

func (s *HourlySeries) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "hourly", seriesRequired); err != nil {
		return err
	}
	type alias HourlySeries
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*s = HourlySeries(a)
	return nil
}

func (s *DailySeries) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "daily", seriesRequired); err != nil {
		return err
	}
	type alias DailySeries
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*s = DailySeries(a)
	return nil
}

func (d *DailyWeather) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "daily weather", dailyWeatherRequired); err != nil {
		return err
	}
	type alias DailyWeather
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*d = DailyWeather(a)
	return nil
}

func (al *Alert) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "alert", alertRequired); err != nil {
		return err
	}
	type alias Alert
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*al = Alert(a)
	return nil
}

func (fl *Flags) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "flags", flagsRequired); err != nil {
		return err
	}
	type alias Flags
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return schemaErr(err)
	}
	*fl = Flags(a)
	return nil
}
