package view

import (
	"fmt"

	"weathercheck/internal/weather"
)

// Placeholder is rendered for missing numeric fields.
const Placeholder = "—"

// MaxHourlyRows bounds the table and chart to the next 24 hours.
const MaxHourlyRows = 24

const hourLayout = "2006-01-02 15:04"

// Band is the background color band derived from the current temperature.
type Band string

const (
	BandCold    Band = "cold"
	BandMild    Band = "mild"
	BandHot     Band = "hot"
	BandNeutral Band = "neutral"
)

// Band color constants. Fixed, non-configurable.
var bandColors = map[Band]string{
	BandCold:    "#dbeafe",
	BandMild:    "#dcfce7",
	BandHot:     "#fee2e2",
	BandNeutral: "#f3f4f6",
}

// Color returns the band's background color.
func (b Band) Color() string {
	if c, ok := bandColors[b]; ok {
		return c
	}
	return bandColors[BandNeutral]
}

// BandForTemperature maps a current temperature to its band:
// below 10°C cold, 10 up to but excluding 25°C mild, 25°C and above hot.
// A missing temperature lands in the neutral band.
func BandForTemperature(t *float64) Band {
	switch {
	case t == nil:
		return BandNeutral
	case *t < 10:
		return BandCold
	case *t < 25:
		return BandMild
	default:
		return BandHot
	}
}

// CurrentView is the current-conditions block ready for display.
type CurrentView struct {
	Temperature   string
	WindSpeed     string
	WindDirection string
	Description   string
}

// HourRow is one row of the hourly forecast table.
type HourRow struct {
	Time        string
	Temperature string
	RainChance  string // empty when precipitation probability was absent
}

// ChartSeries is the temperature-over-time series for the page chart.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Temps  []float64 `json:"temps"`
}

// Report is everything the results page needs.
type Report struct {
	PlaceLine string
	Band      Band
	Current   CurrentView
	Hours     []HourRow
	Chart     ChartSeries
}

// BuildReport derives the display structures from a weather report.
func BuildReport(r weather.Report) Report {
	out := Report{
		PlaceLine: placeLine(r.Place),
		Band:      BandForTemperature(r.Forecast.Current.TemperatureC),
		Current:   buildCurrent(r.Forecast.Current),
	}

	hours := r.Forecast.Hourly
	if len(hours) > MaxHourlyRows {
		hours = hours[:MaxHourlyRows]
	}

	out.Hours = make([]HourRow, 0, len(hours))
	out.Chart.Labels = make([]string, 0, len(hours))
	out.Chart.Temps = make([]float64, 0, len(hours))

	for _, h := range hours {
		label := h.Time.Format(hourLayout)
		row := HourRow{
			Time:        label,
			Temperature: fmt.Sprintf("%.1f", h.TemperatureC),
		}
		if h.PrecipProbPct != nil {
			row.RainChance = fmt.Sprintf("%d%%", *h.PrecipProbPct)
		}
		out.Hours = append(out.Hours, row)
		out.Chart.Labels = append(out.Chart.Labels, label)
		out.Chart.Temps = append(out.Chart.Temps, h.TemperatureC)
	}

	return out
}

func placeLine(p weather.Place) string {
	if p.Admin1 != "" {
		return fmt.Sprintf("%s, %s, %s (%.2f, %.2f)", p.Name, p.Admin1, p.Country, p.Latitude, p.Longitude)
	}
	return fmt.Sprintf("%s, %s (%.2f, %.2f)", p.Name, p.Country, p.Latitude, p.Longitude)
}

func buildCurrent(c weather.CurrentConditions) CurrentView {
	v := CurrentView{
		Temperature:   Placeholder,
		WindSpeed:     Placeholder,
		WindDirection: Placeholder,
		Description:   weather.CodeUnknown,
	}
	if c.TemperatureC != nil {
		v.Temperature = fmt.Sprintf("%.1f", *c.TemperatureC)
	}
	if c.WindSpeedKmh != nil {
		v.WindSpeed = fmt.Sprintf("%.1f", *c.WindSpeedKmh)
	}
	if c.WindDirectionDeg != nil {
		v.WindDirection = fmt.Sprintf("%.0f°", *c.WindDirectionDeg)
	}
	if c.WeatherCode != nil {
		v.Description = weather.DescribeCode(*c.WeatherCode)
	}
	return v
}
