package httpapi

import (
	"encoding/json"
	"html/template"
	"strings"

	"weathercheck/internal/view"
)

// pageData feeds the single page template. Report is nil until a submission
// succeeds; Message carries the warning or error for failed ones.
type pageData struct {
	City        string
	Message     string
	MessageKind string // "warn" or "error"
	Report      *view.Report
	ChartJSON   template.JS
	BgColor     string
}

var pageTpl = template.Must(template.New("page").Parse(pageTemplate))

// renderPage executes the page template for the given data, filling in the
// background color from the report's band (neutral when there is no report).
func renderPage(data pageData) (string, error) {
	if data.BgColor == "" {
		data.BgColor = view.BandNeutral.Color()
		if data.Report != nil {
			data.BgColor = data.Report.Band.Color()
		}
	}

	if data.Report != nil {
		chart, err := json.Marshal(data.Report.Chart)
		if err != nil {
			return "", err
		}
		data.ChartJSON = template.JS(chart)
	}

	var b strings.Builder
	if err := pageTpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>WeatherCheck — Simple City Weather</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; padding: 2rem; background-color: {{.BgColor}}; }
  .card { max-width: 720px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 1.5rem 2rem; box-shadow: 0 1px 4px rgba(0,0,0,.12); }
  form { display: flex; gap: .5rem; margin-bottom: 1rem; }
  input[type=text] { flex: 1; padding: .5rem; font-size: 1rem; }
  button { padding: .5rem 1rem; font-size: 1rem; cursor: pointer; }
  .warn { background: #fef9c3; padding: .75rem 1rem; border-radius: 6px; }
  .error { background: #fee2e2; padding: .75rem 1rem; border-radius: 6px; }
  .metrics { display: flex; gap: 2rem; margin: 1rem 0; }
  .metric .label { font-size: .8rem; color: #555; }
  .metric .value { font-size: 1.6rem; font-weight: 600; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  th, td { text-align: left; padding: .35rem .5rem; border-bottom: 1px solid #eee; font-size: .9rem; }
</style>
</head>
<body>
<div class="card">
  <h1>&#9925; WeatherCheck</h1>
  <p>Type a city name and get current weather plus the next 24 hours.</p>
  <form method="get" action="/weather">
    <input type="text" name="city" value="{{.City}}" placeholder="Try: Melbourne, New York, Tokyo…">
    <button type="submit">Get weather</button>
  </form>

  {{if .Message}}<p class="{{.MessageKind}}">{{.Message}}</p>{{end}}

  {{with .Report}}
  <p>Found: <strong>{{.PlaceLine}}</strong></p>

  <h2>Current weather</h2>
  <div class="metrics">
    <div class="metric"><div class="label">Temperature (°C)</div><div class="value">{{.Current.Temperature}}</div></div>
    <div class="metric"><div class="label">Wind (km/h)</div><div class="value">{{.Current.WindSpeed}}</div></div>
    <div class="metric"><div class="label">Wind dir</div><div class="value">{{.Current.WindDirection}}</div></div>
    <div class="metric"><div class="label">Conditions</div><div class="value">{{.Current.Description}}</div></div>
  </div>

  <h2>Next 24 hours</h2>
  <canvas id="chart" height="120"></canvas>
  <table>
    <tr><th>Time</th><th>Temp (°C)</th><th>Rain chance</th></tr>
    {{range .Hours}}<tr><td>{{.Time}}</td><td>{{.Temperature}}</td><td>{{.RainChance}}</td></tr>
    {{end}}
  </table>
  {{end}}
</div>

{{if .Report}}
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<script>
  const series = {{.ChartJSON}};
  new Chart(document.getElementById("chart"), {
    type: "line",
    data: {
      labels: series.labels,
      datasets: [{ label: "Temperature (°C)", data: series.temps, borderColor: "#3b82f6", tension: 0.3 }]
    },
    options: { scales: { x: { ticks: { maxTicksLimit: 8 } } } }
  });
</script>
{{end}}
</body>
</html>
`
