package weather

// codeDescriptions maps Open-Meteo weather codes to short human-readable text.
var codeDescriptions = map[int]string{
	0:  "Clear",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Freezing drizzle (light)",
	57: "Freezing drizzle (dense)",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Freezing rain (light)",
	67: "Freezing rain (heavy)",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Rain showers (slight)",
	81: "Rain showers (moderate)",
	82: "Rain showers (violent)",
	85: "Snow showers (slight)",
	86: "Snow showers (heavy)",
	95: "Thunderstorm (slight/moderate)",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// CodeUnknown is rendered for weather codes outside the fixed table.
const CodeUnknown = "N/A"

// DescribeCode translates a weather code into its description, or CodeUnknown
// for codes not in the table.
func DescribeCode(code int) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return CodeUnknown
}
