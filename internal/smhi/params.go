// ABOUTME: SMHI metobs parameter and period code tables.
// ABOUTME: Parameter codes drive upstream URLs and the unit/label used in output.

package smhi

// Parameter codes from the SMHI metobs API. The code is part of the
// upstream URL path.
const (
	ParamAirTemp       = "1"  // air temperature, hourly
	ParamAvgTemp       = "2"  // air temperature, daily mean
	ParamDailyPrecip   = "5"  // precipitation, daily
	ParamHourlyPrecip  = "7"  // precipitation, hourly
	ParamSnowDepth     = "8"  // snow depth, daily
	ParamPrecip15Min   = "14" // precipitation, 15-minute
	ParamMinTemp       = "19" // air temperature, daily minimum
	ParamMaxTemp       = "20" // air temperature, daily maximum
	ParamMonthlyTemp   = "22" // air temperature, monthly mean
	ParamMonthlyPrecip = "23" // precipitation, monthly
)

// Period selectors for observation data. Archive periods are only
// available as CSV downloads; the latest periods are served as JSON.
const (
	PeriodLatestHour       = "latest-hour"
	PeriodLatestDay        = "latest-day"
	PeriodLatestMonths     = "latest-months"
	PeriodCorrectedArchive = "corrected-archive"
)

// parameterNames maps parameter codes to human-readable labels.
var parameterNames = map[string]string{
	ParamAirTemp:       "Temperature",
	ParamAvgTemp:       "Daily mean temperature",
	ParamDailyPrecip:   "Daily precipitation",
	ParamHourlyPrecip:  "Hourly precipitation",
	ParamSnowDepth:     "Snow depth",
	ParamPrecip15Min:   "15-minute precipitation",
	ParamMinTemp:       "Daily minimum temperature",
	ParamMaxTemp:       "Daily maximum temperature",
	ParamMonthlyTemp:   "Monthly mean temperature",
	ParamMonthlyPrecip: "Monthly precipitation",
}

// parameterUnits maps parameter codes to display units.
var parameterUnits = map[string]string{
	ParamAirTemp:       "°C",
	ParamAvgTemp:       "°C",
	ParamMinTemp:       "°C",
	ParamMaxTemp:       "°C",
	ParamMonthlyTemp:   "°C",
	ParamDailyPrecip:   "mm",
	ParamHourlyPrecip:  "mm",
	ParamPrecip15Min:   "mm",
	ParamMonthlyPrecip: "mm",
	ParamSnowDepth:     "m",
}

// ParameterName returns the display label for a parameter code, or a
// generic fallback for unknown codes.
func ParameterName(code string) string {
	if name, ok := parameterNames[code]; ok {
		return name
	}
	return "Parameter " + code
}

// ParameterUnit returns the display unit for a parameter code, or an
// empty string for unknown codes.
func ParameterUnit(code string) string {
	return parameterUnits[code]
}
