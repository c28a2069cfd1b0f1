package estimate

import (
	"sort"
	"strings"

	"github.com/piwi3910/polyhouse/internal/model"
)

// DefaultState is the region used when a state is missing or unknown.
const DefaultState = "Karnataka"

type climateRecord struct {
	zone     string
	temp     float64 // °C
	humidity float64 // %
	rainfall float64 // mm
	factor   float64
}

var climateData = map[string]climateRecord{
	"Karnataka":        {"Tropical Wet-Dry", 27, 65, 1200, 1.0},
	"Maharashtra":      {"Tropical Wet-Dry", 28, 60, 1100, 1.05},
	"Tamil Nadu":       {"Tropical", 30, 70, 950, 1.1},
	"Kerala":           {"Tropical Wet", 28, 80, 3000, 1.15},
	"Gujarat":          {"Semi-Arid", 29, 55, 600, 1.1},
	"Rajasthan":        {"Arid", 32, 40, 400, 1.2},
	"Punjab":           {"Semi-Arid", 25, 55, 650, 1.0},
	"Haryana":          {"Semi-Arid", 26, 50, 550, 1.05},
	"Uttar Pradesh":    {"Subtropical", 26, 60, 1000, 1.0},
	"Madhya Pradesh":   {"Subtropical", 27, 55, 1100, 1.0},
	"West Bengal":      {"Tropical Wet", 27, 75, 1800, 1.1},
	"Andhra Pradesh":   {"Tropical", 29, 65, 900, 1.05},
	"Telangana":        {"Tropical", 28, 60, 950, 1.05},
	"Bihar":            {"Subtropical", 26, 70, 1200, 1.0},
	"Odisha":           {"Tropical Wet-Dry", 28, 75, 1500, 1.1},
	"Jharkhand":        {"Subtropical", 26, 65, 1300, 1.0},
	"Chhattisgarh":     {"Tropical", 27, 65, 1400, 1.0},
	"Assam":            {"Humid Subtropical", 25, 80, 2500, 1.15},
	"Himachal Pradesh": {"Subtropical Highland", 18, 60, 1500, 1.25},
	"Uttarakhand":      {"Subtropical Highland", 20, 65, 1600, 1.2},
}

// Advisory thresholds.
const (
	hotTemperature = 30.0
	humidHumidity  = 75.0
	heavyRainfall  = 2000.0
)

// States returns the known state names in alphabetical order.
func States() []string {
	names := make([]string, 0, len(climateData))
	for name := range climateData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownState reports whether state has its own climate entry.
func KnownState(state string) bool {
	_, ok := lookup(state)
	return ok
}

func lookup(state string) (climateRecord, bool) {
	if rec, ok := climateData[state]; ok {
		return rec, true
	}
	trimmed := strings.TrimSpace(state)
	for name, rec := range climateData {
		if strings.EqualFold(name, trimmed) {
			return rec, true
		}
	}
	return climateData[DefaultState], false
}

// Climate returns the climate profile for state, falling back to
// DefaultState for unknown names.
func Climate(state string) model.ClimateInfo {
	rec, _ := lookup(state)
	return model.ClimateInfo{
		ClimateZone:    rec.zone,
		AvgTemperature: rec.temp,
		Humidity:       rec.humidity,
		Rainfall:       rec.rainfall,
		ClimateFactor:  rec.factor,
		Advisories:     advisories(rec),
	}
}

func advisories(rec climateRecord) []string {
	out := []string{}
	if rec.temp > hotTemperature {
		out = append(out, "High temperature zone - consider enhanced cooling systems")
	}
	if rec.humidity > humidHumidity {
		out = append(out, "High humidity - ensure adequate ventilation to prevent fungal diseases")
	}
	if rec.rainfall > heavyRainfall {
		out = append(out, "Heavy rainfall region - reinforce roof structure and drainage")
	}
	if strings.Contains(rec.zone, "Arid") {
		out = append(out, "Arid climate - fogging systems highly recommended")
	}
	return out
}
