// Package estimate computes the climate profile and cost breakdown of a
// polyhouse configuration. Every figure is a table lookup plus linear
// arithmetic over the footprint, so Calculate is deterministic.
package estimate

import (
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
)

// Unit costs in INR.
const (
	SideVentCostPerM     = 800.0  // per metre of perimeter
	TopVentCostPerM      = 1200.0 // per metre of length
	InsectNetCostPerM2   = 35.0   // per m² of cladding
	FoggerCostPerM2      = 150.0  // per m² of floor
	FanCostEach          = 8000.0
	FanCoverageM2        = 50.0 // floor area served by one fan
	FoundationCostPerM   = 1500.0
	IrrigationCostPerM2  = 120.0
	ElectricalCostPerM2  = 80.0
	FanWiringCost        = 15000.0
	LaborCostPerM2       = 200.0
	MiscRate             = 0.05
	CurvedRoofAreaFactor = 1.2 // gothic and quonset
	RoofAreaFactor       = 1.1
)

const (
	defaultStructureCost = 350.0
	defaultCoverCost     = 80.0
	defaultTypeFactor    = 1.0
)

// Structure cost per m² of floor. gi-steel and bamboo are priced at the
// default rate.
var structureCosts = map[model.StructureMaterial]float64{
	model.GIPipe:    350,
	model.MSPipe:    280,
	model.Aluminium: 550,
}

// Cover cost per m² of cladding.
var coverCosts = map[model.CoverMaterial]float64{
	model.UVPolyfilm:    80,
	model.Polycarbonate: 350,
	model.ShadeNet:       45,
	model.Glass:         800,
}

var typeMultipliers = map[model.PolyhouseType]float64{
	model.NaturallyVentilated: 1.0,
	model.FanAndPad:           1.35,
	model.ClimateControlled:   1.8,
}

// StructureRate returns the structure cost per m² for m.
func StructureRate(m model.StructureMaterial) float64 {
	if v, ok := structureCosts[model.ParseStructureMaterial(string(m))]; ok {
		return v
	}
	return defaultStructureCost
}

// CoverRate returns the cladding cost per m² for c.
func CoverRate(c model.CoverMaterial) float64 {
	if v, ok := coverCosts[model.ParseCoverMaterial(string(c))]; ok {
		return v
	}
	return defaultCoverCost
}

// TypeMultiplier returns the structure cost multiplier for t.
func TypeMultiplier(t model.PolyhouseType) float64 {
	if v, ok := typeMultipliers[model.ParsePolyhouseType(string(t))]; ok {
		return v
	}
	return defaultTypeFactor
}

// CladdingArea returns the wall and roof areas covered by the skin.
func CladdingArea(cfg model.PolyhouseConfig) (wall, roof float64) {
	wall = cfg.Perimeter() * cfg.AverageHeight()
	factor := RoofAreaFactor
	if cfg.RoofType == model.RoofGothic || cfg.RoofType == model.RoofQuonset {
		factor = CurvedRoofAreaFactor
	}
	roof = cfg.Area() * factor
	return wall, roof
}

// FanUnits returns how many exhaust fans are priced for the footprint.
func FanUnits(area float64) int {
	return int(math.Ceil(area / FanCoverageM2))
}

// Calculate returns the climate profile and cost breakdown for cfg. The
// configuration is normalized first, so the area is always positive.
func Calculate(cfg model.PolyhouseConfig) model.CalculationResult {
	cfg = cfg.Normalized()

	area := cfg.Area()
	perimeter := cfg.Perimeter()
	climate := Climate(cfg.State)
	wall, roof := CladdingArea(cfg)

	var c model.CostBreakdown
	c.StructureCost = round(area * StructureRate(cfg.StructureMaterial) * TypeMultiplier(cfg.PolyhouseType))
	c.CoverCost = round((wall + roof) * CoverRate(cfg.CoverMaterial))

	vent := 0.0
	if cfg.SideVentilation.Enabled() {
		vent += perimeter * SideVentCostPerM
	}
	if cfg.TopVentilation.Enabled() {
		vent += cfg.Length * TopVentCostPerM
	}
	if cfg.InsectNet {
		vent += (wall + roof) * InsectNetCostPerM2
	}
	if cfg.Foggers {
		vent += area * FoggerCostPerM2
	}
	if cfg.Fans {
		vent += float64(FanUnits(area)) * FanCostEach
	}
	c.VentilationCost = round(vent)

	c.FoundationCost = round(perimeter * FoundationCostPerM)
	c.IrrigationCost = round(area * IrrigationCostPerM2)
	electrical := area * ElectricalCostPerM2
	if cfg.Fans {
		electrical += FanWiringCost
	}
	c.ElectricalCost = round(electrical)
	c.LaborCost = round(area * LaborCostPerM2)

	subtotal := c.Subtotal()
	c.MiscCost = round(subtotal * MiscRate)
	c.ClimateAdjustment = climate.ClimateFactor - 1
	c.TotalCost = round((subtotal + c.MiscCost) * climate.ClimateFactor)
	c.CostPerSqm = round(c.TotalCost / area)

	return model.CalculationResult{
		Area:    area,
		Volume:  area * cfg.AverageHeight(),
		Climate: climate,
		Cost:    c,
		Crops:   []string{},
	}
}

// round rounds half up to the whole rupee.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}
