package estimate

import (
	"math"
	"testing"

	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_DefaultConfig(t *testing.T) {
	res := Calculate(model.DefaultConfig())

	assert.Equal(t, 300.0, res.Area)
	assert.Equal(t, 1500.0, res.Volume)
	assert.Equal(t, "Tropical Wet-Dry", res.Climate.ClimateZone)
	assert.Empty(t, res.Climate.Advisories)
	assert.NotNil(t, res.Crops)

	c := res.Cost
	assert.Equal(t, 105000.0, c.StructureCost)
	assert.Equal(t, 58400.0, c.CoverCost)
	assert.Equal(t, 64000.0, c.VentilationCost)
	assert.Equal(t, 120000.0, c.FoundationCost)
	assert.Equal(t, 36000.0, c.IrrigationCost)
	assert.Equal(t, 24000.0, c.ElectricalCost)
	assert.Equal(t, 60000.0, c.LaborCost)
	assert.Equal(t, 23370.0, c.MiscCost)
	assert.Equal(t, 490770.0, c.TotalCost)
	assert.Equal(t, 1636.0, c.CostPerSqm)
	assert.Equal(t, 0.0, c.ClimateAdjustment)
}

func TestCalculate_FullyEquipped(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Length = 20
	cfg.PolyhouseType = model.ClimateControlled
	cfg.RoofType = model.RoofQuonset
	cfg.StructureMaterial = model.Aluminium
	cfg.CoverMaterial = model.Glass
	cfg.TopVentilation = model.VentMotorizedRollup
	cfg.InsectNet = true
	cfg.Foggers = true
	cfg.Fans = true
	cfg.State = "Rajasthan"

	res := Calculate(cfg)
	c := res.Cost
	assert.Equal(t, 198000.0, c.StructureCost)
	assert.Equal(t, 432000.0, c.CoverCost)
	assert.Equal(t, 152900.0, c.VentilationCost)
	assert.Equal(t, 31000.0, c.ElectricalCost)
	assert.Equal(t, 48395.0, c.MiscCost)
	assert.Equal(t, 1219554.0, c.TotalCost)
	assert.Equal(t, 6098.0, c.CostPerSqm)
	assert.InDelta(t, 0.2, c.ClimateAdjustment, 1e-9)

	assert.Equal(t, []string{
		"High temperature zone - consider enhanced cooling systems",
		"Arid climate - fogging systems highly recommended",
	}, res.Climate.Advisories)
}

func TestCalculate_TotalIdentity(t *testing.T) {
	for _, state := range append(States(), "Atlantis") {
		for _, pt := range model.PolyhouseTypes {
			cfg := model.DefaultConfig()
			cfg.Length, cfg.Width = 17.3, 9.7
			cfg.PolyhouseType = pt
			cfg.State = state
			cfg.Fans = true
			cfg.InsectNet = true

			res := Calculate(cfg)
			c := res.Cost
			sub := c.Subtotal()
			require.Equal(t, math.Floor(sub*0.05+0.5), c.MiscCost, state)
			require.Equal(t, math.Floor((sub+c.MiscCost)*res.Climate.ClimateFactor+0.5), c.TotalCost, state)
			require.Equal(t, c.TotalCost, math.Round(c.TotalCost))
		}
	}
}

func TestCalculate_UnknownStateFallsBack(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.State = "Atlantis"
	got := Calculate(cfg)

	cfg.State = DefaultState
	want := Calculate(cfg)
	assert.Equal(t, want, got)
	assert.False(t, KnownState("Atlantis"))
	assert.True(t, KnownState(" kerala "))
}

func TestCalculate_VentilationNoneIsFree(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.SideVentilation = model.VentNone
	cfg.TopVentilation = model.VentNone
	assert.Equal(t, 0.0, Calculate(cfg).Cost.VentilationCost)

	cfg.TopVentilation = model.VentLouver
	assert.Equal(t, 30*TopVentCostPerM, Calculate(cfg).Cost.VentilationCost)
}

func TestCalculate_DegenerateInputStaysFinite(t *testing.T) {
	cfg := model.PolyhouseConfig{Length: 0, Width: -3, EaveHeight: math.NaN(), RidgeHeight: math.Inf(1)}
	res := Calculate(cfg)
	assert.Greater(t, res.Area, 0.0)
	assert.False(t, math.IsNaN(res.Cost.CostPerSqm))
	assert.False(t, math.IsInf(res.Cost.TotalCost, 0))
}

func TestRates(t *testing.T) {
	assert.Equal(t, 550.0, StructureRate("aluminum"))
	assert.Equal(t, 350.0, StructureRate(model.GISteel))
	assert.Equal(t, 280.0, StructureRate(model.MSPipe))
	assert.Equal(t, 80.0, CoverRate("polyethylene"))
	assert.Equal(t, 45.0, CoverRate(model.ShadeNet))
	assert.Equal(t, 80.0, CoverRate(model.InsectNetting))
	assert.Equal(t, 1.35, TypeMultiplier(model.FanAndPad))
	assert.Equal(t, 1.0, TypeMultiplier(model.ShadeNetHouse))
	assert.Equal(t, 1.0, TypeMultiplier("hydroponic-tower"))
}

func TestFanUnits(t *testing.T) {
	assert.Equal(t, 1, FanUnits(1))
	assert.Equal(t, 1, FanUnits(50))
	assert.Equal(t, 2, FanUnits(50.5))
	assert.Equal(t, 6, FanUnits(300))
}

func TestClimateAdvisories(t *testing.T) {
	kerala := Climate("Kerala")
	assert.Equal(t, []string{
		"High humidity - ensure adequate ventilation to prevent fungal diseases",
		"Heavy rainfall region - reinforce roof structure and drainage",
	}, kerala.Advisories)

	tn := Climate("Tamil Nadu")
	assert.Empty(t, tn.Advisories, "30°C is not above the threshold")

	gujarat := Climate("Gujarat")
	assert.Equal(t, []string{"Arid climate - fogging systems highly recommended"}, gujarat.Advisories)
}

func TestStates(t *testing.T) {
	s := States()
	assert.Len(t, s, 20)
	assert.Equal(t, "Andhra Pradesh", s[0])
	assert.Contains(t, s, DefaultState)
}
