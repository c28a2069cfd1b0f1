package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseFallbacks(t *testing.T) {
	if ParseRoofType("Gothic") != RoofGothic {
		t.Error("expected case-insensitive roof parse")
	}
	if ParseRoofType("geodesic") != RoofGable {
		t.Error("unknown roof should fall back to gable")
	}
	if ParsePolyhouseType("fan_and_pad") != FanAndPad {
		t.Error("underscores should be accepted")
	}
	if ParsePolyhouseType("aquaponic") != NaturallyVentilated {
		t.Error("unknown type should fall back to naturally-ventilated")
	}
	if ParseStructureMaterial("aluminum") != Aluminium {
		t.Error("aluminum alias not accepted")
	}
	if ParseCoverMaterial("polyethylene") != UVPolyfilm {
		t.Error("polyethylene alias not accepted")
	}
	if ParseDoorEntry("revolving") != DoorSingleSliding {
		t.Error("unknown door should fall back to single-sliding")
	}
}

func TestParseVentilation(t *testing.T) {
	cases := map[string]Ventilation{
		"":                 VentNone,
		"none":             VentNone,
		"false":            VentNone,
		"true":             VentManualRollup,
		"louver":           VentLouver,
		"Motorized Rollup": VentMotorizedRollup,
		"ridge-cap":        VentLouver,
	}
	for in, want := range cases {
		if got := ParseVentilation(in, VentLouver); got != want {
			t.Errorf("ParseVentilation(%q) = %s, want %s", in, got, want)
		}
	}
	if VentNone.Enabled() || Ventilation("").Enabled() {
		t.Error("none should not be enabled")
	}
	if !VentLouver.Enabled() || VentLouver.IsRollup() {
		t.Error("louver should be enabled and not a roll-up")
	}
}

func TestUnmarshalLegacyBooleanVentilation(t *testing.T) {
	cfg := DefaultConfig()
	data := `{"length": 20, "gutterHeight": 3.5, "sideVentilation": false, "topVentilation": true}`
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Length != 20 {
		t.Errorf("expected length 20, got %f", cfg.Length)
	}
	if cfg.Width != 10 {
		t.Errorf("absent width should keep default, got %f", cfg.Width)
	}
	if cfg.EaveHeight != 3.5 {
		t.Errorf("gutterHeight should map to eave height, got %f", cfg.EaveHeight)
	}
	if cfg.SideVentilation != VentNone {
		t.Errorf("false should map to none, got %s", cfg.SideVentilation)
	}
	if cfg.TopVentilation != VentManualRollup {
		t.Errorf("true should map to manual-rollup, got %s", cfg.TopVentilation)
	}
}

func TestUnmarshalEaveHeightWinsOverGutterHeight(t *testing.T) {
	var cfg PolyhouseConfig
	data := `{"eaveHeight": 4.5, "gutterHeight": 3, "sideVentilation": "louver", "roofType": "venlo"}`
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.EaveHeight != 4.5 {
		t.Errorf("expected eave 4.5, got %f", cfg.EaveHeight)
	}
	if cfg.SideVentilation != VentLouver {
		t.Errorf("expected louver, got %s", cfg.SideVentilation)
	}
	if cfg.RoofType != RoofVenlo {
		t.Errorf("expected venlo, got %s", cfg.RoofType)
	}
}

func TestUnmarshalRejectsBadVentilation(t *testing.T) {
	var cfg PolyhouseConfig
	if err := json.Unmarshal([]byte(`{"sideVentilation": 3}`), &cfg); err == nil {
		t.Error("expected error for numeric ventilation")
	}
}

func TestConfigRoundTripUsesCanonicalNames(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["eaveHeight"]; !ok {
		t.Error("expected eaveHeight key")
	}
	if raw["sideVentilation"] != "manual-rollup" {
		t.Errorf("unexpected sideVentilation %v", raw["sideVentilation"])
	}
}

func TestNormalizedClampsNumbers(t *testing.T) {
	cfg := PolyhouseConfig{
		Length:      math.NaN(),
		Width:       -3,
		EaveHeight:  0,
		RidgeHeight: math.Inf(1),
		RoofType:    "dome",
	}
	n := cfg.Normalized()
	if n.Length != 30 {
		t.Errorf("NaN length should take the default, got %f", n.Length)
	}
	if n.Width != MinDimension || n.EaveHeight != MinDimension {
		t.Errorf("non-positive values should clamp to %f, got %f / %f", MinDimension, n.Width, n.EaveHeight)
	}
	if n.RidgeHeight != 6 {
		t.Errorf("Inf ridge should take the default, got %f", n.RidgeHeight)
	}
	if n.RoofType != RoofGable {
		t.Errorf("unknown roof should normalize to gable, got %s", n.RoofType)
	}
}

func TestNormalizedClampsHugeDimensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = 1e18
	cfg.Width = 1e8
	cfg.EaveHeight = 300
	cfg.RidgeHeight = math.MaxFloat64
	n := cfg.Normalized()
	if n.Length != MaxSpan || n.Width != MaxSpan {
		t.Errorf("footprint should clamp to %f, got %f x %f", MaxSpan, n.Length, n.Width)
	}
	if n.EaveHeight != MaxHeight || n.RidgeHeight != MaxHeight {
		t.Errorf("heights should clamp to %f, got %f / %f", MaxHeight, n.EaveHeight, n.RidgeHeight)
	}
}

func TestNormalizedUnknownVentilationTakesFieldDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SideVentilation = "ridge-cap"
	cfg.TopVentilation = "ridge-cap"
	n := cfg.Normalized()
	if n.SideVentilation != VentManualRollup {
		t.Errorf("side vent should fall back to manual-rollup, got %s", n.SideVentilation)
	}
	if n.TopVentilation != VentNone {
		t.Errorf("top vent should fall back to none, got %s", n.TopVentilation)
	}
}

func TestNormalizedKeepsInvertedRidge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RidgeHeight = 3
	n := cfg.Normalized()
	if n.RidgeHeight != 3 {
		t.Errorf("ridge below eave should be kept, got %f", n.RidgeHeight)
	}
	if n.RoofHeight() != 0 {
		t.Errorf("roof height should clamp to zero, got %f", n.RoofHeight())
	}
}

func TestConfigDerivedQuantities(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Area() != 300 {
		t.Errorf("expected area 300, got %f", cfg.Area())
	}
	if cfg.Perimeter() != 80 {
		t.Errorf("expected perimeter 80, got %f", cfg.Perimeter())
	}
	if cfg.AverageHeight() != 5 {
		t.Errorf("expected average height 5, got %f", cfg.AverageHeight())
	}
	if cfg.RoofHeight() != 2 {
		t.Errorf("expected roof height 2, got %f", cfg.RoofHeight())
	}
}
