package model

import (
	"encoding/json"
	"math"
	"strings"
)

// MinDimension is the smallest length, width or height (in metres) a
// configuration is clamped to.
const MinDimension = 0.5

// MaxSpan and MaxHeight bound the footprint and heights (in metres) a
// configuration is clamped to.
const (
	MaxSpan   = 500.0
	MaxHeight = 20.0
)

// PolyhouseType selects the climate-control strategy of the structure.
type PolyhouseType string

const (
	NaturallyVentilated PolyhouseType = "naturally-ventilated"
	FanAndPad           PolyhouseType = "fan-and-pad"
	ClimateControlled   PolyhouseType = "climate-controlled"
	ShadeNetHouse       PolyhouseType = "shade-net"
)

// PolyhouseTypes lists the known polyhouse types in display order.
var PolyhouseTypes = []PolyhouseType{NaturallyVentilated, FanAndPad, ClimateControlled, ShadeNetHouse}

// ParsePolyhouseType returns the matching type, or NaturallyVentilated for
// anything unrecognised.
func ParsePolyhouseType(s string) PolyhouseType {
	t := PolyhouseType(normalizeToken(s))
	for _, known := range PolyhouseTypes {
		if t == known {
			return t
		}
	}
	return NaturallyVentilated
}

func (t PolyhouseType) Label() string {
	switch t {
	case FanAndPad:
		return "Fan & Pad"
	case ClimateControlled:
		return "Climate Controlled"
	case ShadeNetHouse:
		return "Shade Net House"
	default:
		return "Naturally Ventilated"
	}
}

// RoofType selects the cross-section of the roof.
type RoofType string

const (
	RoofFlat    RoofType = "flat"
	RoofGable   RoofType = "gable"
	RoofGothic  RoofType = "gothic"
	RoofQuonset RoofType = "quonset"
	RoofVenlo   RoofType = "venlo"
)

var RoofTypes = []RoofType{RoofFlat, RoofGable, RoofGothic, RoofQuonset, RoofVenlo}

// ParseRoofType returns the matching roof type, or RoofGable for anything
// unrecognised.
func ParseRoofType(s string) RoofType {
	t := RoofType(normalizeToken(s))
	for _, known := range RoofTypes {
		if t == known {
			return t
		}
	}
	return RoofGable
}

// HasRidge reports whether the roof has a single distinct ridge line.
func (r RoofType) HasRidge() bool {
	return r == RoofGable || r == RoofGothic
}

// SupportsTopVent reports whether a ridge-mounted vent flap can be fitted.
// Venlo roofs vent along each peak.
func (r RoofType) SupportsTopVent() bool {
	return r.HasRidge() || r == RoofVenlo
}

func (r RoofType) Label() string {
	switch r {
	case RoofFlat:
		return "Flat"
	case RoofGothic:
		return "Gothic Arch"
	case RoofQuonset:
		return "Quonset"
	case RoofVenlo:
		return "Venlo"
	default:
		return "Gable"
	}
}

// StructureMaterial is the frame material.
type StructureMaterial string

const (
	GISteel   StructureMaterial = "gi-steel"
	GIPipe    StructureMaterial = "gi-pipe"
	MSPipe    StructureMaterial = "ms-pipe"
	Aluminium StructureMaterial = "aluminium"
	Bamboo    StructureMaterial = "bamboo"
)

var StructureMaterials = []StructureMaterial{GISteel, GIPipe, MSPipe, Aluminium, Bamboo}

// ParseStructureMaterial returns the matching material, or GISteel for
// anything unrecognised. "aluminum" is accepted as an alias.
func ParseStructureMaterial(s string) StructureMaterial {
	t := StructureMaterial(normalizeToken(s))
	if t == "aluminum" {
		return Aluminium
	}
	for _, known := range StructureMaterials {
		if t == known {
			return t
		}
	}
	return GISteel
}

func (m StructureMaterial) Label() string {
	switch m {
	case GIPipe:
		return "GI Pipe"
	case MSPipe:
		return "MS Pipe"
	case Aluminium:
		return "Aluminium"
	case Bamboo:
		return "Bamboo"
	default:
		return "GI Steel"
	}
}

// CoverMaterial is the cladding on walls and roof.
type CoverMaterial string

const (
	UVPolyfilm    CoverMaterial = "uv-polyfilm"
	Polycarbonate CoverMaterial = "polycarbonate"
	ShadeNet      CoverMaterial = "shade-net"
	InsectNetting CoverMaterial = "insect-net"
	Glass         CoverMaterial = "glass"
)

var CoverMaterials = []CoverMaterial{UVPolyfilm, Polycarbonate, ShadeNet, InsectNetting, Glass}

// ParseCoverMaterial returns the matching cover, or UVPolyfilm for anything
// unrecognised. "polyethylene" is accepted as an alias.
func ParseCoverMaterial(s string) CoverMaterial {
	t := CoverMaterial(normalizeToken(s))
	if t == "polyethylene" {
		return UVPolyfilm
	}
	for _, known := range CoverMaterials {
		if t == known {
			return t
		}
	}
	return UVPolyfilm
}

func (c CoverMaterial) Label() string {
	switch c {
	case Polycarbonate:
		return "Polycarbonate"
	case ShadeNet:
		return "Shade Net"
	case InsectNetting:
		return "Insect Net"
	case Glass:
		return "Glass"
	default:
		return "UV Polyfilm"
	}
}

// Ventilation is the kind of opening fitted to the side walls or the ridge.
type Ventilation string

const (
	VentNone            Ventilation = "none"
	VentManualRollup    Ventilation = "manual-rollup"
	VentMotorizedRollup Ventilation = "motorized-rollup"
	VentLouver          Ventilation = "louver"
)

var Ventilations = []Ventilation{VentNone, VentManualRollup, VentMotorizedRollup, VentLouver}

// ParseVentilation maps s to a ventilation kind. Empty, "none" and "false"
// disable ventilation, "true" maps to a manual roll-up and any other
// unrecognised value yields fallback.
func ParseVentilation(s string, fallback Ventilation) Ventilation {
	t := normalizeToken(s)
	switch t {
	case "", "none", "false", "no", "0":
		return VentNone
	case "true", "yes", "1":
		return VentManualRollup
	}
	for _, known := range Ventilations {
		if Ventilation(t) == known {
			return known
		}
	}
	return fallback
}

// Enabled reports whether any opening is fitted.
func (v Ventilation) Enabled() bool {
	return v != "" && v != VentNone
}

// IsRollup reports whether the opening is covered by a roll-up curtain.
func (v Ventilation) IsRollup() bool {
	return v == VentManualRollup || v == VentMotorizedRollup
}

func (v Ventilation) Label() string {
	switch v {
	case VentManualRollup:
		return "Manual Roll-up"
	case VentMotorizedRollup:
		return "Motorized Roll-up"
	case VentLouver:
		return "Louver"
	default:
		return "None"
	}
}

// DoorEntry selects the door fitted to the front end wall.
type DoorEntry string

const (
	DoorSingleSliding DoorEntry = "single-sliding"
	DoorDoubleSliding DoorEntry = "double-sliding"
	DoorRollUp        DoorEntry = "roll-up"
	DoorCurtain       DoorEntry = "curtain"
)

var DoorEntries = []DoorEntry{DoorSingleSliding, DoorDoubleSliding, DoorRollUp, DoorCurtain}

// ParseDoorEntry returns the matching door, or DoorSingleSliding for anything
// unrecognised.
func ParseDoorEntry(s string) DoorEntry {
	t := DoorEntry(normalizeToken(s))
	for _, known := range DoorEntries {
		if t == known {
			return t
		}
	}
	return DoorSingleSliding
}

func (d DoorEntry) Label() string {
	switch d {
	case DoorDoubleSliding:
		return "Double Sliding"
	case DoorRollUp:
		return "Roll-up Shutter"
	case DoorCurtain:
		return "Curtain"
	default:
		return "Single Sliding"
	}
}

// PolyhouseConfig is the complete description of a polyhouse design. All
// dimensions are in metres.
type PolyhouseConfig struct {
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	EaveHeight  float64 `json:"eaveHeight"`
	RidgeHeight float64 `json:"ridgeHeight"`

	PolyhouseType     PolyhouseType     `json:"polyhouseType"`
	RoofType          RoofType          `json:"roofType"`
	StructureMaterial StructureMaterial `json:"structureMaterial"`
	CoverMaterial     CoverMaterial     `json:"coverMaterial"`

	SideVentilation Ventilation `json:"sideVentilation"`
	TopVentilation  Ventilation `json:"topVentilation"`
	DoorEntry       DoorEntry   `json:"doorEntry"`

	InsectNet bool `json:"insectNet"`
	Foggers   bool `json:"foggers"`
	Fans      bool `json:"fans"`

	State    string `json:"state"`
	District string `json:"district"`
}

// DefaultConfig returns the configuration a new design starts from.
func DefaultConfig() PolyhouseConfig {
	return PolyhouseConfig{
		Length:            30,
		Width:             10,
		EaveHeight:        4,
		RidgeHeight:       6,
		PolyhouseType:     NaturallyVentilated,
		RoofType:          RoofGable,
		StructureMaterial: GISteel,
		CoverMaterial:     UVPolyfilm,
		SideVentilation:   VentManualRollup,
		TopVentilation:    VentNone,
		DoorEntry:         DoorSingleSliding,
		State:             "Karnataka",
		District:          "Bangalore Urban",
	}
}

// UnmarshalJSON decodes a configuration, accepting the older schemas as well:
// "gutterHeight" in place of "eaveHeight" and boolean ventilation flags.
// Fields absent from data keep their current value, so decoding into
// DefaultConfig() fills the gaps with defaults.
func (c *PolyhouseConfig) UnmarshalJSON(data []byte) error {
	type plain PolyhouseConfig
	aux := struct {
		*plain
		EaveHeight      *float64        `json:"eaveHeight"`
		GutterHeight    *float64        `json:"gutterHeight"`
		SideVentilation json.RawMessage `json:"sideVentilation"`
		TopVentilation  json.RawMessage `json:"topVentilation"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch {
	case aux.EaveHeight != nil:
		c.EaveHeight = *aux.EaveHeight
	case aux.GutterHeight != nil:
		c.EaveHeight = *aux.GutterHeight
	}

	var err error
	if c.SideVentilation, err = decodeVentilation(aux.SideVentilation, c.SideVentilation); err != nil {
		return err
	}
	if c.TopVentilation, err = decodeVentilation(aux.TopVentilation, c.TopVentilation); err != nil {
		return err
	}
	return nil
}

func decodeVentilation(raw json.RawMessage, current Ventilation) (Ventilation, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return current, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return VentManualRollup, nil
		}
		return VentNone, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return current, err
	}
	return Ventilation(s), nil
}

// Normalized returns a copy with every numeric field finite and positive and
// every enum mapped onto a known value. Non-finite numbers take the default
// value; the rest are clamped to [MinDimension, MaxSpan] for length and width
// and [MinDimension, MaxHeight] for heights. A ridge height at or below the
// eave height is left as given.
func (c PolyhouseConfig) Normalized() PolyhouseConfig {
	d := DefaultConfig()
	c.Length = clampDimension(c.Length, d.Length, MaxSpan)
	c.Width = clampDimension(c.Width, d.Width, MaxSpan)
	c.EaveHeight = clampDimension(c.EaveHeight, d.EaveHeight, MaxHeight)
	c.RidgeHeight = clampDimension(c.RidgeHeight, d.RidgeHeight, MaxHeight)

	c.PolyhouseType = ParsePolyhouseType(string(c.PolyhouseType))
	c.RoofType = ParseRoofType(string(c.RoofType))
	c.StructureMaterial = ParseStructureMaterial(string(c.StructureMaterial))
	c.CoverMaterial = ParseCoverMaterial(string(c.CoverMaterial))
	c.SideVentilation = ParseVentilation(string(c.SideVentilation), d.SideVentilation)
	c.TopVentilation = ParseVentilation(string(c.TopVentilation), d.TopVentilation)
	c.DoorEntry = ParseDoorEntry(string(c.DoorEntry))
	c.State = strings.TrimSpace(c.State)
	c.District = strings.TrimSpace(c.District)
	return c
}

// RoofHeight is the rise from eave to ridge, never negative.
func (c PolyhouseConfig) RoofHeight() float64 {
	return math.Max(0, c.RidgeHeight-c.EaveHeight)
}

// Area is the footprint in square metres.
func (c PolyhouseConfig) Area() float64 {
	return c.Length * c.Width
}

// Perimeter is the footprint perimeter in metres.
func (c PolyhouseConfig) Perimeter() float64 {
	return 2 * (c.Length + c.Width)
}

// AverageHeight is the mean of eave and ridge height.
func (c PolyhouseConfig) AverageHeight() float64 {
	return (c.EaveHeight + c.RidgeHeight) / 2
}

func clampDimension(v, fallback, max float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return math.Min(math.Max(v, MinDimension), max)
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}
