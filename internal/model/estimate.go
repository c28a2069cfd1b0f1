package model

// ClimateInfo is the climate profile of the selected state.
type ClimateInfo struct {
	ClimateZone    string   `json:"climateZone"`
	AvgTemperature float64  `json:"avgTemperature"` // °C
	Humidity       float64  `json:"humidity"`       // %
	Rainfall       float64  `json:"rainfall"`       // mm per year
	ClimateFactor  float64  `json:"climateFactor"`
	Advisories     []string `json:"advisories"`
}

// CostBreakdown lists the estimated costs in INR, each rounded to the rupee.
type CostBreakdown struct {
	StructureCost     float64 `json:"structureCost"`
	CoverCost         float64 `json:"coverCost"`
	VentilationCost   float64 `json:"ventilationCost"`
	FoundationCost    float64 `json:"foundationCost"`
	IrrigationCost    float64 `json:"irrigationCost"`
	ElectricalCost    float64 `json:"electricalCost"`
	LaborCost         float64 `json:"laborCost"`
	MiscCost          float64 `json:"miscCost"`
	TotalCost         float64 `json:"totalCost"`
	CostPerSqm        float64 `json:"costPerSqm"`
	ClimateAdjustment float64 `json:"climateAdjustment"` // climate factor minus one
}

// Subtotal is the sum of the line items before the miscellaneous allowance.
func (c CostBreakdown) Subtotal() float64 {
	return c.StructureCost + c.CoverCost + c.VentilationCost + c.FoundationCost +
		c.IrrigationCost + c.ElectricalCost + c.LaborCost
}

// LineItem is a labelled cost used by reports.
type LineItem struct {
	Label  string
	Amount float64
}

// LineItems returns the cost lines in report order, excluding the total.
func (c CostBreakdown) LineItems() []LineItem {
	return []LineItem{
		{"Structure", c.StructureCost},
		{"Cover", c.CoverCost},
		{"Ventilation", c.VentilationCost},
		{"Foundation", c.FoundationCost},
		{"Irrigation", c.IrrigationCost},
		{"Electrical", c.ElectricalCost},
		{"Labour", c.LaborCost},
		{"Miscellaneous", c.MiscCost},
	}
}

// CalculationResult is the output of a cost and climate estimate.
type CalculationResult struct {
	Area    float64       `json:"area"`   // m²
	Volume  float64       `json:"volume"` // m³
	Climate ClimateInfo   `json:"climate"`
	Cost    CostBreakdown `json:"cost"`
	Crops   []string      `json:"crops"`
}
