package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/polyhouse/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	contentWidth = pageWidth - marginLeft - marginRight
	reportQRSize = 32.0
)

// sectionColor is the fill used behind section headings.
var sectionColor = struct{ R, G, B int }{R: 232, G: 245, B: 233}

// ExportPDF writes the design report for r to path.
func ExportPDF(path string, r Report) error {
	pdf, err := buildReport(r)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the design report for r to w.
func WritePDF(w io.Writer, r Report) error {
	pdf, err := buildReport(r)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// RenderPDF returns the design report as bytes.
func RenderPDF(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildReport(r Report) (*fpdf.Fpdf, error) {
	if len(r.Model.Parts) == 0 {
		return nil, ErrEmptyModel
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom+5)
	pdf.SetTitle("Polyhouse Design Report", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := r.generatedAt().Format("02 Jan 2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-marginBottom)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		text := fmt.Sprintf("Generated %s - Polyhouse Configurator - page %d", generated, pdf.PageNo())
		pdf.CellFormat(contentWidth, 4, text, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	renderTitle(pdf, r.Model.Config)
	if err := renderConfigQR(pdf, pageWidth-marginRight-reportQRSize, marginTop, reportQRSize, r.Model.Config); err != nil {
		return nil, err
	}

	y := marginTop + headerHeight + 26
	y = renderConfiguration(pdf, tr, r.Model.Config, r.Result, y)
	y = renderClimate(pdf, tr, r.Result.Climate, y+4)
	renderCost(pdf, tr, r.Result, y+4)

	pdf.AddPage()
	y = sectionHeading(pdf, "End Wall Elevation", marginTop)
	y = drawEndWall(pdf, tr, r.Model, y+2, 95)
	y = renderBOM(pdf, tr, Summarize(r.Model), y+6)

	if crops := strings.TrimSpace(r.Crops); crops != "" {
		y = sectionHeading(pdf, "AI Crop Suggestions", y+4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(marginLeft, y+1)
		pdf.MultiCell(contentWidth, 4.5, tr(crops), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return pdf, nil
}

func renderTitle(pdf *fpdf.Fpdf, cfg model.PolyhouseConfig) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-reportQRSize, headerHeight, "Polyhouse Design Report", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	sub := fmt.Sprintf("%s, %s roof - %s", cfg.PolyhouseType.Label(), cfg.RoofType.Label(), location(cfg))
	pdf.CellFormat(contentWidth-reportQRSize, 5, sub, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+22, pageWidth-marginRight-reportQRSize-3, marginTop+headerHeight+22)
}

// sectionHeading draws a shaded heading bar and returns the y below it.
func sectionHeading(pdf *fpdf.Fpdf, title string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(sectionColor.R, sectionColor.G, sectionColor.B)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, title, "", 0, "L", true, 0, "")
	return y + 8
}

type keyValue struct {
	label string
	value string
}

// keyValueRows renders label/value pairs in two columns and returns the y
// below the last row.
func keyValueRows(pdf *fpdf.Fpdf, tr func(string) string, items []keyValue, y float64) float64 {
	colW := contentWidth / 2
	for i, item := range items {
		x := marginLeft + float64(i%2)*colW
		if i%2 == 0 && i > 0 {
			y += 6
		}
		pdf.SetXY(x+2, y)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(38, 6, tr(item.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colW-40, 6, tr(item.value), "", 0, "L", false, 0, "")
	}
	return y + 7
}

func renderConfiguration(pdf *fpdf.Fpdf, tr func(string) string, cfg model.PolyhouseConfig, res model.CalculationResult, y float64) float64 {
	y = sectionHeading(pdf, "Configuration", y)
	items := []keyValue{
		{"Dimensions", fmt.Sprintf("%.1f x %.1f m", cfg.Length, cfg.Width)},
		{"Heights", fmt.Sprintf("eave %.1f m, ridge %.1f m", cfg.EaveHeight, cfg.RidgeHeight)},
		{"Floor area", fmt.Sprintf("%.0f m²", res.Area)},
		{"Volume", fmt.Sprintf("%.0f m³", res.Volume)},
		{"Polyhouse type", cfg.PolyhouseType.Label()},
		{"Roof", cfg.RoofType.Label()},
		{"Structure", cfg.StructureMaterial.Label()},
		{"Cover", cfg.CoverMaterial.Label()},
		{"Side ventilation", cfg.SideVentilation.Label()},
		{"Top ventilation", cfg.TopVentilation.Label()},
		{"Door", cfg.DoorEntry.Label()},
		{"Extras", extras(cfg)},
	}
	return keyValueRows(pdf, tr, items, y)
}

func renderClimate(pdf *fpdf.Fpdf, tr func(string) string, cl model.ClimateInfo, y float64) float64 {
	y = sectionHeading(pdf, "Climate Intelligence", y)
	items := []keyValue{
		{"Climate zone", cl.ClimateZone},
		{"Avg temperature", fmt.Sprintf("%.0f °C", cl.AvgTemperature)},
		{"Humidity", fmt.Sprintf("%.0f %%", cl.Humidity)},
		{"Rainfall", fmt.Sprintf("%.0f mm/yr", cl.Rainfall)},
	}
	y = keyValueRows(pdf, tr, items, y)

	if len(cl.Advisories) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(180, 90, 0)
		for _, a := range cl.Advisories {
			pdf.SetXY(marginLeft+2, y)
			pdf.CellFormat(contentWidth-4, 5, tr("! "+a), "", 0, "L", false, 0, "")
			y += 5
		}
		pdf.SetTextColor(0, 0, 0)
	}
	return y
}

func renderCost(pdf *fpdf.Fpdf, tr func(string) string, res model.CalculationResult, y float64) float64 {
	y = sectionHeading(pdf, "Cost Analysis", y)

	colWidths := []float64{110, 70}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0], 6, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 6, "Amount (INR)", "1", 0, "R", true, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, item := range res.Cost.LineItems() {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(colWidths[0], 6, item.Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(colWidths[1], 6, FormatINR(item.Amount), "1", 0, "R", true, 0, "")
		y += 6
	}

	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0], 6, "Climate adjustment", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[1], 6, fmt.Sprintf("%+.0f%%", res.Cost.ClimateAdjustment*100), "1", 0, "R", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(sectionColor.R, sectionColor.G, sectionColor.B)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0], 7, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 7, FormatINR(res.Cost.TotalCost), "1", 0, "R", true, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0], 6, tr("Cost per m²"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[1], 6, FormatINR(res.Cost.CostPerSqm), "1", 0, "R", false, 0, "")
	return y + 6
}

// drawEndWall draws the end-wall elevation scaled into a box of the given
// height, with the door outline and dimension labels.
func drawEndWall(pdf *fpdf.Fpdf, tr func(string) string, m model.Model, top, boxH float64) float64 {
	profile := m.EndWallProfile
	if len(profile) < 3 {
		return top
	}
	min, max := profile.BoundingBox()
	w, h := max.X-min.X, max.Y-min.Y
	if w <= 0 || h <= 0 {
		return top
	}

	drawW := contentWidth - 30
	scale := math.Min(drawW/w, (boxH-15)/h)
	offsetX := marginLeft + 15 + (drawW-w*scale)/2
	baseY := top + 5 + h*scale

	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-min.X)*scale, baseY - (p.Y-min.Y)*scale
	}

	pts := make([]fpdf.PointType, len(profile))
	for i, p := range profile {
		x, y := toPage(p)
		pts[i] = fpdf.PointType{X: x, Y: y}
	}
	cover := m.Materials.Cover
	r, g, b := hexRGB(cover.Color)
	pdf.SetFillColor(r, g, b)
	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.4)
	pdf.Polygon(pts, "FD")

	for _, d := range m.FeaturesOfKind(model.FeatureDoor) {
		dw, dh := d.Params["width"], d.Params["height"]
		x0, y0 := toPage(model.Point2D{X: d.Position.X - dw/2, Y: dh})
		pdf.SetFillColor(250, 250, 250)
		pdf.Rect(x0, y0, dw*scale, dh*scale, "FD")
	}

	// Ground line
	pdf.SetLineWidth(0.6)
	pdf.Line(offsetX-5, baseY, offsetX+w*scale+5, baseY)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	widthLabel := fmt.Sprintf("%.2f m", w)
	lw := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(w*scale-lw)/2, baseY+1)
	pdf.CellFormat(lw, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f m", h)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-4, baseY-h*scale/2)
	hw := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-4-hw/2, baseY-h*scale/2-2)
	pdf.CellFormat(hw, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	eave := m.Config.EaveHeight
	_, ey := toPage(model.Point2D{X: max.X, Y: eave})
	pdf.SetXY(offsetX+w*scale+2, ey-2)
	pdf.CellFormat(20, 4, tr(fmt.Sprintf("eave %.1f m", eave)), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return baseY + 8
}

func renderBOM(pdf *fpdf.Fpdf, tr func(string) string, bom BOM, y float64) float64 {
	y = sectionHeading(pdf, "Frame Summary", y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(80, 6, "Member", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 6, "Count", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 6, "Total length (m)", "1", 0, "R", true, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range bom.Frame {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(80, 6, partKindLabel(line.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", line.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 6, fmt.Sprintf("%.1f", line.TotalLength), "1", 0, "R", false, 0, "")
		y += 6
	}

	if len(bom.Features) > 0 {
		y += 3
		pdf.SetXY(marginLeft, y)
		var parts []string
		for _, f := range bom.Features {
			parts = append(parts, fmt.Sprintf("%s x%d", f.Kind, f.Count))
		}
		pdf.MultiCell(contentWidth, 5, tr("Features: "+strings.Join(parts, ", ")), "", "L", false)
		y = pdf.GetY()
	}
	return y
}

func partKindLabel(k model.PartKind) string {
	switch k {
	case model.PartPost:
		return "Posts"
	case model.PartBeam:
		return "Beams"
	case model.PartTruss:
		return "Tie beams"
	case model.PartRafter:
		return "Rafters"
	case model.PartGutter:
		return "Gutters"
	case model.PartPipe:
		return "Drip lines"
	}
	return string(k)
}

func location(cfg model.PolyhouseConfig) string {
	if d := strings.TrimSpace(cfg.District); d != "" {
		return d + ", " + cfg.State
	}
	return cfg.State
}

func extras(cfg model.PolyhouseConfig) string {
	var out []string
	if cfg.InsectNet {
		out = append(out, "insect net")
	}
	if cfg.Foggers {
		out = append(out, "foggers")
	}
	if cfg.Fans {
		out = append(out, "exhaust fans")
	}
	if len(out) == 0 {
		return "none"
	}
	return strings.Join(out, ", ")
}

// FormatINR formats an amount with Indian digit grouping, e.g. 12,34,567.
func FormatINR(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		s = "-" + s
	}
	return "INR " + s
}

// hexRGB parses "#rrggbb", returning mid grey for anything else.
func hexRGB(s string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 200, 200, 200
	}
	return r, g, b
}
