package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/polyhouse/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// TagInfo holds the data encoded into each frame member's QR tag.
type TagInfo struct {
	Name   string         `json:"name"`
	Kind   model.PartKind `json:"kind"`
	Length float64        `json:"length_m"`
	Radius float64        `json:"radius_m"`
	X      float64        `json:"x_m"`
	Z      float64        `json:"z_m"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportPartTags writes a sheet of QR-coded tags, one per frame member and
// gutter, so parts can be marked before site assembly.
func ExportPartTags(path string, m model.Model) error {
	tags := CollectTags(m)
	if len(tags) == 0 {
		return ErrEmptyModel
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, i, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// CollectTags lists the tag data for every frame member and gutter of m.
func CollectTags(m model.Model) []TagInfo {
	var tags []TagInfo
	for _, group := range [][]model.StructurePart{m.Parts, m.Gutters} {
		for _, p := range group {
			tags = append(tags, TagInfo{
				Name:   p.Name,
				Kind:   p.Kind,
				Length: round3(p.Length),
				Radius: p.Radius,
				X:      round3(p.Position.X),
				Z:      round3(p.Position.Z),
			})
		}
	}
	return tags
}

func renderTag(pdf *fpdf.Fpdf, index int, x, y float64, info TagInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}
	if err := placeQR(pdf, fmt.Sprintf("tag_%d", index), data, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize); err != nil {
		return err
	}

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s, %.2f m", info.Kind, info.Length), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@ x %.2f, z %.2f", info.X, info.Z), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("dia %.0f mm", info.Radius*2000), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// renderConfigQR places a QR code carrying cfg as JSON, so a printed report
// can be scanned back into the configurator.
func renderConfigQR(pdf *fpdf.Fpdf, x, y, size float64, cfg model.PolyhouseConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return placeQR(pdf, "qr_config", data, x, y, size)
}

func placeQR(pdf *fpdf.Fpdf, name string, data []byte, x, y, size float64) error {
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
