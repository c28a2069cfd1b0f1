// Package export renders polyhouse designs to shareable files: a PDF design
// report, QR-coded part tags, a DXF drawing and an XLSX bill of materials.
package export

import (
	"errors"
	"sort"
	"time"

	"github.com/piwi3910/polyhouse/internal/layout"
	"github.com/piwi3910/polyhouse/internal/model"
)

// ErrEmptyModel is returned when a model has no frame parts to export.
var ErrEmptyModel = errors.New("export: model has no parts")

// Report bundles everything rendered into a design report.
type Report struct {
	Model       model.Model
	Result      model.CalculationResult
	Crops       string
	GeneratedAt time.Time
}

func (r Report) generatedAt() time.Time {
	if r.GeneratedAt.IsZero() {
		return time.Now()
	}
	return r.GeneratedAt
}

// FrameLine is one row of the frame bill of materials.
type FrameLine struct {
	Kind        model.PartKind
	Count       int
	TotalLength float64 // m
}

// FeatureLine counts the placed features of one kind.
type FeatureLine struct {
	Kind  model.FeatureKind
	Count int
}

// BOM is the bill of materials of a model.
type BOM struct {
	Frame    []FrameLine
	Features []FeatureLine
}

var partOrder = []model.PartKind{
	model.PartPost, model.PartBeam, model.PartTruss, model.PartRafter, model.PartGutter, model.PartPipe,
}

// Summarize counts the frame members, gutters, irrigation lines and
// features of m.
func Summarize(m model.Model) BOM {
	all := make([]model.StructurePart, 0, len(m.Parts)+len(m.Gutters)+len(m.Interior.Irrigation))
	all = append(all, m.Parts...)
	all = append(all, m.Gutters...)
	all = append(all, m.Interior.Irrigation...)

	counts := layout.Count(all)
	lengths := layout.TotalLength(all)

	var b BOM
	for _, k := range partOrder {
		if counts[k] == 0 {
			continue
		}
		b.Frame = append(b.Frame, FrameLine{Kind: k, Count: counts[k], TotalLength: lengths[k]})
	}

	fc := map[model.FeatureKind]int{}
	for _, f := range m.Features {
		fc[f.Kind]++
	}
	for k, n := range fc {
		b.Features = append(b.Features, FeatureLine{Kind: k, Count: n})
	}
	sort.Slice(b.Features, func(i, j int) bool { return b.Features[i].Kind < b.Features[j].Kind })
	return b
}
