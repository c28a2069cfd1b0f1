// Package cutlist plans how the frame members of a polyhouse are cut from
// stock pipe lengths. Members longer than a stock pipe are spliced from
// several segments joined with an overlap sleeve.
package cutlist

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/polyhouse/internal/model"
)

// Algorithm selects the packing strategy.
type Algorithm string

const (
	AlgorithmFirstFit Algorithm = "first-fit"
	AlgorithmGenetic  Algorithm = "genetic"
)

// Settings controls cutting. Lengths are in metres.
type Settings struct {
	StockLength float64   `json:"stockLength"`
	Kerf        float64   `json:"kerf"`
	Overlap     float64   `json:"overlap"` // splice sleeve overlap
	Algorithm   Algorithm `json:"algorithm"`
}

// MinStockLength is the shortest stock bar (in metres) a plan accepts.
const MinStockLength = 1.0

// Validate reports settings New would have to correct: a stock bar shorter
// than MinStockLength, a negative kerf or one as long as the bar, a splice
// overlap outside [0, stock/2), or an unknown algorithm.
func (s Settings) Validate() error {
	if math.IsNaN(s.StockLength) || math.IsInf(s.StockLength, 0) || s.StockLength < MinStockLength {
		return fmt.Errorf("stock length %g m must be finite and at least %g m", s.StockLength, MinStockLength)
	}
	if math.IsNaN(s.Kerf) || s.Kerf < 0 || s.Kerf >= s.StockLength {
		return fmt.Errorf("kerf %g m must be at least 0 and shorter than the stock", s.Kerf)
	}
	if math.IsNaN(s.Overlap) || s.Overlap < 0 || s.Overlap >= s.StockLength/2 {
		return fmt.Errorf("splice overlap %g m must be at least 0 and under half the stock length", s.Overlap)
	}
	switch s.Algorithm {
	case AlgorithmFirstFit, AlgorithmGenetic:
	default:
		return fmt.Errorf("unknown algorithm %q", s.Algorithm)
	}
	return nil
}

// DefaultSettings cuts from 6 m pipes with a 3 mm saw kerf and 150 mm
// splice overlap.
func DefaultSettings() Settings {
	return Settings{
		StockLength: 6,
		Kerf:        0.003,
		Overlap:     0.15,
		Algorithm:   AlgorithmFirstFit,
	}
}

// Section identifies stock that pieces can share: the same profile and
// outer diameter.
type Section struct {
	Gutter   bool `json:"gutter"`
	Diameter int  `json:"diameterMm"`
}

func (s Section) Label() string {
	if s.Gutter {
		return fmt.Sprintf("Gutter %d mm", s.Diameter)
	}
	return fmt.Sprintf("Pipe Ø%d mm", s.Diameter)
}

func sectionOf(p model.StructurePart) Section {
	return Section{
		Gutter:   p.Kind == model.PartGutter,
		Diameter: int(math.Floor(p.Radius*2000 + 0.5)),
	}
}

// Piece is one length to cut.
type Piece struct {
	Name    string         `json:"name"`
	Kind    model.PartKind `json:"kind"`
	Section Section        `json:"section"`
	Length  float64        `json:"length"`
}

// Cut places a piece at an offset along a bar.
type Cut struct {
	Piece  Piece   `json:"piece"`
	Offset float64 `json:"offset"`
}

// Bar is one stock pipe and the pieces cut from it.
type Bar struct {
	Section Section `json:"section"`
	Length  float64 `json:"length"`
	Cuts    []Cut   `json:"cuts"`
}

// Used is the length consumed by cuts and the kerf after each of them.
func (b Bar) Used(kerf float64) float64 {
	if len(b.Cuts) == 0 {
		return 0
	}
	last := b.Cuts[len(b.Cuts)-1]
	return math.Min(b.Length, last.Offset+last.Piece.Length+kerf)
}

// Offcut is what remains of the bar after cutting.
func (b Bar) Offcut(kerf float64) float64 {
	return b.Length - b.Used(kerf)
}

// Plan is the result of cutting a set of pieces.
type Plan struct {
	Settings Settings `json:"settings"`
	Bars     []Bar    `json:"bars"`
	Splices  int      `json:"splices"`
}

// StockUsed is the total length of stock bought.
func (p Plan) StockUsed() float64 {
	var total float64
	for _, b := range p.Bars {
		total += b.Length
	}
	return total
}

// PieceLength is the total length of all cut pieces.
func (p Plan) PieceLength() float64 {
	var total float64
	for _, b := range p.Bars {
		for _, c := range b.Cuts {
			total += c.Piece.Length
		}
	}
	return total
}

// Efficiency is the percentage of bought stock that ends up in pieces.
func (p Plan) Efficiency() float64 {
	stock := p.StockUsed()
	if stock == 0 {
		return 0
	}
	return p.PieceLength() / stock * 100
}

// BarCount tallies bars per section.
type BarCount struct {
	Section Section
	Bars    int
	Offcut  float64 // m
}

// Summary counts bars per section, ordered by section.
func (p Plan) Summary() []BarCount {
	idx := map[Section]int{}
	var out []BarCount
	for _, b := range p.Bars {
		i, ok := idx[b.Section]
		if !ok {
			i = len(out)
			idx[b.Section] = i
			out = append(out, BarCount{Section: b.Section})
		}
		out[i].Bars++
		out[i].Offcut += b.Offcut(p.Settings.Kerf)
	}
	sort.Slice(out, func(i, j int) bool { return sectionLess(out[i].Section, out[j].Section) })
	return out
}

func sectionLess(a, b Section) bool {
	if a.Gutter != b.Gutter {
		return !a.Gutter
	}
	return a.Diameter < b.Diameter
}

// Pieces lists the frame members and gutters of m as pieces to cut.
func Pieces(m model.Model) []Piece {
	var pieces []Piece
	for _, group := range [][]model.StructurePart{m.Parts, m.Gutters} {
		for _, p := range group {
			if p.Length <= 0 {
				continue
			}
			pieces = append(pieces, Piece{Name: p.Name, Kind: p.Kind, Section: sectionOf(p), Length: p.Length})
		}
	}
	return pieces
}

// Optimize cuts the members of m with s.
func Optimize(m model.Model, s Settings) Plan {
	return New(s).Optimize(Pieces(m))
}

// Optimizer packs pieces into stock bars.
type Optimizer struct {
	Settings Settings
}

// New corrects out-of-range settings: a stock bar shorter than
// MinStockLength takes the default length, and an overlap outside
// [0, stock/2) becomes 0, so every splice advances at least half a bar.
func New(settings Settings) *Optimizer {
	if !(settings.StockLength >= MinStockLength) || math.IsInf(settings.StockLength, 1) {
		settings.StockLength = DefaultSettings().StockLength
	}
	if !(settings.Kerf >= 0) || settings.Kerf >= settings.StockLength {
		settings.Kerf = 0
	}
	if !(settings.Overlap >= 0) || settings.Overlap >= settings.StockLength/2 {
		settings.Overlap = 0
	}
	return &Optimizer{Settings: settings}
}

// Optimize splits over-long pieces, then packs each section separately.
func (o *Optimizer) Optimize(pieces []Piece) Plan {
	plan := Plan{Settings: o.Settings}

	var segments []Piece
	for _, p := range pieces {
		split, joints := o.split(p)
		segments = append(segments, split...)
		plan.Splices += joints
	}

	for _, g := range groupBySection(segments) {
		var bars []Bar
		if o.Settings.Algorithm == AlgorithmGenetic {
			bars = optimizeGenetic(o.Settings, g.pieces)
		} else {
			bars = o.firstFitDecreasing(g.pieces)
		}
		plan.Bars = append(plan.Bars, bars...)
	}
	return plan
}

// split breaks a piece longer than a stock bar into bar-length segments
// joined by overlapping splices.
func (o *Optimizer) split(p Piece) ([]Piece, int) {
	stock := o.Settings.StockLength
	if p.Length <= stock {
		return []Piece{p}, 0
	}
	var lengths []float64
	remaining := p.Length
	for remaining > stock {
		lengths = append(lengths, stock)
		remaining = remaining - stock + o.Settings.Overlap
	}
	lengths = append(lengths, remaining)

	out := make([]Piece, len(lengths))
	for i, l := range lengths {
		seg := p
		seg.Name = fmt.Sprintf("%s (%d/%d)", p.Name, i+1, len(lengths))
		seg.Length = l
		out[i] = seg
	}
	return out, len(lengths) - 1
}

type sectionGroup struct {
	section Section
	pieces  []Piece
}

// groupBySection splits pieces by section in a stable section order.
func groupBySection(pieces []Piece) []sectionGroup {
	idx := map[Section]int{}
	var groups []sectionGroup
	for _, p := range pieces {
		i, ok := idx[p.Section]
		if !ok {
			i = len(groups)
			idx[p.Section] = i
			groups = append(groups, sectionGroup{section: p.Section})
		}
		groups[i].pieces = append(groups[i].pieces, p)
	}
	sort.Slice(groups, func(i, j int) bool { return sectionLess(groups[i].section, groups[j].section) })
	return groups
}

// firstFitDecreasing places the longest pieces first, each into the first
// bar with room left.
func (o *Optimizer) firstFitDecreasing(pieces []Piece) []Bar {
	sorted := make([]Piece, len(pieces))
	copy(sorted, pieces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})
	return packInOrder(o.Settings, sorted)
}

// packInOrder places pieces in the given order, each into the first bar it
// fits, opening a new bar when none has room.
func packInOrder(s Settings, pieces []Piece) []Bar {
	var bars []Bar
	var used []float64
	for _, p := range pieces {
		placed := false
		for i := range bars {
			if fits(used[i], p.Length, s.StockLength) {
				bars[i].Cuts = append(bars[i].Cuts, Cut{Piece: p, Offset: used[i]})
				used[i] += p.Length + s.Kerf
				placed = true
				break
			}
		}
		if !placed {
			bars = append(bars, Bar{
				Section: p.Section,
				Length:  s.StockLength,
				Cuts:    []Cut{{Piece: p}},
			})
			used = append(used, p.Length+s.Kerf)
		}
	}
	return bars
}

// fits reports whether a piece fits after used. The last piece on a bar
// needs no kerf behind it.
func fits(used, length, stock float64) bool {
	return used+length <= stock+1e-9
}
