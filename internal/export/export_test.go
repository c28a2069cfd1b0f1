package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/polyhouse/internal/builder"
	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/model"
)

func testReport(t *testing.T) Report {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Fans = true
	cfg.State = "Kerala"
	return Report{
		Model:       builder.Build(cfg),
		Result:      estimate.Calculate(cfg),
		Crops:       "1. Tomato - high yield\n2. Capsicum - 25°C ideal",
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ─── Summary ───────────────────────────────────────────────

func TestSummarize_DefaultGable(t *testing.T) {
	bom := Summarize(builder.Build(model.DefaultConfig()))

	counts := map[model.PartKind]int{}
	for _, l := range bom.Frame {
		counts[l.Kind] = l.Count
		assert.Greater(t, l.TotalLength, 0.0, l.Kind)
	}
	assert.Equal(t, 16, counts[model.PartPost])
	assert.Equal(t, 3, counts[model.PartBeam])
	assert.Equal(t, 2, counts[model.PartTruss])
	assert.Equal(t, 16, counts[model.PartRafter])
	assert.Equal(t, 2, counts[model.PartGutter])
	assert.Equal(t, 4, counts[model.PartPipe])
	assert.Equal(t, model.PartPost, bom.Frame[0].Kind)

	assert.Equal(t, []FeatureLine{
		{Kind: model.FeatureDoor, Count: 1},
		{Kind: model.FeatureSideVent, Count: 2},
	}, bom.Features)
}

func TestCollectTags(t *testing.T) {
	m := builder.Build(model.DefaultConfig())
	tags := CollectTags(m)
	require.Len(t, tags, len(m.Parts)+len(m.Gutters))
	assert.Equal(t, "corner-post-1", tags[0].Name)
	assert.Equal(t, 4.0, tags[0].Length)
	assert.Equal(t, "gutter-right", tags[len(tags)-1].Name)
}

// ─── PDF ───────────────────────────────────────────────────

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, ExportPDF(path, testReport(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 2000)
}

func TestRenderPDF_WithoutCrops(t *testing.T) {
	r := testReport(t)
	r.Crops = "  "
	data, err := RenderPDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderPDF_EveryRoof(t *testing.T) {
	for _, roof := range model.RoofTypes {
		cfg := model.DefaultConfig()
		cfg.RoofType = roof
		_, err := RenderPDF(Report{Model: builder.Build(cfg), Result: estimate.Calculate(cfg)})
		assert.NoError(t, err, roof)
	}
}

func TestExportPDF_EmptyModel(t *testing.T) {
	err := ExportPDF(filepath.Join(t.TempDir(), "empty.pdf"), Report{})
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestExportPartTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.pdf")
	cfg := model.DefaultConfig()
	cfg.Length = 60
	require.NoError(t, ExportPartTags(path, builder.Build(cfg)), "more tags than fit on one page")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))

	assert.ErrorIs(t, ExportPartTags(path, model.Model{}), ErrEmptyModel)
}

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		0:        "INR 0",
		999:      "INR 999",
		1000:     "INR 1,000",
		490770:   "INR 4,90,770",
		1219554:  "INR 12,19,554",
		12345678: "INR 1,23,45,678",
		-5000:    "INR -5,000",
	}
	for v, want := range cases {
		assert.Equal(t, want, FormatINR(v))
	}
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#a8e6cf")
	assert.Equal(t, []int{0xa8, 0xe6, 0xcf}, []int{r, g, b})
	r, g, b = hexRGB("green")
	assert.Equal(t, []int{200, 200, 200}, []int{r, g, b})
}

// ─── DXF ───────────────────────────────────────────────────

func TestExportDXF_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.dxf")
	m := builder.Build(model.DefaultConfig())
	require.NoError(t, ExportDXF(path, m))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var polylines, circles, lines int
	var endWall *entity.LwPolyline
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if polylines == 0 {
				endWall = e
			}
			polylines++
		case *entity.Circle:
			circles++
		case *entity.Line:
			lines++
		}
	}

	// end wall + roof + footprint + one rectangle per feature
	assert.Equal(t, 3+len(m.Features), polylines)
	assert.Equal(t, len(m.PartsOfKind(model.PartPost)), circles)
	assert.Equal(t, 3, lines)

	require.NotNil(t, endWall)
	assert.Len(t, endWall.Vertices, len(m.EndWallProfile))
	assert.InDelta(t, -5.0, endWall.Vertices[0][0], 1e-9)
}

func TestRenderDXF(t *testing.T) {
	data, err := RenderDXF(builder.Build(model.DefaultConfig()))
	require.NoError(t, err)
	s := string(data)
	for _, layer := range []string{LayerEndWall, LayerRoof, LayerPlanPosts, LayerPlanFeatures, LayerDimensions} {
		assert.True(t, strings.Contains(s, layer), layer)
	}

	_, err = RenderDXF(model.Model{})
	assert.ErrorIs(t, err, ErrEmptyModel)
}

// ─── XLSX ──────────────────────────────────────────────────

func TestExportXLSX(t *testing.T) {
	r := testReport(t)
	path := filepath.Join(t.TempDir(), "bom.xlsx")
	require.NoError(t, ExportXLSX(path, r.Model, r.Result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetFrame, SheetFeatures, SheetCost, SheetCutList}, f.GetSheetList())

	frame, err := f.GetRows(SheetFrame)
	require.NoError(t, err)
	assert.Equal(t, []string{"Member", "Count", "Total length (m)", "Material"}, frame[0])
	assert.Equal(t, "Posts", frame[1][0])
	assert.Equal(t, "16", frame[1][1])

	features, err := f.GetRows(SheetFeatures)
	require.NoError(t, err)
	assert.Len(t, features, 1+len(Summarize(r.Model).Features))

	cost, err := f.GetRows(SheetCost)
	require.NoError(t, err)
	assert.Equal(t, "Structure", cost[1][0])
	last := cost[len(cost)-1]
	assert.Equal(t, "Cost per m²", last[0])

	cuts, err := f.GetRows(SheetCutList)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar", "Section", "Stock (m)", "Pieces", "Offcut (m)"}, cuts[0])
	assert.Equal(t, "1", cuts[1][0])
	assert.Equal(t, "Efficiency (%)", cuts[len(cuts)-1][0])
}

func TestRenderXLSX(t *testing.T) {
	r := testReport(t)
	data, err := RenderXLSX(r.Model, r.Result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(SheetCost, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Structure", v)

	_, err = RenderXLSX(model.Model{}, r.Result)
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestConfigQRPayloadRoundTrips(t *testing.T) {
	cfg := model.DefaultConfig()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var back model.PolyhouseConfig
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}
