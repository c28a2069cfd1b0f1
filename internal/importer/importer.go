// Package importer provides CSV and Excel import of polyhouse designs, one
// design per row. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Projects []model.Project
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A negative index means the column is absent.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Eave      int
	Ridge     int
	Type      int
	Roof      int
	Structure int
	Cover     int
	SideVent  int
	TopVent   int
	Door      int
	InsectNet int
	Foggers   int
	Fans      int
	State     int
	District  int
}

// columnRoles lists every role in positional order with its accepted
// header aliases (all lowercase).
var columnRoles = []struct {
	aliases []string
	field   func(*ColumnMapping) *int
}{
	{[]string{"name", "project", "design", "label", "description"}, func(m *ColumnMapping) *int { return &m.Name }},
	{[]string{"length", "len", "l", "length (m)"}, func(m *ColumnMapping) *int { return &m.Length }},
	{[]string{"width", "w", "span", "width (m)"}, func(m *ColumnMapping) *int { return &m.Width }},
	{[]string{"eave", "eave height", "eaveheight", "gutter", "gutter height", "gutterheight"}, func(m *ColumnMapping) *int { return &m.Eave }},
	{[]string{"ridge", "ridge height", "ridgeheight", "height"}, func(m *ColumnMapping) *int { return &m.Ridge }},
	{[]string{"type", "polyhouse type", "polyhousetype"}, func(m *ColumnMapping) *int { return &m.Type }},
	{[]string{"roof", "roof type", "rooftype"}, func(m *ColumnMapping) *int { return &m.Roof }},
	{[]string{"structure", "structure material", "structurematerial", "frame"}, func(m *ColumnMapping) *int { return &m.Structure }},
	{[]string{"cover", "cover material", "covermaterial", "cladding"}, func(m *ColumnMapping) *int { return &m.Cover }},
	{[]string{"side vent", "side ventilation", "sideventilation", "side"}, func(m *ColumnMapping) *int { return &m.SideVent }},
	{[]string{"top vent", "top ventilation", "topventilation", "top"}, func(m *ColumnMapping) *int { return &m.TopVent }},
	{[]string{"door", "door entry", "doorentry"}, func(m *ColumnMapping) *int { return &m.Door }},
	{[]string{"insect net", "insectnet", "net"}, func(m *ColumnMapping) *int { return &m.InsectNet }},
	{[]string{"foggers", "fogger", "fogging"}, func(m *ColumnMapping) *int { return &m.Foggers }},
	{[]string{"fans", "fan", "exhaust fans"}, func(m *ColumnMapping) *int { return &m.Fans }},
	{[]string{"state", "region"}, func(m *ColumnMapping) *int { return &m.State }},
	{[]string{"district", "city"}, func(m *ColumnMapping) *int { return &m.District }},
}

func emptyMapping() ColumnMapping {
	var m ColumnMapping
	for _, role := range columnRoles {
		*role.field(&m) = -1
	}
	return m
}

// PositionalMapping is used when the data has no header row: the columns
// follow the order name, length, width, eave, ridge, type, roof, structure,
// cover, side vent, top vent, door, insect net, foggers, fans, state,
// district.
func PositionalMapping() ColumnMapping {
	var m ColumnMapping
	for i, role := range columnRoles {
		*role.field(&m) = i
	}
	return m
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := emptyMapping()

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, role := range columnRoles {
			for _, alias := range role.aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := role.field(&mapping); *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return PositionalMapping(), false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func token(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}

// parseBool accepts the usual spreadsheet spellings of yes and no.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x", "on":
		return true, true
	case "", "no", "n", "false", "0", "-", "off":
		return false, true
	default:
		return false, false
	}
}

// parseRow extracts a Project from a row using the given column mapping.
// Returns the project, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Project, string, []string) {
	var warnings []string
	cfg := model.DefaultConfig()

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Design %d", count+1)
	}

	dims := []struct {
		label    string
		idx      int
		dst      *float64
		required bool
	}{
		{"length", mapping.Length, &cfg.Length, true},
		{"width", mapping.Width, &cfg.Width, true},
		{"eave height", mapping.Eave, &cfg.EaveHeight, false},
		{"ridge height", mapping.Ridge, &cfg.RidgeHeight, false},
	}
	for _, d := range dims {
		s := getCell(row, d.idx)
		if s == "" {
			if d.required {
				return model.Project{}, fmt.Sprintf("%s: Missing %s value", rowLabel, d.label), nil
			}
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Project{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, d.label, s), nil
		}
		if v <= 0 {
			return model.Project{}, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(d.label[:1])+d.label[1:]), nil
		}
		*d.dst = v
	}
	if cfg.RidgeHeight <= cfg.EaveHeight {
		warnings = append(warnings, fmt.Sprintf("%s: Ridge height %.2f is not above eave height %.2f, roof will be flat", rowLabel, cfg.RidgeHeight, cfg.EaveHeight))
	}

	if s := getCell(row, mapping.Type); s != "" {
		cfg.PolyhouseType = model.ParsePolyhouseType(s)
		if string(cfg.PolyhouseType) != token(s) {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown polyhouse type '%s', using %s", rowLabel, s, cfg.PolyhouseType))
		}
	}
	if s := getCell(row, mapping.Roof); s != "" {
		cfg.RoofType = model.ParseRoofType(s)
		if string(cfg.RoofType) != token(s) {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown roof type '%s', using %s", rowLabel, s, cfg.RoofType))
		}
	}
	if s := getCell(row, mapping.Structure); s != "" {
		cfg.StructureMaterial = model.ParseStructureMaterial(s)
		if t := token(s); string(cfg.StructureMaterial) != t && t != "aluminum" {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown structure material '%s', using %s", rowLabel, s, cfg.StructureMaterial))
		}
	}
	if s := getCell(row, mapping.Cover); s != "" {
		cfg.CoverMaterial = model.ParseCoverMaterial(s)
		if t := token(s); string(cfg.CoverMaterial) != t && t != "polyethylene" {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown cover material '%s', using %s", rowLabel, s, cfg.CoverMaterial))
		}
	}
	defaults := model.DefaultConfig()
	for _, v := range []struct {
		label    string
		idx      int
		dst      *model.Ventilation
		fallback model.Ventilation
	}{
		{"side ventilation", mapping.SideVent, &cfg.SideVentilation, defaults.SideVentilation},
		{"top ventilation", mapping.TopVent, &cfg.TopVentilation, defaults.TopVentilation},
	} {
		s := getCell(row, v.idx)
		if s == "" {
			continue
		}
		*v.dst = model.ParseVentilation(s, v.fallback)
		if _, isBool := parseBool(s); !isBool && string(*v.dst) != token(s) {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown %s '%s', using %s", rowLabel, v.label, s, *v.dst))
		}
	}
	if s := getCell(row, mapping.Door); s != "" {
		cfg.DoorEntry = model.ParseDoorEntry(s)
		if string(cfg.DoorEntry) != token(s) {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown door entry '%s', using %s", rowLabel, s, cfg.DoorEntry))
		}
	}
	for _, b := range []struct {
		label string
		idx   int
		dst   *bool
	}{
		{"insect net", mapping.InsectNet, &cfg.InsectNet},
		{"foggers", mapping.Foggers, &cfg.Foggers},
		{"fans", mapping.Fans, &cfg.Fans},
	} {
		s := getCell(row, b.idx)
		v, ok := parseBool(s)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Cannot read %s value '%s', assuming no", rowLabel, b.label, s))
		}
		*b.dst = v
	}
	if s := getCell(row, mapping.State); s != "" {
		cfg.State = s
		cfg.District = ""
	}
	if mapping.District >= 0 {
		cfg.District = getCell(row, mapping.District)
	}

	return model.NewProjectWithConfig(name, cfg), "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile picks the importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports designs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports designs from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports designs from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a project.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// A non-numeric length means an unrecognised header row
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		project, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Projects))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Projects = append(result.Projects, project)
	}

	return result
}
