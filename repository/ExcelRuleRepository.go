package repository

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"feasibility/models"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names for the four rule tables plus revision settings.
const (
	SettingsSheet = "Settings"
	FSISheet      = "FSI Rules"
	HeightSheet   = "Height Rules"
	SetbackSheet  = "Setback Rules"
	ParkingSheet  = "Parking Rules"
)

var (
	fsiColumns     = []string{"Category", "Min Road Width (m)", "Max Road Width (m)", "FSI"}
	heightColumns  = []string{"Min Road Width (m)", "Height Limit (m)"}
	setbackColumns = []string{"Category", "Min Height (m)", "Max Height (m)", "Front (m)", "Side (m)", "Rear (m)"}
	parkingColumns = []string{"Category", "Unit Area (sq.m)", "Cars Per Unit"}
)

// sheetRow is one data row keyed by normalised header.
type sheetRow struct {
	line   int
	values map[string]string
}

// headerKey folds "Min Road Width (m)" and "min_road_width" to the same key.
func headerKey(h string) string {
	h = strings.ToLower(h)
	if i := strings.Index(h, "("); i >= 0 {
		h = h[:i]
	}
	var b strings.Builder
	for _, r := range h {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LoadExcelRuleSet reads a rule workbook from disk.
func LoadExcelRuleSet(path string) (models.RuleSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.RuleSet{}, fmt.Errorf("unable to open Excel file: %w", err)
	}
	defer f.Close()
	return parseRuleWorkbook(f)
}

// ReadExcelRuleSet reads a rule workbook from an upload or other stream.
func ReadExcelRuleSet(r io.Reader) (models.RuleSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.RuleSet{}, fmt.Errorf("unable to open Excel file: %w", err)
	}
	defer f.Close()
	return parseRuleWorkbook(f)
}

func parseRuleWorkbook(f *excelize.File) (models.RuleSet, error) {
	var rs models.RuleSet

	sheets := make(map[string]bool)
	for _, s := range f.GetSheetList() {
		sheets[s] = true
	}
	for _, required := range []string{FSISheet, HeightSheet, SetbackSheet, ParkingSheet} {
		if !sheets[required] {
			return rs, fmt.Errorf("sheet '%s' not found in Excel file", required)
		}
	}

	if sheets[SettingsSheet] {
		if err := readSettings(f, &rs); err != nil {
			return rs, err
		}
	}

	rows, err := readSheet(f, FSISheet, fsiColumns)
	if err != nil {
		return rs, err
	}
	for _, row := range rows {
		var r models.FSIRule
		r.Category = row.values[headerKey(fsiColumns[0])]
		if r.MinRoadWidth, err = row.float(FSISheet, fsiColumns[1]); err != nil {
			return rs, err
		}
		if r.MaxRoadWidth, err = row.float(FSISheet, fsiColumns[2]); err != nil {
			return rs, err
		}
		if r.FSI, err = row.float(FSISheet, fsiColumns[3]); err != nil {
			return rs, err
		}
		rs.FSI = append(rs.FSI, r)
	}

	if rows, err = readSheet(f, HeightSheet, heightColumns); err != nil {
		return rs, err
	}
	for _, row := range rows {
		var r models.HeightRule
		if r.MinRoadWidth, err = row.float(HeightSheet, heightColumns[0]); err != nil {
			return rs, err
		}
		if r.HeightLimit, err = row.float(HeightSheet, heightColumns[1]); err != nil {
			return rs, err
		}
		rs.Height = append(rs.Height, r)
	}

	if rows, err = readSheet(f, SetbackSheet, setbackColumns); err != nil {
		return rs, err
	}
	for _, row := range rows {
		r := models.SetbackRule{Category: row.values[headerKey(setbackColumns[0])]}
		fields := []*float64{&r.MinHeight, &r.MaxHeight, &r.Front, &r.Side, &r.Rear}
		for i, dst := range fields {
			if *dst, err = row.float(SetbackSheet, setbackColumns[i+1]); err != nil {
				return rs, err
			}
		}
		rs.Setback = append(rs.Setback, r)
	}

	if rows, err = readSheet(f, ParkingSheet, parkingColumns); err != nil {
		return rs, err
	}
	for _, row := range rows {
		r := models.ParkingRule{Category: row.values[headerKey(parkingColumns[0])]}
		if r.UnitAreaSqM, err = row.float(ParkingSheet, parkingColumns[1]); err != nil {
			return rs, err
		}
		if r.CarsPerUnit, err = row.float(ParkingSheet, parkingColumns[2]); err != nil {
			return rs, err
		}
		rs.Parking = append(rs.Parking, r)
	}

	return rs.WithDefaults(), nil
}

func readSettings(f *excelize.File, rs *models.RuleSet) error {
	rows, err := f.GetRows(SettingsSheet)
	if err != nil {
		return fmt.Errorf("error reading sheet '%s': %w", SettingsSheet, err)
	}
	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		value := strings.TrimSpace(row[1])
		var perr error
		switch headerKey(row[0]) {
		case "key":
			// header row
		case "revision":
			rs.Revision = value
		case "matchmode":
			rs.MatchMode = models.MatchMode(strings.ToLower(value))
		case "floortofloorheight":
			rs.FloorToFloorHeight, perr = strconv.ParseFloat(value, 64)
		case "coreratio":
			rs.CoreRatio, perr = strconv.ParseFloat(value, 64)
		case "sqmpersqft":
			rs.SqMPerSqFt, perr = strconv.ParseFloat(value, 64)
		default:
			return fmt.Errorf("sheet '%s' row %d: unknown setting %q", SettingsSheet, i+1, row[0])
		}
		if perr != nil {
			return fmt.Errorf("sheet '%s' row %d: %q is not a number", SettingsSheet, i+1, value)
		}
	}
	return nil
}

// readSheet maps the header row onto the expected columns and returns the
// non-blank data rows below it.
func readSheet(f *excelize.File, sheet string, columns []string) ([]sheetRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet '%s': %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet '%s' must have at least a header row and one data row", sheet)
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[headerKey(h)] = i
	}
	for _, c := range columns {
		if _, ok := index[headerKey(c)]; !ok {
			return nil, fmt.Errorf("sheet '%s' is missing column '%s'", sheet, c)
		}
	}

	var out []sheetRow
	for i, row := range rows[1:] {
		blank := true
		values := make(map[string]string, len(columns))
		for _, c := range columns {
			key := headerKey(c)
			if idx := index[key]; idx < len(row) {
				values[key] = strings.TrimSpace(row[idx])
				if values[key] != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}
		out = append(out, sheetRow{line: i + 2, values: values})
	}
	return out, nil
}

func (r sheetRow) float(sheet, column string) (float64, error) {
	s := r.values[headerKey(column)]
	if s == "" {
		return 0, fmt.Errorf("sheet '%s' row %d: column '%s' is empty", sheet, r.line, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("sheet '%s' row %d: column '%s' value %q is not a number", sheet, r.line, column, s)
	}
	return v, nil
}

// NewRuleWorkbook lays a rule set out in the same sheets LoadExcelRuleSet reads,
// so an exported workbook can be edited and loaded back.
func NewRuleWorkbook(rs models.RuleSet) (*excelize.File, error) {
	rs = rs.WithDefaults()
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F0F0F0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	write := func(sheet string, header []string, rows [][]interface{}) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("error creating sheet '%s': %w", sheet, err)
		}
		headerRow := make([]interface{}, len(header))
		for i, h := range header {
			headerRow[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
		return nil
	}

	settings := [][]interface{}{
		{"revision", rs.Revision},
		{"match_mode", string(rs.MatchMode)},
		{"floor_to_floor_height", rs.FloorToFloorHeight},
		{"core_ratio", rs.CoreRatio},
		{"sqm_per_sqft", rs.SqMPerSqFt},
	}
	var fsi, height, setback, parking [][]interface{}
	for _, r := range rs.FSI {
		fsi = append(fsi, []interface{}{r.Category, r.MinRoadWidth, r.MaxRoadWidth, r.FSI})
	}
	for _, r := range rs.Height {
		height = append(height, []interface{}{r.MinRoadWidth, r.HeightLimit})
	}
	for _, r := range rs.Setback {
		setback = append(setback, []interface{}{r.Category, r.MinHeight, r.MaxHeight, r.Front, r.Side, r.Rear})
	}
	for _, r := range rs.Parking {
		parking = append(parking, []interface{}{r.Category, r.UnitAreaSqM, r.CarsPerUnit})
	}

	steps := []struct {
		sheet  string
		header []string
		rows   [][]interface{}
	}{
		{SettingsSheet, []string{"Key", "Value"}, settings},
		{FSISheet, fsiColumns, fsi},
		{HeightSheet, heightColumns, height},
		{SetbackSheet, setbackColumns, setback},
		{ParkingSheet, parkingColumns, parking},
	}
	for _, s := range steps {
		if err := write(s.sheet, s.header, s.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	if idx, err := f.GetSheetIndex(SettingsSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}
	return f, nil
}
