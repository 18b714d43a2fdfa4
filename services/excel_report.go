package services

import (
	"fmt"

	"feasibility/models"

	"github.com/xuri/excelize/v2"
)

const ReportSheet = "Feasibility"

// NewReportWorkbook lays the report sections out as label/value rows on one sheet.
func NewReportWorkbook(rep Report) (*excelize.File, error) {
	res := rep.Result.Rounded()

	f := excelize.NewFile()
	index, err := f.NewSheet(ReportSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]interface{}{
		{"Feasibility Report"},
		{"Report ID", rep.ID},
		{"Generated On", rep.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Project", res.Input.ProjectName},
		{"Building Type", string(res.Input.BuildingType)},
		{"Plot Area (sq.ft)", res.Input.PlotArea},
		{"Road Width (m)", res.Input.RoadWidth},
		{"Rule Revision", res.Revision},
		{},
		{"Basic Controls"},
		{"Permissible FSI", res.FSI},
		{"Height Limit (m)", res.HeightLimit},
		{"Estimated Floors (Zone-based)", res.FloorCount},
		{},
		{"Area Statement"},
		{"Total Built-up Area (sq.ft)", res.Area.TotalBuiltUp},
	}
	if res.Area.Split == nil {
		rows = append(rows, []interface{}{"Built-up Area (Residential) (sq.ft)", res.Area.TotalBuiltUp})
	} else {
		rows = append(rows,
			[]interface{}{"Typical Floor Plate (sq.ft)", res.Area.Split.FloorPlate},
			[]interface{}{"Core Area (sq.ft)", res.Area.Split.CoreArea},
			[]interface{}{"Sellable Area (sq.ft)", res.Area.Split.SellableArea},
		)
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Setbacks (m)"},
		[]interface{}{"Front", res.Setbacks.Front},
		[]interface{}{"Side", res.Setbacks.Side},
		[]interface{}{"Rear", res.Setbacks.Rear},
		[]interface{}{},
		[]interface{}{"Parking"},
		[]interface{}{"Parking Required (Cars)", res.ParkingRequired},
	)
	if res.Fire != nil {
		rows = append(rows,
			[]interface{}{},
			[]interface{}{"Fire Classification"},
			[]interface{}{"Building Category", res.Fire.Category},
			[]interface{}{"Compliance", res.Fire.ComplianceNote},
		)
	}
	rows = append(rows, []interface{}{}, []interface{}{models.FeasibilityNote})

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
		// single-cell rows are section titles
		if len(row) == 1 {
			if err := f.SetCellStyle(ReportSheet, cell, cell, boldStyle); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(ReportSheet, "A", "A", 38); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(ReportSheet, "B", "B", 40); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
