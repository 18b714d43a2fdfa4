package services

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"feasibility/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T, bt models.BuildingType, roadWidth float64) Report {
	t.Helper()
	res, err := newTestEvaluator(t).Evaluate(models.ProjectInput{
		ProjectName:  "lakeview towers",
		BuildingType: bt,
		PlotArea:     1000,
		RoadWidth:    roadWidth,
	})
	require.NoError(t, err)
	return Report{
		ID:          "0b5e8a54-52b4-4c5b-9c1e-2f7f3b9d6a10",
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Result:      res,
	}
}

func TestWritePDF(t *testing.T) {
	for _, bt := range []models.BuildingType{models.Residential, models.Commercial} {
		t.Run(string(bt), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WritePDF(&buf, testReport(t, bt, 25)))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
			assert.Greater(t, buf.Len(), 1000)
		})
	}
}

func TestWritePDF_WithoutID(t *testing.T) {
	rep := testReport(t, models.Commercial, 9)
	rep.ID = ""

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func reportCells(t *testing.T, rep Report) map[string]string {
	t.Helper()
	f, err := NewReportWorkbook(rep)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)

	cells := make(map[string]string)
	for _, row := range rows {
		switch len(row) {
		case 0:
		case 1:
			cells[row[0]] = ""
		default:
			cells[row[0]] = row[1]
		}
	}
	return cells
}

func TestNewReportWorkbook_Commercial(t *testing.T) {
	cells := reportCells(t, testReport(t, models.Commercial, 25))

	assert.Equal(t, "3.5", cells["Permissible FSI"])
	assert.Equal(t, "30", cells["Height Limit (m)"])
	assert.Equal(t, "9", cells["Estimated Floors (Zone-based)"])
	assert.Equal(t, "388.89", cells["Typical Floor Plate (sq.ft)"])
	assert.Equal(t, "490", cells["Core Area (sq.ft)"])
	assert.Equal(t, "3010", cells["Sellable Area (sq.ft)"])
	assert.Equal(t, "7", cells["Parking Required (Cars)"])
	assert.Equal(t, FireHighRise, cells["Building Category"])
	assert.Contains(t, cells, models.FeasibilityNote)
}

func TestNewReportWorkbook_Residential(t *testing.T) {
	cells := reportCells(t, testReport(t, models.Residential, 9))

	assert.Equal(t, "2500", cells["Built-up Area (Residential) (sq.ft)"])
	assert.NotContains(t, cells, "Core Area (sq.ft)")
	assert.NotContains(t, cells, "Fire Classification")
}

func TestQRCodePNG(t *testing.T) {
	rep := testReport(t, models.Industrial, 12)

	data, err := QRCodePNG(rep.Tag(), 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 256, b.Dx())
	// caption lines sit under the code
	assert.Greater(t, b.Dy(), b.Dx())
}

func TestReportTag(t *testing.T) {
	rep := testReport(t, models.MixedUse, 12)
	tag := rep.Tag()

	assert.Equal(t, rep.ID, tag.ReportID)
	assert.Equal(t, "test", tag.Revision)
	assert.Equal(t, "MixedUse", tag.BuildingType)
	assert.Equal(t, 1000.0, tag.PlotArea)
	assert.Equal(t, 12.0, tag.RoadWidth)
	assert.Equal(t, "0b5e8a54", shortID(tag.ReportID))
}
