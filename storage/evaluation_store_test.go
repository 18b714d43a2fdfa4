package storage

import (
	"testing"
	"time"

	"feasibility/models"
	"feasibility/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluationRecord(t *testing.T) {
	generated := time.Date(2026, 5, 2, 11, 0, 0, 0, time.UTC)
	rep := services.Report{
		ID:          "6a0f5c8e-7f0e-4b7a-8d0e-8f3b2b0f4c11",
		GeneratedAt: generated,
		Result: models.FeasibilityResult{
			Input:           models.ProjectInput{ProjectName: "Dock 4", BuildingType: models.Commercial, PlotArea: 1000, RoadWidth: 25},
			Revision:        "default",
			FSI:             3.5,
			HeightLimit:     30,
			FloorCount:      9,
			Area:            models.AreaBreakdown{TotalBuiltUp: 3500},
			ParkingRequired: 7,
			Fire:            &models.FireClassification{Category: services.FireHighRise},
		},
	}

	rec := NewEvaluationRecord(rep, `{"fsi":3.5}`)
	assert.Equal(t, rep.ID, rec.ReportID)
	assert.Equal(t, "Dock 4", rec.ProjectName)
	assert.Equal(t, "Commercial", rec.BuildingType)
	assert.Equal(t, "default", rec.Revision)
	assert.Equal(t, 3.5, rec.FSI)
	assert.Equal(t, 9, rec.FloorCount)
	assert.Equal(t, 3500.0, rec.TotalBuiltUp)
	assert.Equal(t, 7, rec.ParkingRequired)
	assert.Equal(t, generated, rec.CreatedAt)
	assert.Equal(t, `{"fsi":3.5}`, rec.ResultJSON)
	require.NotNil(t, rec.FireCategory)
	assert.Equal(t, services.FireHighRise, *rec.FireCategory)
}

func TestNewEvaluationRecord_Residential(t *testing.T) {
	rep := services.Report{
		ID: "6a0f5c8e-7f0e-4b7a-8d0e-8f3b2b0f4c12",
		Result: models.FeasibilityResult{
			Input: models.ProjectInput{BuildingType: models.Residential, PlotArea: 1000, RoadWidth: 9},
		},
	}
	rec := NewEvaluationRecord(rep, "{}")
	assert.Nil(t, rec.FireCategory)
	assert.Equal(t, "feasibility_evaluations", rec.TableName())
}
