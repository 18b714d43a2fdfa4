package services

import (
	"errors"
	"math"
	"testing"

	"feasibility/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRuleSet mirrors the built-in tables without importing the repository package.
func testRuleSet() models.RuleSet {
	bands := [][2]float64{{6, 9}, {9, 12}, {12, 18}, {18, 24}, {24, 100}}
	fsiValues := map[string][5]float64{
		"Residential":   {1.75, 2.5, 2.75, 3.0, 3.5},
		"Commercial":    {2.0, 2.5, 3.0, 3.25, 3.5},
		"Mixed Use":     {2.0, 2.5, 3.0, 3.25, 3.5},
		"Industrial":    {1.0, 1.25, 1.5, 1.75, 2.0},
		"Institutional": {1.5, 2.0, 2.5, 2.75, 3.0},
	}
	order := []string{"Residential", "Commercial", "Mixed Use", "Industrial", "Institutional"}

	var fsi []models.FSIRule
	for _, cat := range order {
		for i, b := range bands {
			fsi = append(fsi, models.FSIRule{Category: cat, MinRoadWidth: b[0], MaxRoadWidth: b[1], FSI: fsiValues[cat][i]})
		}
	}

	var setbacks []models.SetbackRule
	for _, cat := range order {
		setbacks = append(setbacks,
			models.SetbackRule{Category: cat, MinHeight: 0, MaxHeight: 15, Front: 3, Side: 1.5, Rear: 1.5},
			models.SetbackRule{Category: cat, MinHeight: 15, MaxHeight: 24, Front: 5, Side: 3, Rear: 3},
			models.SetbackRule{Category: cat, MinHeight: 24, MaxHeight: 100, Front: 9, Side: 6, Rear: 6},
		)
	}

	return models.RuleSet{
		Revision: "test",
		FSI:      fsi,
		Height: []models.HeightRule{
			{MinRoadWidth: 24, HeightLimit: 30},
			{MinRoadWidth: 6, HeightLimit: 15},
			{MinRoadWidth: 12, HeightLimit: 24},
			{MinRoadWidth: 9, HeightLimit: 20},
			{MinRoadWidth: 18, HeightLimit: 27},
		},
		Setback: setbacks,
		Parking: []models.ParkingRule{
			{Category: "Residential", UnitAreaSqM: 100, CarsPerUnit: 1},
			{Category: "Commercial", UnitAreaSqM: 50, CarsPerUnit: 1},
			{Category: "Mixed Use", UnitAreaSqM: 75, CarsPerUnit: 1},
			{Category: "Industrial", UnitAreaSqM: 200, CarsPerUnit: 1},
			{Category: "Institutional", UnitAreaSqM: 100, CarsPerUnit: 1},
		},
	}
}

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(testRuleSet())
	require.NoError(t, err)
	return ev
}

func TestEvaluate_Residential(t *testing.T) {
	ev := newTestEvaluator(t)

	res, err := ev.Evaluate(models.ProjectInput{
		ProjectName:  "  Plot 7 ",
		BuildingType: models.Residential,
		PlotArea:     1000,
		RoadWidth:    9,
	})
	require.NoError(t, err)

	assert.Equal(t, "Plot 7", res.Input.ProjectName)
	assert.Equal(t, "test", res.Revision)
	assert.Equal(t, 2.5, res.FSI)
	assert.Equal(t, 20.0, res.HeightLimit)
	assert.Equal(t, 6, res.FloorCount)
	assert.Equal(t, models.Setbacks{Front: 5, Side: 3, Rear: 3}, res.Setbacks)
	assert.Equal(t, 3, res.ParkingRequired)
	assert.InDelta(t, 2500.0, res.Area.TotalBuiltUp, 1e-9)
	assert.Nil(t, res.Area.Split)
	assert.Nil(t, res.Fire)
}

func TestEvaluate_Commercial(t *testing.T) {
	ev := newTestEvaluator(t)

	res, err := ev.Evaluate(models.ProjectInput{
		BuildingType: models.Commercial,
		PlotArea:     1000,
		RoadWidth:    25,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.5, res.FSI)
	assert.Equal(t, 30.0, res.HeightLimit)
	assert.Equal(t, 9, res.FloorCount)
	assert.Equal(t, models.Setbacks{Front: 9, Side: 6, Rear: 6}, res.Setbacks)
	assert.Equal(t, 7, res.ParkingRequired)

	require.NotNil(t, res.Area.Split)
	rounded := res.Rounded()
	assert.Equal(t, 3500.0, rounded.Area.TotalBuiltUp)
	assert.Equal(t, 388.89, rounded.Area.Split.FloorPlate)
	assert.Equal(t, 490.0, rounded.Area.Split.CoreArea)
	assert.Equal(t, 3010.0, rounded.Area.Split.SellableArea)

	require.NotNil(t, res.Fire)
	assert.Equal(t, FireHighRise, res.Fire.Category)
	assert.Equal(t, "High-Rise Fire NOC Required", res.Fire.ComplianceNote)
}

func TestEvaluate_RoadWidthOutsideTables(t *testing.T) {
	ev := newTestEvaluator(t)

	for _, rw := range []float64{0.5, 5.99, 100, 250} {
		_, err := ev.Evaluate(models.ProjectInput{BuildingType: models.Residential, PlotArea: 1000, RoadWidth: rw})
		assert.ErrorIs(t, err, ErrNoMatchingRule, "road width %v", rw)
	}
}

func TestEvaluate_InvalidInput(t *testing.T) {
	ev := newTestEvaluator(t)

	tests := []struct {
		name string
		in   models.ProjectInput
	}{
		{"unknown type", models.ProjectInput{BuildingType: "Hospital", PlotArea: 1000, RoadWidth: 9}},
		{"zero plot area", models.ProjectInput{BuildingType: models.Residential, PlotArea: 0, RoadWidth: 9}},
		{"negative plot area", models.ProjectInput{BuildingType: models.Residential, PlotArea: -10, RoadWidth: 9}},
		{"zero road width", models.ProjectInput{BuildingType: models.Residential, PlotArea: 1000, RoadWidth: 0}},
		{"NaN road width", models.ProjectInput{BuildingType: models.Residential, PlotArea: 1000, RoadWidth: math.NaN()}},
		{"infinite plot area", models.ProjectInput{BuildingType: models.Residential, PlotArea: math.Inf(1), RoadWidth: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Evaluate(tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.False(t, errors.Is(err, ErrNoMatchingRule))
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	ev := newTestEvaluator(t)
	in := models.ProjectInput{BuildingType: models.MixedUse, PlotArea: 2345.6, RoadWidth: 13.2}

	first, err := ev.Evaluate(in)
	require.NoError(t, err)
	second, err := ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluate_ValuesComeFromTables(t *testing.T) {
	rs := testRuleSet()
	ev := newTestEvaluator(t)

	fsiValues := map[float64]bool{}
	for _, r := range rs.FSI {
		fsiValues[r.FSI] = true
	}
	heights := map[float64]bool{}
	for _, r := range rs.Height {
		heights[r.HeightLimit] = true
	}

	for _, bt := range models.BuildingTypes {
		for _, rw := range []float64{6, 8.9, 9, 11.5, 12, 17.9, 18, 23.99, 24, 60, 99.9} {
			res, err := ev.Evaluate(models.ProjectInput{BuildingType: bt, PlotArea: 1500, RoadWidth: rw})
			require.NoError(t, err, "%s at %v m", bt, rw)
			assert.True(t, fsiValues[res.FSI], "fsi %v not in table", res.FSI)
			assert.True(t, heights[res.HeightLimit], "height %v not in table", res.HeightLimit)
			assert.GreaterOrEqual(t, res.FloorCount, 1)
		}
	}
}

func TestLookupFSI_HalfOpenBands(t *testing.T) {
	ev := newTestEvaluator(t)

	fsi, err := ev.LookupFSI(models.Residential, 6)
	require.NoError(t, err)
	assert.Equal(t, 1.75, fsi)

	fsi, err = ev.LookupFSI(models.Residential, 8.999)
	require.NoError(t, err)
	assert.Equal(t, 1.75, fsi)

	// upper bound belongs to the next band
	fsi, err = ev.LookupFSI(models.Residential, 9)
	require.NoError(t, err)
	assert.Equal(t, 2.5, fsi)
}

func TestLookupHeightLimit(t *testing.T) {
	ev := newTestEvaluator(t)

	tests := []struct {
		roadWidth float64
		want      float64
	}{
		{6, 15},
		{8.9, 15},
		{9, 20},
		{12, 24},
		{18, 27},
		{24, 30},
		{80, 30},
	}
	for _, tt := range tests {
		got, err := ev.LookupHeightLimit(tt.roadWidth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "road width %v", tt.roadWidth)
	}

	_, err := ev.LookupHeightLimit(5.5)
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestLookupSetback_BandEdges(t *testing.T) {
	ev := newTestEvaluator(t)

	sb, err := ev.LookupSetback(models.Residential, 15)
	require.NoError(t, err)
	assert.Equal(t, models.Setbacks{Front: 5, Side: 3, Rear: 3}, sb)

	sb, err = ev.LookupSetback(models.Residential, 14.99)
	require.NoError(t, err)
	assert.Equal(t, models.Setbacks{Front: 3, Side: 1.5, Rear: 1.5}, sb)

	_, err = ev.LookupSetback(models.Residential, 100)
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestComputeFloorCount(t *testing.T) {
	ev := newTestEvaluator(t)

	assert.Equal(t, 1, ev.ComputeFloorCount(2))
	assert.Equal(t, 1, ev.ComputeFloorCount(0))
	assert.Equal(t, 4, ev.ComputeFloorCount(15))
	assert.Equal(t, 6, ev.ComputeFloorCount(20))
	assert.Equal(t, 10, ev.ComputeFloorCount(33))
}

func TestComputeParking_Monotonic(t *testing.T) {
	ev := newTestEvaluator(t)

	prev := 0
	for area := 0.0; area <= 20000; area += 250 {
		cars, err := ev.ComputeParking(models.Commercial, area)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cars, prev, "area %v", area)
		prev = cars
	}

	cars, err := ev.ComputeParking(models.Commercial, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, cars)

	// exactly one unit in sq.m needs exactly one car
	cars, err = ev.ComputeParking(models.Commercial, 50/models.DefaultSqMPerSqFt)
	require.NoError(t, err)
	assert.Equal(t, 1, cars)

	_, err = ev.ComputeParking(models.Commercial, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeAreaBreakdown(t *testing.T) {
	ev := newTestEvaluator(t)

	res := ev.ComputeAreaBreakdown(models.Residential, 2500, 6)
	assert.Equal(t, 2500.0, res.TotalBuiltUp)
	assert.Nil(t, res.Split)

	res = ev.ComputeAreaBreakdown(models.Industrial, 1000, 0)
	require.NotNil(t, res.Split)
	assert.Equal(t, 1000.0, res.Split.FloorPlate)
	assert.InDelta(t, 140.0, res.Split.CoreArea, 1e-9)
	assert.InDelta(t, 860.0, res.Split.SellableArea, 1e-9)
}

func TestClassifyFireRisk(t *testing.T) {
	assert.Nil(t, ClassifyFireRisk(models.Residential, 45))

	tests := []struct {
		height   float64
		category string
		note     string
	}{
		{12, FireLowRise, "Basic Fire Safety Compliance"},
		{15, FireLowRise, "Basic Fire Safety Compliance"},
		{15.01, FireMidRise, "Fire NOC Required"},
		{24, FireMidRise, "Fire NOC Required"},
		{27, FireHighRise, "High-Rise Fire NOC Required"},
	}
	for _, tt := range tests {
		got := ClassifyFireRisk(models.Commercial, tt.height)
		require.NotNil(t, got)
		assert.Equal(t, tt.category, got.Category, "height %v", tt.height)
		assert.Equal(t, tt.note, got.ComplianceNote)
	}
}

func TestMatchMode_InstitutionalCollision(t *testing.T) {
	in := models.ProjectInput{BuildingType: models.Institutional, PlotArea: 1000, RoadWidth: 9}

	prefix := newTestEvaluator(t)
	res, err := prefix.Evaluate(in)
	require.NoError(t, err)
	// first-letter matching hands Institutional the Industrial rows
	assert.Equal(t, 1.25, res.FSI)
	assert.Equal(t, 1, res.ParkingRequired)

	rs := testRuleSet()
	rs.MatchMode = models.MatchExact
	exact, err := NewEvaluator(rs)
	require.NoError(t, err)
	res, err = exact.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.FSI)
	assert.Equal(t, 2, res.ParkingRequired)
}

func TestCategoryMatches(t *testing.T) {
	assert.True(t, categoryMatches(models.MatchPrefix, "residential", models.Residential))
	assert.True(t, categoryMatches(models.MatchPrefix, "R", models.Residential))
	assert.True(t, categoryMatches(models.MatchPrefix, "Industrial", models.Institutional))
	assert.False(t, categoryMatches(models.MatchPrefix, "", models.Residential))

	assert.True(t, categoryMatches(models.MatchExact, "mixed-use", models.MixedUse))
	assert.False(t, categoryMatches(models.MatchExact, "Industrial", models.Institutional))
}

func TestNewEvaluator_CopiesRuleSet(t *testing.T) {
	rs := testRuleSet()
	ev, err := NewEvaluator(rs)
	require.NoError(t, err)

	rs.FSI[1].FSI = 99
	rs.Height[0].HeightLimit = 99

	fsi, err := ev.LookupFSI(models.Residential, 9)
	require.NoError(t, err)
	assert.Equal(t, 2.5, fsi)
	h, err := ev.LookupHeightLimit(30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, h)
}

func TestValidateRuleSet(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rs *models.RuleSet)
	}{
		{"empty revision", func(rs *models.RuleSet) { rs.Revision = " " }},
		{"unknown match mode", func(rs *models.RuleSet) { rs.MatchMode = "fuzzy" }},
		{"core ratio of one", func(rs *models.RuleSet) { rs.CoreRatio = 1 }},
		{"no height rows", func(rs *models.RuleSet) { rs.Height = nil }},
		{"inverted fsi band", func(rs *models.RuleSet) { rs.FSI[0].MaxRoadWidth = rs.FSI[0].MinRoadWidth }},
		{"zero fsi", func(rs *models.RuleSet) { rs.FSI[0].FSI = 0 }},
		{"negative setback", func(rs *models.RuleSet) { rs.Setback[0].Side = -1 }},
		{"zero parking unit", func(rs *models.RuleSet) { rs.Parking[0].UnitAreaSqM = 0 }},
		{"blank category", func(rs *models.RuleSet) { rs.Parking[0].Category = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := testRuleSet().WithDefaults()
			tt.mutate(&rs)
			assert.ErrorIs(t, ValidateRuleSet(rs), ErrInvalidRuleSet)
		})
	}

	assert.NoError(t, ValidateRuleSet(testRuleSet().WithDefaults()))
}
