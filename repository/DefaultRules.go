package repository

import "feasibility/models"

// DefaultRevision names the rule set compiled into the binary.
const DefaultRevision = "default"

// road width bands shared by every category, in metres
var roadBands = [][2]float64{{6, 9}, {9, 12}, {12, 18}, {18, 24}, {24, 100}}

// height bands used by the setback table, in metres
var heightBands = [][2]float64{{0, 15}, {15, 24}, {24, 100}}

// DefaultRuleSet returns a fresh copy of the built-in zoning tables.
func DefaultRuleSet() models.RuleSet {
	fsiByCategory := []struct {
		category string
		values   [5]float64
	}{
		{"Residential", [5]float64{1.75, 2.5, 2.75, 3.0, 3.5}},
		{"Commercial", [5]float64{2.0, 2.5, 3.0, 3.25, 3.5}},
		{"Mixed Use", [5]float64{2.0, 2.5, 3.0, 3.25, 3.5}},
		{"Industrial", [5]float64{1.0, 1.25, 1.5, 1.75, 2.0}},
		{"Institutional", [5]float64{1.5, 2.0, 2.5, 2.75, 3.0}},
	}
	var fsi []models.FSIRule
	for _, c := range fsiByCategory {
		for i, band := range roadBands {
			fsi = append(fsi, models.FSIRule{
				Category:     c.category,
				MinRoadWidth: band[0],
				MaxRoadWidth: band[1],
				FSI:          c.values[i],
			})
		}
	}

	setbackByCategory := []struct {
		category string
		values   [3][3]float64 // front, side, rear per height band
	}{
		{"Residential", [3][3]float64{{3, 1.5, 1.5}, {5, 3, 3}, {7, 5, 5}}},
		{"Commercial", [3][3]float64{{4.5, 3, 3}, {6, 4.5, 4.5}, {9, 6, 6}}},
		{"Mixed Use", [3][3]float64{{4.5, 3, 3}, {6, 4, 4}, {9, 6, 6}}},
		{"Industrial", [3][3]float64{{6, 4.5, 4.5}, {7.5, 6, 6}, {9, 7.5, 7.5}}},
		{"Institutional", [3][3]float64{{6, 4.5, 4.5}, {7.5, 6, 6}, {9, 7.5, 7.5}}},
	}
	var setbacks []models.SetbackRule
	for _, c := range setbackByCategory {
		for i, band := range heightBands {
			setbacks = append(setbacks, models.SetbackRule{
				Category:  c.category,
				MinHeight: band[0],
				MaxHeight: band[1],
				Front:     c.values[i][0],
				Side:      c.values[i][1],
				Rear:      c.values[i][2],
			})
		}
	}

	return models.RuleSet{
		Revision:           DefaultRevision,
		MatchMode:          models.MatchPrefix,
		FloorToFloorHeight: models.DefaultFloorToFloorHeight,
		CoreRatio:          models.DefaultCoreRatio,
		SqMPerSqFt:         models.DefaultSqMPerSqFt,
		FSI:                fsi,
		Height: []models.HeightRule{
			{MinRoadWidth: 6, HeightLimit: 15},
			{MinRoadWidth: 9, HeightLimit: 20},
			{MinRoadWidth: 12, HeightLimit: 24},
			{MinRoadWidth: 18, HeightLimit: 27},
			{MinRoadWidth: 24, HeightLimit: 30},
			{MinRoadWidth: 30, HeightLimit: 45},
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
