package models

import (
	"fmt"
	"math"
	"strings"
)

// BuildingType is the closed set of occupancy categories a plot can be evaluated for.
type BuildingType string

const (
	Residential   BuildingType = "Residential"
	Commercial    BuildingType = "Commercial"
	MixedUse      BuildingType = "MixedUse"
	Industrial    BuildingType = "Industrial"
	Institutional BuildingType = "Institutional"
)

// BuildingTypes lists every recognised building type in form order.
var BuildingTypes = []BuildingType{Residential, Commercial, MixedUse, Industrial, Institutional}

// ParseBuildingType accepts the enum name case-insensitively and tolerates the
// "Mixed Use" / "Mixed-Use" spellings used by the form.
func ParseBuildingType(s string) (BuildingType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	for _, bt := range BuildingTypes {
		if strings.ToLower(string(bt)) == key {
			return bt, nil
		}
	}
	return "", fmt.Errorf("unknown building type %q", s)
}

func (bt BuildingType) Valid() bool {
	for _, v := range BuildingTypes {
		if v == bt {
			return true
		}
	}
	return false
}

func (bt BuildingType) IsResidential() bool {
	return bt == Residential
}

// ProjectInput is one submitted form. PlotArea is in sq.ft, RoadWidth in metres.
type ProjectInput struct {
	ProjectName  string       `json:"project_name,omitempty" example:"Plot 42"`
	BuildingType BuildingType `json:"building_type" example:"Residential"`
	PlotArea     float64      `json:"plot_area" example:"1000"`
	RoadWidth    float64      `json:"road_width" example:"9"`
}

// Setbacks in metres.
type Setbacks struct {
	Front float64 `json:"front"`
	Side  float64 `json:"side"`
	Rear  float64 `json:"rear"`
}

// AreaSplit is only produced for non-residential buildings.
type AreaSplit struct {
	FloorPlate   float64 `json:"floor_plate"`
	CoreArea     float64 `json:"core_area"`
	SellableArea float64 `json:"sellable_area"`
}

// AreaBreakdown is reported in sq.ft.
type AreaBreakdown struct {
	TotalBuiltUp float64    `json:"total_builtup"`
	Split        *AreaSplit `json:"split,omitempty"`
}

type FireClassification struct {
	Category       string `json:"category" example:"High Rise"`
	ComplianceNote string `json:"compliance_note" example:"High-Rise Fire NOC Required"`
}

// FeasibilityResult is derived from one ProjectInput and one RuleSet and never modified.
type FeasibilityResult struct {
	Input           ProjectInput        `json:"input"`
	Revision        string              `json:"revision"`
	FSI             float64             `json:"fsi"`
	HeightLimit     float64             `json:"height_limit"`
	FloorCount      int                 `json:"floor_count"`
	Setbacks        Setbacks            `json:"setbacks"`
	Area            AreaBreakdown       `json:"area"`
	ParkingRequired int                 `json:"parking_required"`
	Fire            *FireClassification `json:"fire_classification,omitempty"`
}

// FeasibilityNote closes every rendered report.
const FeasibilityNote = "Note: Floor estimation is Zone-based approximation. " +
	"Final approval subject to statutory authority verification."

func round2(x float64) float64 { return math.Round(x*100) / 100.0 }

// Rounded returns a copy with every area rounded to 2 decimal places for display.
func (r FeasibilityResult) Rounded() FeasibilityResult {
	r.Area.TotalBuiltUp = round2(r.Area.TotalBuiltUp)
	if r.Area.Split != nil {
		split := AreaSplit{
			FloorPlate:   round2(r.Area.Split.FloorPlate),
			CoreArea:     round2(r.Area.Split.CoreArea),
			SellableArea: round2(r.Area.Split.SellableArea),
		}
		r.Area.Split = &split
	}
	return r
}
