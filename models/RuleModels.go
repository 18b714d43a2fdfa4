package models

// MatchMode decides how a rule row's category selects building types.
type MatchMode string

const (
	// MatchPrefix applies a row to every type sharing the first letter of its category.
	MatchPrefix MatchMode = "prefix"
	// MatchExact applies a row only to the type with the same name.
	MatchExact MatchMode = "exact"
)

// FSIRule applies to road widths in [MinRoadWidth, MaxRoadWidth).
type FSIRule struct {
	Category     string  `json:"category" yaml:"category"`
	MinRoadWidth float64 `json:"min_road_width" yaml:"min_road_width"`
	MaxRoadWidth float64 `json:"max_road_width" yaml:"max_road_width"`
	FSI          float64 `json:"fsi" yaml:"fsi"`
}

// HeightRule grants HeightLimit to any road at least MinRoadWidth wide.
type HeightRule struct {
	MinRoadWidth float64 `json:"min_road_width" yaml:"min_road_width"`
	HeightLimit  float64 `json:"height_limit" yaml:"height_limit"`
}

// SetbackRule applies to building heights in [MinHeight, MaxHeight).
type SetbackRule struct {
	Category  string  `json:"category" yaml:"category"`
	MinHeight float64 `json:"min_height" yaml:"min_height"`
	MaxHeight float64 `json:"max_height" yaml:"max_height"`
	Front     float64 `json:"front" yaml:"front"`
	Side      float64 `json:"side" yaml:"side"`
	Rear      float64 `json:"rear" yaml:"rear"`
}

// ParkingRule requires CarsPerUnit cars for every UnitAreaSqM of built-up area.
type ParkingRule struct {
	Category    string  `json:"category" yaml:"category"`
	UnitAreaSqM float64 `json:"unit_area_sqm" yaml:"unit_area_sqm"`
	CarsPerUnit float64 `json:"cars_per_unit" yaml:"cars_per_unit"`
}

// RuleSet is one revision of the zoning tables together with the constants that
// revision assumes.
type RuleSet struct {
	Revision           string        `json:"revision" yaml:"revision"`
	MatchMode          MatchMode     `json:"match_mode" yaml:"match_mode"`
	FloorToFloorHeight float64       `json:"floor_to_floor_height" yaml:"floor_to_floor_height"`
	CoreRatio          float64       `json:"core_ratio" yaml:"core_ratio"`
	SqMPerSqFt         float64       `json:"sqm_per_sqft" yaml:"sqm_per_sqft"`
	FSI                []FSIRule     `json:"fsi_rules" yaml:"fsi_rules"`
	Height             []HeightRule  `json:"height_rules" yaml:"height_rules"`
	Setback            []SetbackRule `json:"setback_rules" yaml:"setback_rules"`
	Parking            []ParkingRule `json:"parking_rules" yaml:"parking_rules"`
}

// Revision defaults applied when a source leaves a constant unset.
const (
	DefaultFloorToFloorHeight = 3.3
	DefaultCoreRatio          = 0.14
	DefaultSqMPerSqFt         = 0.092903
)

// WithDefaults fills unset constants and returns the copy.
func (rs RuleSet) WithDefaults() RuleSet {
	if rs.MatchMode == "" {
		rs.MatchMode = MatchPrefix
	}
	if rs.FloorToFloorHeight == 0 {
		rs.FloorToFloorHeight = DefaultFloorToFloorHeight
	}
	if rs.CoreRatio == 0 {
		rs.CoreRatio = DefaultCoreRatio
	}
	if rs.SqMPerSqFt == 0 {
		rs.SqMPerSqFt = DefaultSqMPerSqFt
	}
	return rs
}
