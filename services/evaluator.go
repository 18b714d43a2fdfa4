package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"feasibility/models"
)

// Fire classification bands, in metres of height limit.
const (
	LowRiseMaxHeight = 15.0
	MidRiseMaxHeight = 24.0
)

const (
	FireLowRise  = "Low Rise"
	FireMidRise  = "Mid Rise"
	FireHighRise = "High Rise"
)

// float slack for divisions that should land on whole numbers
const epsilon = 1e-9

// Evaluator answers zoning lookups against one rule set. Rows are resolved to
// building types once at construction, so an Evaluator is read-only and can be
// shared between goroutines.
type Evaluator struct {
	revision           string
	floorToFloorHeight float64
	coreRatio          float64
	sqmPerSqft         float64

	fsi     map[models.BuildingType][]models.FSIRule
	setback map[models.BuildingType][]models.SetbackRule
	parking map[models.BuildingType][]models.ParkingRule
	height  []models.HeightRule // ascending by MinRoadWidth
}

// NewEvaluator validates rs and builds the building-type dispatch tables from it.
// The caller's slices are copied; later changes to rs have no effect.
func NewEvaluator(rs models.RuleSet) (*Evaluator, error) {
	rs = rs.WithDefaults()
	if err := ValidateRuleSet(rs); err != nil {
		return nil, err
	}

	e := &Evaluator{
		revision:           rs.Revision,
		floorToFloorHeight: rs.FloorToFloorHeight,
		coreRatio:          rs.CoreRatio,
		sqmPerSqft:         rs.SqMPerSqFt,
		fsi:                make(map[models.BuildingType][]models.FSIRule),
		setback:            make(map[models.BuildingType][]models.SetbackRule),
		parking:            make(map[models.BuildingType][]models.ParkingRule),
	}

	for _, bt := range models.BuildingTypes {
		for _, r := range rs.FSI {
			if categoryMatches(rs.MatchMode, r.Category, bt) {
				e.fsi[bt] = append(e.fsi[bt], r)
			}
		}
		for _, r := range rs.Setback {
			if categoryMatches(rs.MatchMode, r.Category, bt) {
				e.setback[bt] = append(e.setback[bt], r)
			}
		}
		for _, r := range rs.Parking {
			if categoryMatches(rs.MatchMode, r.Category, bt) {
				e.parking[bt] = append(e.parking[bt], r)
			}
		}
	}

	e.height = append([]models.HeightRule(nil), rs.Height...)
	sort.SliceStable(e.height, func(i, j int) bool {
		return e.height[i].MinRoadWidth < e.height[j].MinRoadWidth
	})

	return e, nil
}

// categoryMatches reports whether a rule row labelled category applies to bt.
// In prefix mode only the first letter counts, so "Industrial" rows also serve
// Institutional plots.
func categoryMatches(mode models.MatchMode, category string, bt models.BuildingType) bool {
	category = strings.TrimSpace(category)
	if mode == models.MatchExact {
		parsed, err := models.ParseBuildingType(category)
		return err == nil && parsed == bt
	}
	c, _ := utf8.DecodeRuneInString(category)
	t, _ := utf8.DecodeRuneInString(string(bt))
	return c != utf8.RuneError && unicode.ToLower(c) == unicode.ToLower(t)
}

// ValidateRuleSet checks the revision constants and every row for consistency.
func ValidateRuleSet(rs models.RuleSet) error {
	if strings.TrimSpace(rs.Revision) == "" {
		return fmt.Errorf("%w: revision name is empty", ErrInvalidRuleSet)
	}
	if rs.MatchMode != models.MatchPrefix && rs.MatchMode != models.MatchExact {
		return fmt.Errorf("%w: unknown match mode %q", ErrInvalidRuleSet, rs.MatchMode)
	}
	if !(rs.FloorToFloorHeight > 0) {
		return fmt.Errorf("%w: floor-to-floor height must be positive", ErrInvalidRuleSet)
	}
	if rs.CoreRatio < 0 || rs.CoreRatio >= 1 {
		return fmt.Errorf("%w: core ratio %.3f outside [0,1)", ErrInvalidRuleSet, rs.CoreRatio)
	}
	if !(rs.SqMPerSqFt > 0) {
		return fmt.Errorf("%w: sq.m per sq.ft must be positive", ErrInvalidRuleSet)
	}
	if len(rs.FSI) == 0 || len(rs.Height) == 0 || len(rs.Setback) == 0 || len(rs.Parking) == 0 {
		return fmt.Errorf("%w: revision %s is missing a rule table", ErrInvalidRuleSet, rs.Revision)
	}

	for i, r := range rs.FSI {
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("%w: fsi row %d has no category", ErrInvalidRuleSet, i+1)
		}
		if r.MinRoadWidth < 0 || r.MinRoadWidth >= r.MaxRoadWidth {
			return fmt.Errorf("%w: fsi row %d has empty road width band [%g, %g)", ErrInvalidRuleSet, i+1, r.MinRoadWidth, r.MaxRoadWidth)
		}
		if !(r.FSI > 0) {
			return fmt.Errorf("%w: fsi row %d has non-positive fsi", ErrInvalidRuleSet, i+1)
		}
	}
	for i, r := range rs.Height {
		if r.MinRoadWidth < 0 || !(r.HeightLimit > 0) {
			return fmt.Errorf("%w: height row %d needs a non-negative threshold and positive limit", ErrInvalidRuleSet, i+1)
		}
	}
	for i, r := range rs.Setback {
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("%w: setback row %d has no category", ErrInvalidRuleSet, i+1)
		}
		if r.MinHeight < 0 || r.MinHeight >= r.MaxHeight {
			return fmt.Errorf("%w: setback row %d has empty height band [%g, %g)", ErrInvalidRuleSet, i+1, r.MinHeight, r.MaxHeight)
		}
		if r.Front < 0 || r.Side < 0 || r.Rear < 0 {
			return fmt.Errorf("%w: setback row %d has a negative distance", ErrInvalidRuleSet, i+1)
		}
	}
	for i, r := range rs.Parking {
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("%w: parking row %d has no category", ErrInvalidRuleSet, i+1)
		}
		if !(r.UnitAreaSqM > 0) || r.CarsPerUnit < 0 {
			return fmt.Errorf("%w: parking row %d needs a positive unit area", ErrInvalidRuleSet, i+1)
		}
	}
	return nil
}

func (e *Evaluator) Revision() string { return e.revision }

func (e *Evaluator) FloorToFloorHeight() float64 { return e.floorToFloorHeight }

// ValidateInput rejects unknown building types and non-positive measurements.
func ValidateInput(in models.ProjectInput) error {
	if !in.BuildingType.Valid() {
		return fmt.Errorf("%w: unknown building type %q", ErrInvalidInput, in.BuildingType)
	}
	if !positiveFinite(in.PlotArea) {
		return fmt.Errorf("%w: plot area must be a positive number", ErrInvalidInput)
	}
	if !positiveFinite(in.RoadWidth) {
		return fmt.Errorf("%w: road width must be a positive number", ErrInvalidInput)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// LookupFSI returns the FSI of the first row for bt whose road width band holds roadWidth.
func (e *Evaluator) LookupFSI(bt models.BuildingType, roadWidth float64) (float64, error) {
	for _, r := range e.fsi[bt] {
		if roadWidth >= r.MinRoadWidth && roadWidth < r.MaxRoadWidth {
			return r.FSI, nil
		}
	}
	return 0, fmt.Errorf("%w: no FSI rule for %s on a %.2f m road", ErrNoMatchingRule, bt, roadWidth)
}

// LookupHeightLimit returns the limit of the widest threshold not exceeding roadWidth.
func (e *Evaluator) LookupHeightLimit(roadWidth float64) (float64, error) {
	found := false
	var limit float64
	for _, r := range e.height {
		if r.MinRoadWidth > roadWidth {
			break
		}
		limit = r.HeightLimit
		found = true
	}
	if !found {
		return 0, fmt.Errorf("%w: road width %.2f m is below every height threshold", ErrNoMatchingRule, roadWidth)
	}
	return limit, nil
}

// LookupSetback returns the setbacks of the first row for bt whose height band holds height.
func (e *Evaluator) LookupSetback(bt models.BuildingType, height float64) (models.Setbacks, error) {
	for _, r := range e.setback[bt] {
		if height >= r.MinHeight && height < r.MaxHeight {
			return models.Setbacks{Front: r.Front, Side: r.Side, Rear: r.Rear}, nil
		}
	}
	return models.Setbacks{}, fmt.Errorf("%w: no setback rule for %s at %.2f m", ErrNoMatchingRule, bt, height)
}

// ComputeParking converts the built-up area to sq.m and rounds the car count up.
func (e *Evaluator) ComputeParking(bt models.BuildingType, totalBuiltUpSqFt float64) (int, error) {
	rows := e.parking[bt]
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: no parking rule for %s", ErrNoMatchingRule, bt)
	}
	if totalBuiltUpSqFt < 0 || math.IsNaN(totalBuiltUpSqFt) {
		return 0, fmt.Errorf("%w: built-up area must not be negative", ErrInvalidInput)
	}
	r := rows[0]
	builtUpSqM := totalBuiltUpSqFt * e.sqmPerSqft
	cars := math.Ceil(builtUpSqM/r.UnitAreaSqM*r.CarsPerUnit - epsilon)
	if cars < 0 {
		cars = 0
	}
	return int(cars), nil
}

// ComputeFloorCount divides the height limit by the floor-to-floor height,
// rounding down, and never reports fewer than one floor.
func (e *Evaluator) ComputeFloorCount(heightLimit float64) int {
	floors := int(math.Floor(heightLimit/e.floorToFloorHeight + epsilon))
	if floors < 1 {
		return 1
	}
	return floors
}

// ComputeAreaBreakdown splits the built-up area into floor plate, core and
// sellable area. Residential buildings report built-up area only.
func (e *Evaluator) ComputeAreaBreakdown(bt models.BuildingType, totalBuiltUp float64, floorCount int) models.AreaBreakdown {
	area := models.AreaBreakdown{TotalBuiltUp: totalBuiltUp}
	if bt.IsResidential() {
		return area
	}
	if floorCount < 1 {
		floorCount = 1
	}
	core := totalBuiltUp * e.coreRatio
	area.Split = &models.AreaSplit{
		FloorPlate:   totalBuiltUp / float64(floorCount),
		CoreArea:     core,
		SellableArea: totalBuiltUp - core,
	}
	return area
}

// ClassifyFireRisk bands the height limit into low, mid and high rise.
// Residential buildings are exempt and get nil.
func ClassifyFireRisk(bt models.BuildingType, heightLimit float64) *models.FireClassification {
	if bt.IsResidential() {
		return nil
	}
	switch {
	case heightLimit <= LowRiseMaxHeight:
		return &models.FireClassification{Category: FireLowRise, ComplianceNote: "Basic Fire Safety Compliance"}
	case heightLimit <= MidRiseMaxHeight:
		return &models.FireClassification{Category: FireMidRise, ComplianceNote: "Fire NOC Required"}
	default:
		return &models.FireClassification{Category: FireHighRise, ComplianceNote: "High-Rise Fire NOC Required"}
	}
}

// Evaluate runs every lookup for one submitted form.
func (e *Evaluator) Evaluate(in models.ProjectInput) (models.FeasibilityResult, error) {
	if err := ValidateInput(in); err != nil {
		return models.FeasibilityResult{}, err
	}
	in.ProjectName = strings.TrimSpace(in.ProjectName)

	fsi, err := e.LookupFSI(in.BuildingType, in.RoadWidth)
	if err != nil {
		return models.FeasibilityResult{}, err
	}
	height, err := e.LookupHeightLimit(in.RoadWidth)
	if err != nil {
		return models.FeasibilityResult{}, err
	}
	floors := e.ComputeFloorCount(height)
	totalBuiltUp := in.PlotArea * fsi

	setbacks, err := e.LookupSetback(in.BuildingType, height)
	if err != nil {
		return models.FeasibilityResult{}, err
	}
	parking, err := e.ComputeParking(in.BuildingType, totalBuiltUp)
	if err != nil {
		return models.FeasibilityResult{}, err
	}

	return models.FeasibilityResult{
		Input:           in,
		Revision:        e.revision,
		FSI:             fsi,
		HeightLimit:     height,
		FloorCount:      floors,
		Setbacks:        setbacks,
		Area:            e.ComputeAreaBreakdown(in.BuildingType, totalBuiltUp, floors),
		ParkingRequired: parking,
		Fire:            ClassifyFireRisk(in.BuildingType, height),
	}, nil
}
