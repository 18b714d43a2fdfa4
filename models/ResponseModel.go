package models

import "time"

// Swagger / API docs: request and response models referenced by handler annotations

// ErrorResponse is used in @Failure for error responses
type ErrorResponse struct {
	Error   string `json:"error" example:"value outside supported range"`
	Details string `json:"details,omitempty" example:"road width 0.50 m is below every height threshold"`
}

// SuccessResponse is used in @Success for generic success
type SuccessResponse struct {
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginRequest is used in @Param for admin login body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password"`
}

// LoginResponse is used in @Success for admin login
type LoginResponse struct {
	Message     string `json:"message" example:"Login successful"`
	AccessToken string `json:"access_token" example:"eyJhbGc..."`
	ExpiresIn   int    `json:"expires_in" example:"900"`
}

// FeasibilityRequest is the evaluation form body
type FeasibilityRequest struct {
	ProjectName  string  `json:"project_name" form:"project_name" example:"Plot 42"`
	BuildingType string  `json:"building_type" form:"building_type" binding:"required" example:"Residential"`
	PlotArea     float64 `json:"plot_area" form:"plot_area" example:"1000"`
	RoadWidth    float64 `json:"road_width" form:"road_width" example:"9"`
}

// FeasibilityResponse wraps a display-rounded result
type FeasibilityResponse struct {
	ReportID    string            `json:"report_id" example:"4f0c7c2e-3b7a-4a57-9a55-0c2f9e2f8b1a"`
	GeneratedAt time.Time         `json:"generated_at"`
	Result      FeasibilityResult `json:"result"`
	Note        string            `json:"note"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status          string   `json:"status" example:"ok"`
	DefaultRevision string   `json:"default_revision" example:"default"`
	Revisions       []string `json:"revisions"`
	History         bool     `json:"history"`
}

// RuleValidationResponse summarises an uploaded rule workbook
type RuleValidationResponse struct {
	Valid        bool   `json:"valid"`
	Revision     string `json:"revision"`
	MatchMode    string `json:"match_mode"`
	FSIRules     int    `json:"fsi_rules"`
	HeightRules  int    `json:"height_rules"`
	SetbackRules int    `json:"setback_rules"`
	ParkingRules int    `json:"parking_rules"`
	Error        string `json:"error,omitempty"`
}
