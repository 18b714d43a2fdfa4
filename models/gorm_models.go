package models

import "time"

// GORM-compatible models with proper tags

// EvaluationRecordGorm represents the feasibility_evaluations table with GORM tags
type EvaluationRecordGorm struct {
	ID              uint      `gorm:"primaryKey;column:id" json:"id"`
	ReportID        string    `gorm:"column:report_id;type:uuid;uniqueIndex;not null" json:"report_id"`
	ProjectName     string    `gorm:"column:project_name;type:varchar(200)" json:"project_name"`
	BuildingType    string    `gorm:"column:building_type;type:varchar(32);not null;index" json:"building_type"`
	PlotArea        float64   `gorm:"column:plot_area;not null" json:"plot_area"`
	RoadWidth       float64   `gorm:"column:road_width;not null" json:"road_width"`
	Revision        string    `gorm:"column:revision;type:varchar(64);not null" json:"revision"`
	FSI             float64   `gorm:"column:fsi;not null" json:"fsi"`
	HeightLimit     float64   `gorm:"column:height_limit;not null" json:"height_limit"`
	FloorCount      int       `gorm:"column:floor_count;not null" json:"floor_count"`
	TotalBuiltUp    float64   `gorm:"column:total_builtup;type:numeric(14,2);not null" json:"total_builtup"`
	ParkingRequired int       `gorm:"column:parking_required;not null" json:"parking_required"`
	FireCategory    *string   `gorm:"column:fire_category;type:varchar(32)" json:"fire_category,omitempty"`
	ResultJSON      string    `gorm:"column:result_json;type:jsonb;not null" json:"-"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
}

// TableName specifies the table name for EvaluationRecordGorm
func (EvaluationRecordGorm) TableName() string {
	return "feasibility_evaluations"
}
