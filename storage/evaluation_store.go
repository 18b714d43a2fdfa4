package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"feasibility/models"
	"feasibility/services"
	"feasibility/utils"

	"gorm.io/gorm"
)

// EvaluationStore keeps a history of rendered evaluations.
type EvaluationStore struct {
	db *gorm.DB
}

func NewEvaluationStore(db *gorm.DB) *EvaluationStore {
	return &EvaluationStore{db: db}
}

// Save records one report. The full result is kept as JSON next to the
// columns used for listing.
func (s *EvaluationStore) Save(ctx context.Context, rep services.Report) error {
	ctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	payload, err := json.Marshal(rep.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	record := NewEvaluationRecord(rep, string(payload))
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save evaluation %s: %w", rep.ID, err)
	}
	return nil
}

// NewEvaluationRecord flattens a report into its history row.
func NewEvaluationRecord(rep services.Report, resultJSON string) models.EvaluationRecordGorm {
	res := rep.Result
	record := models.EvaluationRecordGorm{
		ReportID:        rep.ID,
		ProjectName:     res.Input.ProjectName,
		BuildingType:    string(res.Input.BuildingType),
		PlotArea:        res.Input.PlotArea,
		RoadWidth:       res.Input.RoadWidth,
		Revision:        res.Revision,
		FSI:             res.FSI,
		HeightLimit:     res.HeightLimit,
		FloorCount:      res.FloorCount,
		TotalBuiltUp:    res.Area.TotalBuiltUp,
		ParkingRequired: res.ParkingRequired,
		ResultJSON:      resultJSON,
		CreatedAt:       rep.GeneratedAt,
	}
	if res.Fire != nil {
		category := res.Fire.Category
		record.FireCategory = &category
	}
	return record
}

// Recent returns the newest records first.
func (s *EvaluationStore) Recent(ctx context.Context, limit int) ([]models.EvaluationRecordGorm, error) {
	ctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	var records []models.EvaluationRecordGorm
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evaluation history: %w", err)
	}
	return records, nil
}

// PurgeOlderThan deletes records created before cutoff.
func (s *EvaluationStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := utils.GetSlowQueryContext(ctx)
	defer cancel()

	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.EvaluationRecordGorm{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge evaluation history: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Find returns the record for reportID or ErrNotFound.
func (s *EvaluationStore) Find(ctx context.Context, reportID string) (*models.EvaluationRecordGorm, error) {
	ctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	var record models.EvaluationRecordGorm
	err := s.db.WithContext(ctx).Where("report_id = ?", reportID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evaluation %s: %w", reportID, err)
	}
	return &record, nil
}
