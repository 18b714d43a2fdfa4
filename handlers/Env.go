package handlers

import (
	"context"
	"time"

	"feasibility/models"
	"feasibility/services"
)

// HistoryStore persists evaluations. It is nil when no database is configured.
type HistoryStore interface {
	Save(ctx context.Context, rep services.Report) error
	Recent(ctx context.Context, limit int) ([]models.EvaluationRecordGorm, error)
	Find(ctx context.Context, reportID string) (*models.EvaluationRecordGorm, error)
}

// AuthConfig guards the admin endpoints.
type AuthConfig struct {
	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string
}

// Env carries the dependencies shared by every handler.
type Env struct {
	Registry *services.Registry
	History  HistoryStore
	Metrics  *services.Metrics
	Auth     AuthConfig
	Now      func() time.Time
	NewID    func() string
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
