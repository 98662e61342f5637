package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kulugbekwork/lema/internal/logger"
)

// AICallData captures one LLM request for the audit log.
type AICallData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// AIUsage is an aggregate over audit rows grouped by purpose or model.
type AIUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// AICallRepo appends and queries LLM request audit rows.
type AICallRepo interface {
	Append(ctx context.Context, data AICallData) error
	Recent(ctx context.Context, limit int) ([]AICall, error)
	UsageByPurpose(ctx context.Context) ([]AIUsage, error)
	UsageByModel(ctx context.Context) ([]AIUsage, error)
}

type aiCallRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func (r *aiCallRepo) Append(ctx context.Context, data AICallData) error {
	row := AICall{
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.log.Warn("append ai call log", "error", err)
		return err
	}
	return nil
}

func (r *aiCallRepo) Recent(ctx context.Context, limit int) ([]AICall, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []AICall
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *aiCallRepo) UsageByPurpose(ctx context.Context) ([]AIUsage, error) {
	var rows []AIUsage
	err := r.db.WithContext(ctx).
		Model(&AICall{}).
		Select("purpose, COUNT(*) AS calls, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens, CAST(AVG(latency_ms) AS INTEGER) AS avg_latency_ms").
		Group("purpose").
		Order("purpose").
		Scan(&rows).Error
	return rows, err
}

func (r *aiCallRepo) UsageByModel(ctx context.Context) ([]AIUsage, error) {
	var rows []AIUsage
	err := r.db.WithContext(ctx).
		Model(&AICall{}).
		Select("model, COUNT(*) AS calls, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens, CAST(AVG(latency_ms) AS INTEGER) AS avg_latency_ms").
		Group("model").
		Order("model").
		Scan(&rows).Error
	return rows, err
}
