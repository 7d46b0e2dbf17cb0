package repository

import (
	"context"

	"skill_matrix_backend/internal/model"

	"gorm.io/gorm"
)

type ScoreLogRepository struct {
	DB *gorm.DB
}

func NewScoreLogRepository(db *gorm.DB) *ScoreLogRepository {
	return &ScoreLogRepository{DB: db}
}

func (r *ScoreLogRepository) WithTx(tx *gorm.DB) *ScoreLogRepository {
	return &ScoreLogRepository{DB: tx}
}

func (r *ScoreLogRepository) Create(ctx context.Context, l *model.ScoreLog) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

type ScoreLogFilter struct {
	EmployeeID string
	Skill      string
}

func (r *ScoreLogRepository) List(ctx context.Context, f ScoreLogFilter) ([]model.ScoreLog, error) {
	q := r.DB.WithContext(ctx).Model(&model.ScoreLog{})
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Skill != "" {
		q = q.Where("skill = ?", f.Skill)
	}
	var logs []model.ScoreLog
	err := q.Order("id asc").Find(&logs).Error
	return logs, err
}
