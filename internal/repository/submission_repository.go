package repository

import (
	"context"
	"errors"

	"skill_matrix_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库
func (r *SubmissionRepository) WithTx(tx *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: tx}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// Latest 返回 (员工, 技能, 等级) 最新一次作答，按自增 ID 判定先后；没有返回 nil, nil
func (r *SubmissionRepository) Latest(ctx context.Context, employeeID, skill string, level int) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND skill = ? AND level = ?", employeeID, skill, level).
		Order("id desc").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CompareAndSetFlag 仅当当前标记仍为 from 时写入 to，返回是否写入
func (r *SubmissionRepository) CompareAndSetFlag(ctx context.Context, id uint, from, to string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ? AND status_flag = ?", id, from).
		Update("status_flag", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type SubmissionFilter struct {
	EmployeeID string
	Skill      string
	Level      int
}

func (r *SubmissionRepository) List(ctx context.Context, f SubmissionFilter) ([]model.Submission, error) {
	q := r.DB.WithContext(ctx).Model(&model.Submission{})
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Skill != "" {
		q = q.Where("skill = ?", f.Skill)
	}
	if f.Level > 0 {
		q = q.Where("level = ?", f.Level)
	}
	var subs []model.Submission
	err := q.Order("id asc").Find(&subs).Error
	return subs, err
}
