package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/util"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) List(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Order("id asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindByCode(ctx context.Context, code string) (*model.Skill, error) {
	var s model.Skill
	err := r.DB.WithContext(ctx).
		Where("LOWER(code) = ?", model.NormalizeSkillCode(code)).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepository) FindByName(ctx context.Context, name string) (*model.Skill, error) {
	var s model.Skill
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id asc").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateAllocating 事务内按现有代码分配新代码后写入
func (r *SkillRepository) CreateAllocating(ctx context.Context, s *model.Skill, next func(existing []string) string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var codes []string
		if err := tx.Model(&model.Skill{}).Unscoped().Pluck("code", &codes).Error; err != nil {
			return err
		}
		s.Code = next(codes)
		return tx.Create(s).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", util.ErrSkillCodeTaken, s.Code)
	}
	return err
}

// Create 使用给定代码写入（历史数据导入）
func (r *SkillRepository) Create(ctx context.Context, s *model.Skill) error {
	err := r.DB.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", util.ErrSkillCodeTaken, s.Code)
	}
	return err
}
