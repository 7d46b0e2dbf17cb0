package repository

import (
	"context"
	"errors"
	"fmt"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CompetencyMapRepository struct {
	DB *gorm.DB
}

func NewCompetencyMapRepository(db *gorm.DB) *CompetencyMapRepository {
	return &CompetencyMapRepository{DB: db}
}

func (r *CompetencyMapRepository) List(ctx context.Context) ([]model.CompetencyMap, error) {
	var maps []model.CompetencyMap
	err := r.DB.WithContext(ctx).Order("id asc").Find(&maps).Error
	return maps, err
}

func (r *CompetencyMapRepository) FindByRole(ctx context.Context, role string) (*model.CompetencyMap, error) {
	var m model.CompetencyMap
	err := r.DB.WithContext(ctx).Where("role = ?", role).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", util.ErrRoleNotFound, role)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CompetencyMapRepository) FindByRoles(ctx context.Context, roles []string) ([]model.CompetencyMap, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	var maps []model.CompetencyMap
	err := r.DB.WithContext(ctx).Where("role IN ?", roles).Order("id asc").Find(&maps).Error
	return maps, err
}

// Roles 返回去重后的岗位名
func (r *CompetencyMapRepository) Roles(ctx context.Context) ([]string, error) {
	var roles []string
	err := r.DB.WithContext(ctx).Model(&model.CompetencyMap{}).
		Where("role <> ''").
		Distinct("role").
		Order("role asc").
		Pluck("role", &roles).Error
	return roles, err
}

func (r *CompetencyMapRepository) Create(ctx context.Context, m *model.CompetencyMap) error {
	err := r.DB.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", util.ErrRoleExists, m.Role)
	}
	return err
}

func (r *CompetencyMapRepository) UpdateSkills(ctx context.Context, m *model.CompetencyMap, skills map[string]int) error {
	m.Skills = datatypes.NewJSONType(skills)
	return r.DB.WithContext(ctx).Model(m).Update("skills", m.Skills).Error
}

func (r *CompetencyMapRepository) Delete(ctx context.Context, m *model.CompetencyMap) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(m).Error
}
