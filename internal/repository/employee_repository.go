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

type EmployeeRepository struct {
	DB *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.DB.WithContext(ctx).
		Where("employee_id <> ''").
		Order("id asc").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*model.Employee, error) {
	var emp model.Employee
	err := r.DB.WithContext(ctx).
		Where("employee_id = ?", model.NormalizeEmployeeID(employeeID)).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var emp model.Employee
	err := r.DB.WithContext(ctx).
		Where("email = ?", model.NormalizeEmail(email)).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// FindByName 姓名不区分大小写精确匹配
func (r *EmployeeRepository) FindByName(ctx context.Context, name string) (*model.Employee, error) {
	var emp model.Employee
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id asc").
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListByRole 返回岗位列表里包含 role 的员工
func (r *EmployeeRepository) ListByRole(ctx context.Context, role string) ([]model.Employee, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Employee
	for _, e := range all {
		for _, rr := range e.Roles {
			if rr == role {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// CreateAllocating 在事务内读取现有编号、分配新编号并写入。
// 唯一索引冲突时区分邮箱冲突和编号冲突，编号冲突由调用方重试。
func (r *EmployeeRepository) CreateAllocating(ctx context.Context, emp *model.Employee, next func(existing []string) string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Employee{}).Unscoped().Pluck("employee_id", &ids).Error; err != nil {
			return err
		}
		emp.EmployeeID = next(ids)
		return tx.Create(emp).Error
	})
	return r.translateDuplicate(ctx, emp, err)
}

// Create 使用调用方给定的编号写入（历史数据导入）
func (r *EmployeeRepository) Create(ctx context.Context, emp *model.Employee) error {
	err := r.DB.WithContext(ctx).Create(emp).Error
	return r.translateDuplicate(ctx, emp, err)
}

func (r *EmployeeRepository) Update(ctx context.Context, emp *model.Employee) error {
	err := r.DB.WithContext(ctx).Save(emp).Error
	return r.translateDuplicate(ctx, emp, err)
}

// Delete 物理删除，释放邮箱和编号
func (r *EmployeeRepository) Delete(ctx context.Context, emp *model.Employee) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(emp).Error
}

func (r *EmployeeRepository) translateDuplicate(ctx context.Context, emp *model.Employee, err error) error {
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	var count int64
	if cerr := r.DB.WithContext(ctx).Model(&model.Employee{}).
		Where("email = ? AND id <> ?", emp.Email, emp.ID).
		Count(&count).Error; cerr != nil {
		return fmt.Errorf("check duplicate employee: %w", cerr)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", util.ErrEmailRegistered, emp.Email)
	}
	return fmt.Errorf("%w: %s", util.ErrEmployeeIDTaken, emp.EmployeeID)
}
