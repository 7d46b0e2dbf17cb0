package service

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// 编号冲突时的重新分配次数
const employeeIDAllocAttempts = 3

var validate = validator.New()

type EmployeeService struct {
	EmployeeRepo   *repository.EmployeeRepository
	CompetencyRepo *repository.CompetencyMapRepository
	Runtime        *Runtime
}

func NewEmployeeService(employeeRepo *repository.EmployeeRepository, competencyRepo *repository.CompetencyMapRepository, rt *Runtime) *EmployeeService {
	return &EmployeeService{
		EmployeeRepo:   employeeRepo,
		CompetencyRepo: competencyRepo,
		Runtime:        rt,
	}
}

// NextEmployeeID 现有最大数字编号加一，非数字编号忽略
func NextEmployeeID(existing []string) string {
	var max int64
	for _, id := range existing {
		n, err := strconv.ParseInt(model.NormalizeEmployeeID(id), 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

// DeriveSkills 合并各岗位的技能要求，同一技能取最高等级
func DeriveSkills(maps []model.CompetencyMap) []model.SkillLevel {
	merged := make(map[string]int)
	for _, m := range maps {
		for skill, level := range m.RequiredSkills() {
			if cur, ok := merged[skill]; !ok || level > cur {
				merged[skill] = level
			}
		}
	}
	out := make([]model.SkillLevel, 0, len(merged))
	for skill, level := range merged {
		out = append(out, model.SkillLevel{Skill: skill, Level: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Skill < out[j].Skill })
	return out
}

func (s *EmployeeService) deriveSkills(ctx context.Context, roles []string) ([]model.SkillLevel, error) {
	var maps []model.CompetencyMap
	err := s.Runtime.do(ctx, "competency.find_by_roles", func(ctx context.Context) error {
		var err error
		maps, err = s.CompetencyRepo.FindByRoles(ctx, roles)
		return err
	})
	if err != nil {
		return nil, err
	}
	return DeriveSkills(maps), nil
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.Runtime.do(ctx, "employee.list", func(ctx context.Context) error {
		var err error
		employees, err = s.EmployeeRepo.List(ctx)
		return err
	})
	return employees, err
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	var emp *model.Employee
	err := s.Runtime.do(ctx, "employee.get", func(ctx context.Context) error {
		var err error
		emp, err = s.EmployeeRepo.FindByEmployeeID(ctx, id)
		return err
	})
	return emp, err
}

func (s *EmployeeService) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var emp *model.Employee
	err := s.Runtime.do(ctx, "employee.get_by_email", func(ctx context.Context) error {
		var err error
		emp, err = s.EmployeeRepo.FindByEmail(ctx, email)
		return err
	})
	return emp, err
}

func validateEmail(email string) error {
	if email == "" {
		return util.NewValidationError("email", "email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return util.NewValidationError("email", "email is not a valid address")
	}
	return nil
}

// Create 分配编号后写入；未提供技能时按岗位推导
func (s *EmployeeService) Create(ctx context.Context, p model.EmployeePayload) (*model.Employee, error) {
	if p.Name == "" {
		return nil, util.NewValidationError("name", "name is required")
	}
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}

	emp := &model.Employee{
		Name:       p.Name,
		Department: p.Department,
		Email:      p.Email,
		Roles:      p.Roles,
		Skills:     p.Skills,
	}
	if emp.Roles == nil {
		emp.Roles = []string{}
	}
	if !p.SkillsSet {
		skills, err := s.deriveSkills(ctx, emp.Roles)
		if err != nil {
			return nil, err
		}
		emp.Skills = skills
	}

	var err error
	for range employeeIDAllocAttempts {
		err = s.Runtime.do(ctx, "employee.create", func(ctx context.Context) error {
			emp.ID = 0
			return s.EmployeeRepo.CreateAllocating(ctx, emp, NextEmployeeID)
		})
		if !errors.Is(err, util.ErrEmployeeIDTaken) {
			break
		}
		logger.Log.Warn("Employee id collision, reallocating", zap.String("employee_id", emp.EmployeeID))
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Employee created",
		zap.String("employee_id", emp.EmployeeID),
		zap.Strings("roles", emp.Roles),
	)
	return emp, nil
}

// Update roles 必须是数组；name/email 非空才替换，skills 为数组才替换，
// 否则岗位变化时重新推导技能
func (s *EmployeeService) Update(ctx context.Context, id string, p model.EmployeePayload) (*model.Employee, error) {
	if !p.RolesSet {
		return nil, util.NewValidationError("", "Roles must be an array")
	}
	if p.Email != "" {
		if err := validateEmail(p.Email); err != nil {
			return nil, err
		}
	}

	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rolesChanged := !sameRoles(emp.Roles, p.Roles)
	emp.Roles = p.Roles
	if p.Name != "" {
		emp.Name = p.Name
	}
	if p.Email != "" {
		emp.Email = p.Email
	}
	if p.Department != "" {
		emp.Department = p.Department
	}
	switch {
	case p.SkillsSet:
		emp.Skills = p.Skills
	case rolesChanged:
		skills, err := s.deriveSkills(ctx, emp.Roles)
		if err != nil {
			return nil, err
		}
		emp.Skills = skills
	}

	err = s.Runtime.do(ctx, "employee.update", func(ctx context.Context) error {
		return s.EmployeeRepo.Update(ctx, emp)
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func sameRoles(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *EmployeeService) Delete(ctx context.Context, id string) (*model.Employee, error) {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.Runtime.do(ctx, "employee.delete", func(ctx context.Context) error {
		return s.EmployeeRepo.Delete(ctx, emp)
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Employee deleted", zap.String("employee_id", emp.EmployeeID))
	return emp, nil
}

type EmployeeRolesView struct {
	EmployeeID string   `json:"employee_id"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Roles      []string `json:"roles"`
}

// Roles 按编号或姓名查询，编号优先
func (s *EmployeeService) Roles(ctx context.Context, id, name string) (*EmployeeRolesView, error) {
	if id == "" && name == "" {
		return nil, util.NewValidationError("", "Missing employee name or id")
	}
	var emp *model.Employee
	err := s.Runtime.do(ctx, "employee.roles", func(ctx context.Context) error {
		var err error
		if id != "" {
			emp, err = s.EmployeeRepo.FindByEmployeeID(ctx, id)
		} else {
			emp, err = s.EmployeeRepo.FindByName(ctx, name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	roles := []string(emp.Roles)
	if roles == nil {
		roles = []string{}
	}
	return &EmployeeRolesView{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Department: emp.Department,
		Roles:      roles,
	}, nil
}

type EmployeeSkillsView struct {
	EmployeeID string             `json:"employee_id"`
	Name       string             `json:"name,omitempty"`
	Department string             `json:"department,omitempty"`
	Skills     []model.SkillLevel `json:"skills"`
}

func skillsOf(emp *model.Employee) []model.SkillLevel {
	if emp.Skills == nil {
		return []model.SkillLevel{}
	}
	return emp.Skills
}

func (s *EmployeeService) Skills(ctx context.Context, id string) (*EmployeeSkillsView, error) {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EmployeeSkillsView{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Department: emp.Department,
		Skills:     skillsOf(emp),
	}, nil
}

// AllSkills 所有员工的技能列表
func (s *EmployeeService) AllSkills(ctx context.Context) ([]EmployeeSkillsView, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeSkillsView, 0, len(employees))
	for i := range employees {
		out = append(out, EmployeeSkillsView{
			EmployeeID: employees[i].EmployeeID,
			Skills:     skillsOf(&employees[i]),
		})
	}
	return out, nil
}

// WithEmail 有邮箱的员工
func (s *EmployeeService) WithEmail(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Email != "" {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *EmployeeService) IDByEmail(ctx context.Context, email string) (string, error) {
	emp, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return emp.EmployeeID, nil
}
