package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// LegacyImportService 导入旧系统导出的 JSON（员工、技能、岗位能力表）
type LegacyImportService struct {
	EmployeeRepo   *repository.EmployeeRepository
	SkillRepo      *repository.SkillRepository
	CompetencyRepo *repository.CompetencyMapRepository
	Runtime        *Runtime
}

func NewLegacyImportService(
	employeeRepo *repository.EmployeeRepository,
	skillRepo *repository.SkillRepository,
	competencyRepo *repository.CompetencyMapRepository,
	rt *Runtime,
) *LegacyImportService {
	return &LegacyImportService{
		EmployeeRepo:   employeeRepo,
		SkillRepo:      skillRepo,
		CompetencyRepo: competencyRepo,
		Runtime:        rt,
	}
}

type LegacyImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

func (r *LegacyImportResult) skip(format string, args ...interface{}) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

type legacySkill struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ImportSkills 缺少代码的技能按规则分配代码，已存在的代码跳过
func (s *LegacyImportService) ImportSkills(ctx context.Context, r io.Reader) (*LegacyImportResult, error) {
	var items []legacySkill
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}

	res := &LegacyImportResult{Errors: make([]string, 0)}
	for i, it := range items {
		skill := &model.Skill{Code: model.NormalizeSkillCode(it.Code), Name: strings.TrimSpace(it.Name)}
		if skill.Name == "" {
			res.skip("skill %d: missing name", i+1)
			continue
		}
		err := s.Runtime.do(ctx, "legacy.skill", func(ctx context.Context) error {
			skill.ID = 0
			if skill.Code == "" {
				return s.SkillRepo.CreateAllocating(ctx, skill, NextSkillCode)
			}
			return s.SkillRepo.Create(ctx, skill)
		})
		if errors.Is(err, util.ErrSkillCodeTaken) {
			res.skip("skill %d: %v", i+1, err)
			continue
		}
		if err != nil {
			return res, err
		}
		res.Created++
	}
	return res, nil
}

// ImportCompetencyMaps 已存在的岗位跳过
func (s *LegacyImportService) ImportCompetencyMaps(ctx context.Context, r io.Reader) (*LegacyImportResult, error) {
	var items []model.CompetencyPayload
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode competency map: %w", err)
	}

	res := &LegacyImportResult{Errors: make([]string, 0)}
	for i, it := range items {
		if it.Role == "" || !it.SkillsSet {
			res.skip("competency map %d: missing role or skills", i+1)
			continue
		}
		m := &model.CompetencyMap{Role: it.Role, Skills: datatypes.NewJSONType(it.Skills)}
		err := s.Runtime.do(ctx, "legacy.competency_map", func(ctx context.Context) error {
			m.ID = 0
			return s.CompetencyRepo.Create(ctx, m)
		})
		if errors.Is(err, util.ErrRoleExists) {
			res.skip("competency map %d: %v", i+1, err)
			continue
		}
		if err != nil {
			return res, err
		}
		res.Created++
	}
	return res, nil
}

// ImportEmployees 保留原有编号；没有编号的分配新编号，没有技能的按岗位推导
func (s *LegacyImportService) ImportEmployees(ctx context.Context, r io.Reader) (*LegacyImportResult, error) {
	var items []model.EmployeePayload
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}

	res := &LegacyImportResult{Errors: make([]string, 0)}
	for i, p := range items {
		if p.Name == "" || p.Email == "" {
			res.skip("employee %d: missing name or email", i+1)
			continue
		}
		emp := &model.Employee{
			EmployeeID: p.EmployeeID,
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
			var maps []model.CompetencyMap
			err := s.Runtime.do(ctx, "legacy.derive_skills", func(ctx context.Context) error {
				var err error
				maps, err = s.CompetencyRepo.FindByRoles(ctx, emp.Roles)
				return err
			})
			if err != nil {
				return res, err
			}
			emp.Skills = DeriveSkills(maps)
		}

		err := s.Runtime.do(ctx, "legacy.employee", func(ctx context.Context) error {
			emp.ID = 0
			if emp.EmployeeID == "" {
				return s.EmployeeRepo.CreateAllocating(ctx, emp, NextEmployeeID)
			}
			return s.EmployeeRepo.Create(ctx, emp)
		})
		if errors.Is(err, util.ErrEmailRegistered) || errors.Is(err, util.ErrEmployeeIDTaken) {
			res.skip("employee %d: %v", i+1, err)
			continue
		}
		if err != nil {
			return res, err
		}
		res.Created++
	}

	logger.Log.Info("Legacy employees imported", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}
