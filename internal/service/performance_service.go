package service

import (
	"context"
	"sort"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
)

type PerformanceService struct {
	ScoreLogRepo *repository.ScoreLogRepository
	Employees    *EmployeeService
	Skills       *SkillService
	Runtime      *Runtime
}

func NewPerformanceService(scoreLogRepo *repository.ScoreLogRepository, employees *EmployeeService, skills *SkillService, rt *Runtime) *PerformanceService {
	return &PerformanceService{
		ScoreLogRepo: scoreLogRepo,
		Employees:    employees,
		Skills:       skills,
		Runtime:      rt,
	}
}

// Results 评分日志，按写入顺序
func (s *PerformanceService) Results(ctx context.Context, f repository.ScoreLogFilter) ([]model.ScoreLog, error) {
	f.EmployeeID = model.NormalizeEmployeeID(f.EmployeeID)
	if f.Skill != "" {
		if skill, err := s.Skills.Resolve(ctx, f.Skill); err == nil {
			f.Skill = skill.Code
		}
	}
	var logs []model.ScoreLog
	err := s.Runtime.do(ctx, "score_log.list", func(ctx context.Context) error {
		var err error
		logs, err = s.ScoreLogRepo.List(ctx, f)
		return err
	})
	if logs == nil {
		logs = []model.ScoreLog{}
	}
	return logs, err
}

type SkillSummary struct {
	Skill         string `json:"skill"`
	SkillCode     string `json:"skill_code,omitempty"`
	RequiredLevel int    `json:"required_level"`
	AchievedLevel int    `json:"achieved_level"`
	Gap           int    `json:"gap"`
	Attempts      int    `json:"attempts"`
	BestPercent   int    `json:"best_percent"`
	LatestStatus  string `json:"latest_status,omitempty"`
	LatestLevel   int    `json:"latest_level,omitempty"`
}

type EmployeeSummary struct {
	EmployeeID string         `json:"employee_id"`
	Name       string         `json:"name"`
	Roles      []string       `json:"roles"`
	Skills     []SkillSummary `json:"skills"`
}

// Summary 每项要求技能的最高实际等级与差距；测过但不在要求内的技能也列出
func (s *PerformanceService) Summary(ctx context.Context, employeeID string) (*EmployeeSummary, error) {
	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	skills, err := s.Skills.List(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.Results(ctx, repository.ScoreLogFilter{EmployeeID: emp.EmployeeID})
	if err != nil {
		return nil, err
	}

	codeByName := make(map[string]string, len(skills))
	nameByCode := make(map[string]string, len(skills))
	for _, sk := range skills {
		codeByName[strings.ToLower(sk.Name)] = sk.Code
		nameByCode[sk.Code] = sk.Name
	}

	byCode := make(map[string]*SkillSummary)
	var order []string
	add := func(name, code string, required int) *SkillSummary {
		key := code
		if key == "" {
			key = "name:" + strings.ToLower(name)
		}
		if cur, ok := byCode[key]; ok {
			if required > cur.RequiredLevel {
				cur.RequiredLevel = required
			}
			return cur
		}
		ss := &SkillSummary{Skill: name, SkillCode: code, RequiredLevel: required}
		byCode[key] = ss
		order = append(order, key)
		return ss
	}

	for _, req := range emp.Skills {
		code := codeByName[strings.ToLower(req.Skill)]
		if code == "" {
			if _, ok := nameByCode[model.NormalizeSkillCode(req.Skill)]; ok {
				code = model.NormalizeSkillCode(req.Skill)
			}
		}
		add(req.Skill, code, req.Level)
	}

	for _, l := range logs {
		name := l.SkillName
		if name == "" {
			name = nameByCode[l.Skill]
		}
		ss := add(name, l.Skill, 0)
		ss.Attempts++
		if l.AchievedLevel > ss.AchievedLevel {
			ss.AchievedLevel = l.AchievedLevel
		}
		if l.Percent > ss.BestPercent {
			ss.BestPercent = l.Percent
		}
		ss.LatestStatus = l.Status
		ss.LatestLevel = l.Level
	}

	out := make([]SkillSummary, 0, len(order))
	for _, key := range order {
		ss := byCode[key]
		if gap := ss.RequiredLevel - ss.AchievedLevel; gap > 0 {
			ss.Gap = gap
		}
		out = append(out, *ss)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Gap > out[j].Gap })

	roles := []string(emp.Roles)
	if roles == nil {
		roles = []string{}
	}
	return &EmployeeSummary{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Roles:      roles,
		Skills:     out,
	}, nil
}
