package service

import (
	"context"
	"sort"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type CompetencyService struct {
	CompetencyRepo *repository.CompetencyMapRepository
	Runtime        *Runtime
}

func NewCompetencyService(competencyRepo *repository.CompetencyMapRepository, rt *Runtime) *CompetencyService {
	return &CompetencyService{CompetencyRepo: competencyRepo, Runtime: rt}
}

func (s *CompetencyService) List(ctx context.Context) ([]model.CompetencyMap, error) {
	var maps []model.CompetencyMap
	err := s.Runtime.do(ctx, "competency.list", func(ctx context.Context) error {
		var err error
		maps, err = s.CompetencyRepo.List(ctx)
		return err
	})
	return maps, err
}

func validateLevels(skills map[string]int) error {
	for name, level := range skills {
		if level < 0 || level > util.MaxAssessedLevel {
			return util.NewValidationError("skills", "level for "+name+" must be between 0 and 4")
		}
	}
	return nil
}

func (s *CompetencyService) Create(ctx context.Context, p model.CompetencyPayload) (*model.CompetencyMap, error) {
	role := strings.TrimSpace(p.Role)
	if role == "" || !p.SkillsSet {
		return nil, util.NewValidationError("", "Role and Skills are required.")
	}
	if err := validateLevels(p.Skills); err != nil {
		return nil, err
	}
	m := &model.CompetencyMap{Role: role, Skills: datatypes.NewJSONType(p.Skills)}
	err := s.Runtime.do(ctx, "competency.create", func(ctx context.Context) error {
		m.ID = 0
		return s.CompetencyRepo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Competency map created", zap.String("role", role), zap.Int("skills", len(p.Skills)))
	return m, nil
}

func (s *CompetencyService) UpdateSkills(ctx context.Context, role string, p model.CompetencyPayload) (*model.CompetencyMap, error) {
	if !p.SkillsSet {
		return nil, util.NewValidationError("skills", "skills must be an object")
	}
	if err := validateLevels(p.Skills); err != nil {
		return nil, err
	}
	var m *model.CompetencyMap
	err := s.Runtime.do(ctx, "competency.update", func(ctx context.Context) error {
		var err error
		if m, err = s.CompetencyRepo.FindByRole(ctx, role); err != nil {
			return err
		}
		return s.CompetencyRepo.UpdateSkills(ctx, m, p.Skills)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CompetencyService) Delete(ctx context.Context, role string) error {
	return s.Runtime.do(ctx, "competency.delete", func(ctx context.Context) error {
		m, err := s.CompetencyRepo.FindByRole(ctx, role)
		if err != nil {
			return err
		}
		return s.CompetencyRepo.Delete(ctx, m)
	})
}

func (s *CompetencyService) Roles(ctx context.Context) ([]string, error) {
	var roles []string
	err := s.Runtime.do(ctx, "competency.roles", func(ctx context.Context) error {
		var err error
		roles, err = s.CompetencyRepo.Roles(ctx)
		return err
	})
	if roles == nil {
		roles = []string{}
	}
	return roles, err
}

// RoleCompetency 岗位-技能要求的扁平行
type RoleCompetency struct {
	ID                  int    `json:"id"`
	RoleID              string `json:"role_id"`
	CompetencyID        string `json:"competency_id"`
	ProficiencyRequired int    `json:"proficiency_required"`
}

func (s *CompetencyService) RoleCompetencies(ctx context.Context) ([]RoleCompetency, error) {
	maps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleCompetency, 0)
	for _, m := range maps {
		skills := m.RequiredSkills()
		names := make([]string, 0, len(skills))
		for name := range skills {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, RoleCompetency{
				ID:                  len(out) + 1,
				RoleID:              m.Role,
				CompetencyID:        name,
				ProficiencyRequired: skills[name],
			})
		}
	}
	return out, nil
}
