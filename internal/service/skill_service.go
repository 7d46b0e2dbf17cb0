package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/logger"

	"go.uber.org/zap"
)

var skillCodePattern = regexp.MustCompile(`(?i)^sk(\d+)$`)

type SkillService struct {
	SkillRepo *repository.SkillRepository
	Runtime   *Runtime
}

func NewSkillService(skillRepo *repository.SkillRepository, rt *Runtime) *SkillService {
	return &SkillService{SkillRepo: skillRepo, Runtime: rt}
}

// NextSkillCode sk + 两位补零的 (最大数字后缀 + 1)
func NextSkillCode(existing []string) string {
	max := 0
	for _, code := range existing {
		m := skillCodePattern.FindStringSubmatch(strings.TrimSpace(code))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("sk%02d", max+1)
}

func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := s.Runtime.do(ctx, "skill.list", func(ctx context.Context) error {
		var err error
		skills, err = s.SkillRepo.List(ctx)
		return err
	})
	return skills, err
}

func (s *SkillService) Get(ctx context.Context, code string) (*model.Skill, error) {
	var skill *model.Skill
	err := s.Runtime.do(ctx, "skill.get", func(ctx context.Context) error {
		var err error
		skill, err = s.SkillRepo.FindByCode(ctx, code)
		return err
	})
	return skill, err
}

// Resolve 先按代码再按名称查找技能
func (s *SkillService) Resolve(ctx context.Context, key string) (*model.Skill, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, util.NewValidationError("skill", "skill is required")
	}
	var skill *model.Skill
	err := s.Runtime.do(ctx, "skill.resolve", func(ctx context.Context) error {
		var err error
		skill, err = s.SkillRepo.FindByCode(ctx, key)
		if errors.Is(err, util.ErrSkillNotFound) {
			skill, err = s.SkillRepo.FindByName(ctx, key)
		}
		return err
	})
	if errors.Is(err, util.ErrSkillNotFound) {
		return nil, fmt.Errorf("%w: %s", util.ErrSkillNotFound, key)
	}
	return skill, err
}

func (s *SkillService) Create(ctx context.Context, name string) (*model.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewValidationError("", "Skill name is required.")
	}
	skill := &model.Skill{Name: name}
	err := s.Runtime.do(ctx, "skill.create", func(ctx context.Context) error {
		skill.ID = 0
		return s.SkillRepo.CreateAllocating(ctx, skill, NextSkillCode)
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Skill created", zap.String("code", skill.Code), zap.String("name", skill.Name))
	return skill, nil
}
