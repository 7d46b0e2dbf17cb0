package service

import (
	"context"
	"fmt"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/lock"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type RetestService struct {
	SubmissionRepo *repository.SubmissionRepository
	Skills         *SkillService
	Locker         lock.Locker
	Runtime        *Runtime
}

func NewRetestService(submissionRepo *repository.SubmissionRepository, skills *SkillService, locker lock.Locker, rt *Runtime) *RetestService {
	return &RetestService{
		SubmissionRepo: submissionRepo,
		Skills:         skills,
		Locker:         locker,
		Runtime:        rt,
	}
}

type RetestRequest struct {
	EmployeeID model.FlexString `json:"employee_id"`
	Skill      string           `json:"skill"`
	Level      model.FlexInt    `json:"level"`
}

type RetestResult struct {
	Success      bool   `json:"success"`
	PreviousFlag string `json:"previous_flag"`
	StatusFlag   string `json:"status_flag"`
}

// Allow 把最新一次作答的状态标记推进一步，只修改该行的标记
func (s *RetestService) Allow(ctx context.Context, req RetestRequest) (res *RetestResult, err error) {
	employeeID := model.NormalizeEmployeeID(string(req.EmployeeID))
	level := int(req.Level)
	if employeeID == "" || strings.TrimSpace(req.Skill) == "" || level == 0 {
		return nil, util.NewValidationError("", "Missing employee_id, skill, or level")
	}
	if !util.IsAssessedLevel(level) {
		return nil, util.ErrInvalidLevel
	}

	ctx, span := tracing.Start(ctx, "retest.allow",
		attribute.String("employee_id", employeeID),
		attribute.Int("level", level),
	)
	defer func() {
		outcome := "granted"
		if err != nil {
			outcome = "rejected"
		}
		monitoring.RetestDecisions.WithLabelValues(outcome).Inc()
		tracing.End(span, err)
	}()

	skill, err := s.Skills.Resolve(ctx, req.Skill)
	if err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, attemptKey(employeeID, skill.Code, level))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUnavailable, err)
	}
	defer unlock()

	var latest *model.Submission
	err = s.Runtime.do(ctx, "submission.latest", func(ctx context.Context) error {
		var err error
		latest, err = s.SubmissionRepo.Latest(ctx, employeeID, skill.Code, level)
		return err
	})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, &util.StateConflictError{
			Reason: fmt.Sprintf("cannot allow retest: no submission for employee %s, skill %s, level %d",
				employeeID, skill.Code, level),
		}
	}

	next, err := NextRetestFlag(latest.StatusFlag)
	if err != nil {
		return nil, err
	}

	var swapped bool
	err = s.Runtime.do(ctx, "submission.set_flag", func(ctx context.Context) error {
		var err error
		swapped, err = s.SubmissionRepo.CompareAndSetFlag(ctx, latest.ID, latest.StatusFlag, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, &util.StateConflictError{
			CurrentFlag: latest.StatusFlag,
			Reason:      "cannot allow retest: status flag changed concurrently, reload and retry",
		}
	}

	logger.Log.Info("Retest allowed",
		zap.String("attempt_id", latest.AttemptID),
		zap.String("employee_id", employeeID),
		zap.String("skill", skill.Code),
		zap.Int("level", level),
		zap.String("from", latest.StatusFlag),
		zap.String("to", next),
	)
	return &RetestResult{Success: true, PreviousFlag: latest.StatusFlag, StatusFlag: next}, nil
}
