package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/lock"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	DB             *gorm.DB
	QuestionRepo   *repository.QuestionRepository
	SubmissionRepo *repository.SubmissionRepository
	ScoreLogRepo   *repository.ScoreLogRepository
	Skills         *SkillService
	Locker         lock.Locker
	Runtime        *Runtime
}

func NewQuizService(
	db *gorm.DB,
	questionRepo *repository.QuestionRepository,
	submissionRepo *repository.SubmissionRepository,
	scoreLogRepo *repository.ScoreLogRepository,
	skills *SkillService,
	locker lock.Locker,
	rt *Runtime,
) *QuizService {
	return &QuizService{
		DB:             db,
		QuestionRepo:   questionRepo,
		SubmissionRepo: submissionRepo,
		ScoreLogRepo:   scoreLogRepo,
		Skills:         skills,
		Locker:         locker,
		Runtime:        rt,
	}
}

// attemptKey 同一 (员工, 技能, 等级) 的写操作串行化
func attemptKey(employeeID, skill string, level int) string {
	return fmt.Sprintf("attempt:%s|%s|%d", employeeID, skill, level)
}

// Questions 随机抽取最多 count 道题，不含答案。count 非正数时取默认值，超过上限时截断
func (s *QuizService) Questions(ctx context.Context, skillID string, level, count int) ([]model.QuestionView, error) {
	if strings.TrimSpace(skillID) == "" {
		return nil, util.NewValidationError("skill_id", "skill_id is required")
	}
	if !util.IsAssessedLevel(level) {
		return nil, util.ErrInvalidLevel
	}
	quiz := s.Runtime.Quiz()
	if count <= 0 {
		count = quiz.DefaultQuestionCount
	}
	if count > quiz.MaxQuestionCount {
		count = quiz.MaxQuestionCount
	}

	difficulty := model.DifficultyForLevel(level)
	var pool []model.Question
	err := s.Runtime.do(ctx, "question.find", func(ctx context.Context) error {
		var err error
		pool, err = s.QuestionRepo.FindMatching(ctx, skillID, difficulty)
		return err
	})
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > count {
		pool = pool[:count]
	}

	views := make([]model.QuestionView, 0, len(pool))
	for _, q := range pool {
		views = append(views, q.View())
	}
	monitoring.QuestionsServed.WithLabelValues(difficulty).Add(float64(len(views)))
	return views, nil
}

// AnswerSubmission 一道题的作答，请求中每题都带员工/技能/等级
type AnswerSubmission struct {
	QuestionID       string           `json:"question_id"`
	QuestionText     string           `json:"question_text"`
	Options          []string         `json:"options"`
	SelectedLetter   string           `json:"selected_letter"`
	Skill            string           `json:"skill"`
	Level            model.FlexInt    `json:"level"`
	EmployeeID       model.FlexString `json:"employee_id"`
	EmployeeName     string           `json:"employee_name"`
	EmployeePosition string           `json:"employee_position"`
}

type SubmitRequest struct {
	Submissions []AnswerSubmission `json:"submissions"`
}

type SubmitResult struct {
	Success       bool   `json:"success"`
	AttemptID     string `json:"attempt_id"`
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
	Percent       int    `json:"percent"`
	Status        string `json:"status"`
	AchievedLevel int    `json:"achieved_level"`
}

type attemptHeader struct {
	EmployeeID       string
	EmployeeName     string
	EmployeePosition string
	Skill            string
	Level            int
}

func validateSubmission(req SubmitRequest) (attemptHeader, error) {
	subs := req.Submissions
	if len(subs) == 0 {
		return attemptHeader{}, util.NewValidationError("submissions", "submissions must be a non-empty array")
	}
	if len(subs) > model.MaxAnswerSlots {
		return attemptHeader{}, util.NewValidationError("submissions",
			fmt.Sprintf("at most %d answers per attempt", model.MaxAnswerSlots))
	}

	first := subs[0]
	h := attemptHeader{
		EmployeeID:       model.NormalizeEmployeeID(string(first.EmployeeID)),
		EmployeeName:     strings.TrimSpace(first.EmployeeName),
		EmployeePosition: strings.TrimSpace(first.EmployeePosition),
		Skill:            strings.TrimSpace(first.Skill),
		Level:            int(first.Level),
	}
	if h.EmployeeID == "" {
		return h, util.NewValidationError("employee_id", "employee_id is required")
	}
	if h.Skill == "" {
		return h, util.NewValidationError("skill", "skill is required")
	}
	if !util.IsAssessedLevel(h.Level) {
		return h, util.ErrInvalidLevel
	}

	seen := make(map[string]bool, len(subs))
	for i, sub := range subs {
		if strings.TrimSpace(sub.QuestionID) == "" {
			return h, util.NewValidationError("question_id", fmt.Sprintf("answer %d has no question_id", i+1))
		}
		if seen[sub.QuestionID] {
			return h, util.NewValidationError("question_id", fmt.Sprintf("question %s answered twice", sub.QuestionID))
		}
		seen[sub.QuestionID] = true
		if model.NormalizeEmployeeID(string(sub.EmployeeID)) != h.EmployeeID ||
			strings.TrimSpace(sub.Skill) != h.Skill ||
			int(sub.Level) != h.Level {
			return h, util.NewValidationError("submissions",
				"all answers must share the same employee_id, skill and level")
		}
	}
	return h, nil
}

// attemptAllowed 没有作答记录或最新记录已授权重测时允许作答
func attemptAllowed(latest *model.Submission) bool {
	return latest == nil || IsRetestFlag(latest.StatusFlag)
}

// Submit 校验、评分，并在同一事务中写入作答和评分日志
func (s *QuizService) Submit(ctx context.Context, req SubmitRequest) (res *SubmitResult, err error) {
	ctx, span := tracing.Start(ctx, "quiz.submit")
	defer func() { tracing.End(span, err) }()

	h, err := validateSubmission(req)
	if err != nil {
		return nil, err
	}
	skill, err := s.Skills.Resolve(ctx, h.Skill)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("employee_id", h.EmployeeID),
		attribute.String("skill", skill.Code),
		attribute.Int("level", h.Level),
	)

	unlock, err := s.Locker.Lock(ctx, attemptKey(h.EmployeeID, skill.Code, h.Level))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUnavailable, err)
	}
	defer unlock()

	if s.Runtime.Quiz().EnforceSingleAttempt {
		var latest *model.Submission
		err = s.Runtime.do(ctx, "submission.latest", func(ctx context.Context) error {
			var err error
			latest, err = s.SubmissionRepo.Latest(ctx, h.EmployeeID, skill.Code, h.Level)
			return err
		})
		if err != nil {
			return nil, err
		}
		if !attemptAllowed(latest) {
			return nil, util.ErrRetestNotAuthorized
		}
	}

	answers := make([]model.AnswerSlot, 0, len(req.Submissions))
	ids := make([]string, 0, len(req.Submissions))
	for _, sub := range req.Submissions {
		answers = append(answers, model.AnswerSlot{
			QuestionID:     sub.QuestionID,
			QuestionText:   sub.QuestionText,
			Options:        sub.Options,
			SelectedLetter: strings.TrimSpace(sub.SelectedLetter),
		})
		ids = append(ids, sub.QuestionID)
	}

	var bank map[string]model.Question
	err = s.Runtime.do(ctx, "question.find_by_ids", func(ctx context.Context) error {
		var err error
		bank, err = s.QuestionRepo.FindByQuestionIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	grade, err := ScoreAnswers(h.Level, answers, bank)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		AttemptID:        model.NewAttemptID(),
		EmployeeID:       h.EmployeeID,
		EmployeeName:     h.EmployeeName,
		EmployeePosition: h.EmployeePosition,
		Skill:            skill.Code,
		SkillName:        skill.Name,
		Level:            h.Level,
		Answers:          answers,
		StatusFlag:       model.FlagSubmitted,
	}
	entry := &model.ScoreLog{
		AttemptID:        sub.AttemptID,
		EmployeeID:       h.EmployeeID,
		EmployeeName:     h.EmployeeName,
		EmployeePosition: h.EmployeePosition,
		Skill:            skill.Code,
		SkillName:        skill.Name,
		Level:            h.Level,
		Score:            grade.Score,
		MaxScore:         grade.MaxScore,
		Percent:          grade.Percent,
		Status:           grade.Status,
		AchievedLevel:    grade.AchievedLevel,
	}

	err = s.Runtime.do(ctx, "submission.record", func(ctx context.Context) error {
		sub.ID, entry.ID = 0, 0
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.SubmissionRepo.WithTx(tx).Create(ctx, sub); err != nil {
				return err
			}
			return s.ScoreLogRepo.WithTx(tx).Create(ctx, entry)
		})
	})
	if err != nil {
		return nil, err
	}

	monitoring.ObserveGrade(h.Level, grade.Status)
	logger.Log.Info("Quiz graded",
		zap.String("attempt_id", sub.AttemptID),
		zap.String("employee_id", h.EmployeeID),
		zap.String("skill", skill.Code),
		zap.Int("level", h.Level),
		zap.Int("percent", grade.Percent),
		zap.String("status", grade.Status),
	)

	return &SubmitResult{
		Success:       true,
		AttemptID:     sub.AttemptID,
		Score:         grade.Score,
		MaxScore:      grade.MaxScore,
		Percent:       grade.Percent,
		Status:        grade.Status,
		AchievedLevel: grade.AchievedLevel,
	}, nil
}

type SubmittedSlot struct {
	QuestionID      string   `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	Options         []string `json:"options"`
	SubmittedLetter string   `json:"submitted_letter"`
}

type SubmittedAnswers struct {
	AttemptID        string          `json:"attempt_id"`
	Timestamp        time.Time       `json:"timestamp"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	EmployeePosition string          `json:"employee_position"`
	Skill            string          `json:"skill"`
	SkillName        string          `json:"skill_name"`
	Level            int             `json:"level"`
	StatusFlag       string          `json:"status_flag"`
	Answers          []SubmittedSlot `json:"answers"`
}

// SubmittedAnswers 作答记录关联题库，题库中存在的题目以题库文本为准
func (s *QuizService) SubmittedAnswers(ctx context.Context, f repository.SubmissionFilter) ([]SubmittedAnswers, error) {
	f.EmployeeID = model.NormalizeEmployeeID(f.EmployeeID)
	if f.Skill != "" {
		if skill, err := s.Skills.Resolve(ctx, f.Skill); err == nil {
			f.Skill = skill.Code
		}
	}

	var subs []model.Submission
	var bank map[string]model.Question
	err := s.Runtime.do(ctx, "submission.list", func(ctx context.Context) error {
		var err error
		if subs, err = s.SubmissionRepo.List(ctx, f); err != nil {
			return err
		}
		var ids []string
		for _, sub := range subs {
			for _, a := range sub.Answers {
				ids = append(ids, a.QuestionID)
			}
		}
		bank, err = s.QuestionRepo.FindByQuestionIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]SubmittedAnswers, 0, len(subs))
	for _, sub := range subs {
		slots := make([]SubmittedSlot, 0, len(sub.Answers))
		for _, a := range sub.Answers {
			slot := SubmittedSlot{
				QuestionID:      a.QuestionID,
				QuestionText:    a.QuestionText,
				Options:         a.Options,
				SubmittedLetter: a.SelectedLetter,
			}
			if q, ok := bank[a.QuestionID]; ok {
				slot.QuestionText = q.QuestionText
				slot.Options = q.Options()
			}
			if slot.Options == nil {
				slot.Options = []string{}
			}
			slots = append(slots, slot)
		}
		out = append(out, SubmittedAnswers{
			AttemptID:        sub.AttemptID,
			Timestamp:        sub.CreatedAt,
			EmployeeID:       sub.EmployeeID,
			EmployeeName:     sub.EmployeeName,
			EmployeePosition: sub.EmployeePosition,
			Skill:            sub.Skill,
			SkillName:        sub.SkillName,
			Level:            sub.Level,
			StatusFlag:       sub.StatusFlag,
			Answers:          slots,
		})
	}
	return out, nil
}

type Eligibility struct {
	EmployeeID string `json:"employee_id"`
	Skill      string `json:"skill"`
	Level      int    `json:"level"`
	Allowed    bool   `json:"allowed"`
	StatusFlag string `json:"status_flag,omitempty"`
}

// Eligibility 当前是否允许再次作答
func (s *QuizService) Eligibility(ctx context.Context, employeeID, skillKey string, level int) (*Eligibility, error) {
	employeeID = model.NormalizeEmployeeID(employeeID)
	if employeeID == "" {
		return nil, util.NewValidationError("employee_id", "employee_id is required")
	}
	if !util.IsAssessedLevel(level) {
		return nil, util.ErrInvalidLevel
	}
	skill, err := s.Skills.Resolve(ctx, skillKey)
	if err != nil {
		return nil, err
	}

	var latest *model.Submission
	err = s.Runtime.do(ctx, "submission.latest", func(ctx context.Context) error {
		var err error
		latest, err = s.SubmissionRepo.Latest(ctx, employeeID, skill.Code, level)
		return err
	})
	if err != nil {
		return nil, err
	}

	e := &Eligibility{
		EmployeeID: employeeID,
		Skill:      skill.Code,
		Level:      level,
		Allowed:    !s.Runtime.Quiz().EnforceSingleAttempt || attemptAllowed(latest),
	}
	if latest != nil {
		e.StatusFlag = latest.StatusFlag
	}
	return e, nil
}

// AddQuestion 管理端新增单道题目
func (s *QuizService) AddQuestion(ctx context.Context, q *model.Question) error {
	if err := normalizeQuestion(q); err != nil {
		return err
	}
	return s.Runtime.do(ctx, "question.create", func(ctx context.Context) error {
		q.ID = 0
		return s.QuestionRepo.Create(ctx, q)
	})
}

func normalizeQuestion(q *model.Question) error {
	q.QuestionID = strings.TrimSpace(q.QuestionID)
	q.SkillID = model.NormalizeSkillCode(q.SkillID)
	q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
	q.CorrectOption = strings.ToUpper(strings.TrimSpace(q.CorrectOption))

	switch {
	case q.QuestionID == "":
		return util.NewValidationError("question_id", "question_id is required")
	case q.SkillID == "":
		return util.NewValidationError("skill_id", "skill_id is required")
	case q.Difficulty != model.DifficultyBasic && q.Difficulty != model.DifficultyAdvance:
		return util.NewValidationError("difficulty", "difficulty must be basic or advance")
	case strings.TrimSpace(q.QuestionText) == "":
		return util.NewValidationError("question_text", "question_text is required")
	}
	for _, letter := range model.OptionLetters {
		if q.CorrectOption == letter {
			return nil
		}
	}
	return util.NewValidationError("correct_option", "correct_option must be one of A, B, C, D")
}
