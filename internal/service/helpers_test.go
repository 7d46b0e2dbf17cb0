package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/pkg/database"
	"skill_matrix_backend/pkg/lock"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testEnv struct {
	DB          *gorm.DB
	Runtime     *Runtime
	Employees   *EmployeeService
	Skills      *SkillService
	Competency  *CompetencyService
	Quiz        *QuizService
	Retest      *RetestService
	Performance *PerformanceService
	Import      *QuestionImportService
	Legacy      *LegacyImportService
}

func testConfig(t *testing.T) *config.Config {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:   "sqlite",
			Path:     fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			LogLevel: "silent",
		},
		Quiz: config.QuizConfig{
			DefaultQuestionCount: 10,
			MaxQuestionCount:     20,
			EnforceSingleAttempt: true,
		},
		Retry: config.RetryConfig{MaxAttempts: 1},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testConfig(t)

	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	rt := NewRuntime(cfg)
	employeeRepo := repository.NewEmployeeRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	competencyRepo := repository.NewCompetencyMapRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	scoreLogRepo := repository.NewScoreLogRepository(db)
	locker := lock.NewLocalLocker()

	skills := NewSkillService(skillRepo, rt)
	employees := NewEmployeeService(employeeRepo, competencyRepo, rt)
	return &testEnv{
		DB:          db,
		Runtime:     rt,
		Employees:   employees,
		Skills:      skills,
		Competency:  NewCompetencyService(competencyRepo, rt),
		Quiz:        NewQuizService(db, questionRepo, submissionRepo, scoreLogRepo, skills, locker, rt),
		Retest:      NewRetestService(submissionRepo, skills, locker, rt),
		Performance: NewPerformanceService(scoreLogRepo, employees, skills, rt),
		Import:      NewQuestionImportService(questionRepo, rt),
		Legacy:      NewLegacyImportService(employeeRepo, skillRepo, competencyRepo, rt),
	}
}

func (e *testEnv) seedSkill(t *testing.T, name string) *model.Skill {
	t.Helper()
	s, err := e.Skills.Create(context.Background(), name)
	require.NoError(t, err)
	return s
}

func (e *testEnv) seedRole(t *testing.T, role string, skills map[string]int) {
	t.Helper()
	_, err := e.Competency.Create(context.Background(), model.CompetencyPayload{
		Role:      role,
		Skills:    skills,
		SkillsSet: true,
	})
	require.NoError(t, err)
}

// seedQuestions 写入 n 道题，正确答案均为 A
func (e *testEnv) seedQuestions(t *testing.T, skillCode, difficulty string, n int) []model.Question {
	t.Helper()
	qs := make([]model.Question, 0, n)
	for i := range n {
		qs = append(qs, model.Question{
			QuestionID:    fmt.Sprintf("%s-%s-%02d", skillCode, difficulty, i+1),
			SkillID:       skillCode,
			Difficulty:    difficulty,
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			OptionA:       "right",
			OptionB:       "wrong 1",
			OptionC:       "wrong 2",
			OptionD:       "wrong 3",
			CorrectOption: "A",
		})
	}
	require.NoError(t, e.DB.Create(&qs).Error)
	return qs
}

// answers 前 correct 道答 A，其余答 B
func answers(qs []model.Question, correct int, employeeID, skill string, level int) SubmitRequest {
	req := SubmitRequest{}
	for i, q := range qs {
		letter := "B"
		if i < correct {
			letter = "A"
		}
		req.Submissions = append(req.Submissions, AnswerSubmission{
			QuestionID:       q.QuestionID,
			QuestionText:     q.QuestionText,
			Options:          q.Options(),
			SelectedLetter:   letter,
			Skill:            skill,
			Level:            model.FlexInt(level),
			EmployeeID:       model.FlexString(employeeID),
			EmployeeName:     "Asha",
			EmployeePosition: "Assembler",
		})
	}
	return req
}

func competencyMap(role string, skills map[string]int) model.CompetencyMap {
	return model.CompetencyMap{Role: role, Skills: datatypes.NewJSONType(skills)}
}
