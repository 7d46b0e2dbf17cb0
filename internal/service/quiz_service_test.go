package service

import (
	"context"
	"testing"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizService_QuestionsCardinalityAndMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	basic := env.seedQuestions(t, "sk01", model.DifficultyBasic, 25)
	env.seedQuestions(t, "sk01", model.DifficultyAdvance, 3)
	env.seedQuestions(t, "sk02", model.DifficultyBasic, 5)

	pool := make(map[string]bool)
	for _, q := range basic {
		pool[q.QuestionID] = true
	}

	got, err := env.Quiz.Questions(ctx, " SK01 ", 2, 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	seen := make(map[string]bool)
	for _, q := range got {
		assert.True(t, pool[q.QuestionID], q.QuestionID)
		assert.False(t, seen[q.QuestionID])
		seen[q.QuestionID] = true
		assert.Len(t, q.Options, 4)
	}

	got, err = env.Quiz.Questions(ctx, "sk01", 3, 15)
	require.NoError(t, err)
	assert.Len(t, got, 15)

	// 上限 20
	got, err = env.Quiz.Questions(ctx, "sk01", 2, 100)
	require.NoError(t, err)
	assert.Len(t, got, 20)

	got, err = env.Quiz.Questions(ctx, "sk01", 4, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, q := range got {
		assert.Equal(t, model.DifficultyAdvance, q.Difficulty)
	}

	got, err = env.Quiz.Questions(ctx, "sk09", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = env.Quiz.Questions(ctx, "sk01", 5, 10)
	assert.ErrorIs(t, err, util.ErrInvalidLevel)
}

func TestQuizService_SubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedSkill(t, "5S")
	qs := env.seedQuestions(t, "sk01", model.DifficultyBasic, 11)

	var ve *util.ValidationError

	_, err := env.Quiz.Submit(ctx, SubmitRequest{})
	assert.ErrorAs(t, err, &ve)

	_, err = env.Quiz.Submit(ctx, answers(qs, 11, "1", "5S", 2))
	assert.ErrorAs(t, err, &ve)

	mixed := answers(qs[:3], 3, "1", "5S", 2)
	mixed.Submissions[2].Level = 3
	_, err = env.Quiz.Submit(ctx, mixed)
	assert.ErrorAs(t, err, &ve)

	_, err = env.Quiz.Submit(ctx, answers(qs[:3], 3, "1", "5S", 1))
	assert.ErrorIs(t, err, util.ErrInvalidLevel)

	_, err = env.Quiz.Submit(ctx, answers(qs[:3], 3, "1", "Painting", 2))
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	var count int64
	require.NoError(t, env.DB.Model(&model.Submission{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestQuizService_SubmitEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedRole(t, "Assembler", map[string]int{"5S": 2})
	env.seedSkill(t, "5S")
	qs := env.seedQuestions(t, "sk01", model.DifficultyBasic, 10)

	emp, err := env.Employees.Create(ctx, payload(t, `{"name":"Asha","roles":["Assembler"],"email":"asha@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, []model.SkillLevel{{Skill: "5S", Level: 2}}, []model.SkillLevel(emp.Skills))

	res, err := env.Quiz.Submit(ctx, answers(qs, 8, emp.EmployeeID, "5S", 2))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 8, res.Score)
	assert.Equal(t, 10, res.MaxScore)
	assert.Equal(t, 80, res.Percent)
	assert.Equal(t, StatusEligibleL3, res.Status)

	logs, err := env.Performance.Results(ctx, repository.ScoreLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusEligibleL3, logs[0].Status)
	assert.Equal(t, "sk01", logs[0].Skill)
	assert.Equal(t, "5S", logs[0].SkillName)
	assert.Equal(t, res.AttemptID, logs[0].AttemptID)

	// 未授权重测前不能再次作答
	_, err = env.Quiz.Submit(ctx, answers(qs, 10, emp.EmployeeID, "sk01", 2))
	assert.ErrorIs(t, err, util.ErrRetestNotAuthorized)

	el, err := env.Quiz.Eligibility(ctx, emp.EmployeeID, "5S", 2)
	require.NoError(t, err)
	assert.False(t, el.Allowed)
	assert.Equal(t, model.FlagSubmitted, el.StatusFlag)

	rr, err := env.Retest.Allow(ctx, RetestRequest{EmployeeID: model.FlexString(emp.EmployeeID), Skill: "5S", Level: 2})
	require.NoError(t, err)
	assert.Equal(t, "retest_1", rr.StatusFlag)

	el, err = env.Quiz.Eligibility(ctx, emp.EmployeeID, "sk01", 2)
	require.NoError(t, err)
	assert.True(t, el.Allowed)

	res, err = env.Quiz.Submit(ctx, answers(qs, 10, emp.EmployeeID, "5S", 2))
	require.NoError(t, err)
	assert.Equal(t, 100, res.Percent)

	subs, err := env.Quiz.SubmittedAnswers(ctx, repository.SubmissionFilter{EmployeeID: emp.EmployeeID})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "retest_1", subs[0].StatusFlag)
	assert.Equal(t, model.FlagSubmitted, subs[1].StatusFlag)
	require.Len(t, subs[0].Answers, 10)
	assert.Equal(t, "A", subs[0].Answers[0].SubmittedLetter)
	assert.Equal(t, "B", subs[0].Answers[9].SubmittedLetter)
	assert.Equal(t, qs[0].Options(), subs[0].Answers[0].Options)

	logs, err = env.Performance.Results(ctx, repository.ScoreLogFilter{EmployeeID: emp.EmployeeID, Skill: "5S"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestQuizService_SingleAttemptDisabled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Quiz.EnforceSingleAttempt = false
	env.Runtime.Apply(cfg)

	env.seedSkill(t, "5S")
	qs := env.seedQuestions(t, "sk01", model.DifficultyBasic, 5)

	for range 2 {
		_, err := env.Quiz.Submit(ctx, answers(qs, 3, "12", "5S", 2))
		require.NoError(t, err)
	}
}

func TestQuizService_SubmitUnknownQuestionCountsWrong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedSkill(t, "5S")
	qs := env.seedQuestions(t, "sk01", model.DifficultyAdvance, 4)
	qs = append(qs, model.Question{QuestionID: "ghost"})

	res, err := env.Quiz.Submit(ctx, answers(qs, 5, "3", "sk01", 4))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Score)
	assert.Equal(t, 5, res.MaxScore)
	assert.Equal(t, 80, res.Percent)
	assert.Equal(t, StatusPass, res.Status)
	assert.Equal(t, 4, res.AchievedLevel)
}

func TestQuizService_AddQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := &model.Question{
		QuestionID: "q-1", SkillID: " SK01 ", Difficulty: "Basic",
		QuestionText: "What is seiri?", OptionA: "Sort", OptionB: "Shine",
		OptionC: "Set", OptionD: "Sustain", CorrectOption: "a",
	}
	require.NoError(t, env.Quiz.AddQuestion(ctx, q))
	assert.Equal(t, "sk01", q.SkillID)
	assert.Equal(t, "A", q.CorrectOption)

	dup := *q
	assert.ErrorIs(t, env.Quiz.AddQuestion(ctx, &dup), util.ErrQuestionExists)

	bad := &model.Question{QuestionID: "q-2", SkillID: "sk01", Difficulty: "expert", QuestionText: "x", CorrectOption: "A"}
	var ve *util.ValidationError
	assert.ErrorAs(t, env.Quiz.AddQuestion(ctx, bad), &ve)
}
