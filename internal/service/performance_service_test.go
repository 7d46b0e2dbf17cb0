package service

import (
	"context"
	"testing"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceService_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedRole(t, "Assembler", map[string]int{"5S": 3, "Safety": 2})
	env.seedSkill(t, "5S")
	env.seedSkill(t, "Kaizen")
	basic := env.seedQuestions(t, "sk01", model.DifficultyBasic, 10)
	kaizen := env.seedQuestions(t, "sk02", model.DifficultyBasic, 5)

	emp, err := env.Employees.Create(ctx, payload(t, `{"name":"Asha","roles":["Assembler"],"email":"asha@example.com"}`))
	require.NoError(t, err)

	// 5S: L2 90% -> Eligible for L3 (2); L3 80% -> Fail (1)
	_, err = env.Quiz.Submit(ctx, answers(basic, 9, emp.EmployeeID, "5S", 2))
	require.NoError(t, err)
	_, err = env.Quiz.Submit(ctx, answers(basic, 8, emp.EmployeeID, "5S", 3))
	require.NoError(t, err)
	_, err = env.Quiz.Submit(ctx, answers(kaizen, 5, emp.EmployeeID, "Kaizen", 2))
	require.NoError(t, err)

	sum, err := env.Performance.Summary(ctx, emp.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assembler"}, sum.Roles)

	bySkill := make(map[string]SkillSummary)
	for _, s := range sum.Skills {
		bySkill[s.Skill] = s
	}
	require.Len(t, bySkill, 3)

	fiveS := bySkill["5S"]
	assert.Equal(t, "sk01", fiveS.SkillCode)
	assert.Equal(t, 3, fiveS.RequiredLevel)
	assert.Equal(t, 2, fiveS.AchievedLevel)
	assert.Equal(t, 1, fiveS.Gap)
	assert.Equal(t, 2, fiveS.Attempts)
	assert.Equal(t, 90, fiveS.BestPercent)
	assert.Equal(t, StatusFail, fiveS.LatestStatus)
	assert.Equal(t, 3, fiveS.LatestLevel)

	safety := bySkill["Safety"]
	assert.Equal(t, 2, safety.Gap)
	assert.Zero(t, safety.Attempts)

	extra := bySkill["Kaizen"]
	assert.Zero(t, extra.RequiredLevel)
	assert.Equal(t, 2, extra.AchievedLevel)
	assert.Zero(t, extra.Gap)

	assert.Equal(t, "Safety", sum.Skills[0].Skill)

	_, err = env.Performance.Summary(ctx, "404")
	assert.ErrorIs(t, err, util.ErrEmployeeNotFound)
}
