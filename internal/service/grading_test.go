package service

import (
	"testing"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedStatus(level, percent int) string {
	switch level {
	case 2:
		if percent >= 80 {
			return StatusEligibleL3
		}
		if percent >= 60 {
			return StatusPass
		}
	case 3:
		if percent > 80 {
			return StatusPass
		}
	case 4:
		if percent >= 60 {
			return StatusPass
		}
	}
	return StatusFail
}

func TestGradeStatus_AllLevelsAndPercents(t *testing.T) {
	for level := 2; level <= 4; level++ {
		for p := 0; p <= 100; p++ {
			got, err := GradeStatus(level, p)
			require.NoError(t, err)
			assert.Equal(t, expectedStatus(level, p), got, "level %d percent %d", level, p)
		}
	}
}

func TestGradeStatus_Boundaries(t *testing.T) {
	cases := []struct {
		level, percent int
		want           string
	}{
		{2, 59, StatusFail},
		{2, 60, StatusPass},
		{2, 79, StatusPass},
		{2, 80, StatusEligibleL3},
		{3, 80, StatusFail},
		{3, 81, StatusPass},
		{4, 59, StatusFail},
		{4, 60, StatusPass},
	}
	for _, tc := range cases {
		got, err := GradeStatus(tc.level, tc.percent)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "level %d percent %d", tc.level, tc.percent)
	}
}

func TestGradeStatus_RejectsUnassessedLevels(t *testing.T) {
	for _, level := range []int{0, 1, 5, -1} {
		_, err := GradeStatus(level, 90)
		assert.ErrorIs(t, err, util.ErrInvalidLevel)
	}
}

func TestAchievedLevel(t *testing.T) {
	assert.Equal(t, 3, AchievedLevel(3, StatusPass))
	assert.Equal(t, 4, AchievedLevel(4, StatusPass))
	assert.Equal(t, 2, AchievedLevel(2, StatusPass))
	assert.Equal(t, 2, AchievedLevel(2, StatusEligibleL3))
	assert.Equal(t, BaselineLevel, AchievedLevel(3, StatusFail))
}

func TestPercent(t *testing.T) {
	p, err := Percent(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 67, p)

	p, err = Percent(1, 8)
	require.NoError(t, err)
	assert.Equal(t, 13, p)

	_, err = Percent(0, 0)
	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestScoreAnswers(t *testing.T) {
	bank := map[string]model.Question{}
	var answers []model.AnswerSlot
	for i, letter := range []string{"A", "B", "C", "D", "A", "B", "C", "D", "A", "B"} {
		id := string(rune('a' + i))
		bank[id] = model.Question{QuestionID: id, CorrectOption: letter}
		selected := letter
		if i >= 8 {
			selected = "C"
		}
		answers = append(answers, model.AnswerSlot{QuestionID: id, SelectedLetter: selected})
	}

	res, err := ScoreAnswers(2, answers, bank)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Score)
	assert.Equal(t, 10, res.MaxScore)
	assert.Equal(t, 80, res.Percent)
	assert.Equal(t, StatusEligibleL3, res.Status)
	assert.Equal(t, 2, res.AchievedLevel)
}

func TestScoreAnswers_UnknownQuestionAndCase(t *testing.T) {
	bank := map[string]model.Question{"q1": {QuestionID: "q1", CorrectOption: "A"}}
	answers := []model.AnswerSlot{
		{QuestionID: "q1", SelectedLetter: "a"},
		{QuestionID: "missing", SelectedLetter: "A"},
	}
	res, err := ScoreAnswers(4, answers, bank)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, StatusFail, res.Status)
}

func TestScoreAnswers_Empty(t *testing.T) {
	_, err := ScoreAnswers(2, nil, nil)
	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestNextRetestFlag(t *testing.T) {
	next, err := NextRetestFlag("submitted")
	require.NoError(t, err)
	assert.Equal(t, "retest_1", next)

	next, err = NextRetestFlag(next)
	require.NoError(t, err)
	assert.Equal(t, "retest_2", next)

	next, err = NextRetestFlag("retest_9")
	require.NoError(t, err)
	assert.Equal(t, "retest_10", next)

	for _, bad := range []string{"retest_abc", "", "reset", "retest_", "Submitted"} {
		_, err := NextRetestFlag(bad)
		var sc *util.StateConflictError
		require.ErrorAs(t, err, &sc, "flag %q", bad)
		assert.Equal(t, bad, sc.CurrentFlag)
		assert.Contains(t, err.Error(), "current status flag")
	}
}
