package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/util"
)

const (
	StatusEligibleL3 = "Eligible for L3"
	StatusPass       = "Pass"
	StatusFail       = "Fail"
)

// BaselineLevel 未通过测评时记入的等级
const BaselineLevel = 1

// GradeStatus 由等级和百分比得出评分结果。
// 3 级恰好 80 分判为 Fail，与 2 级不同。
func GradeStatus(level, percent int) (string, error) {
	switch level {
	case 2:
		switch {
		case percent >= 80:
			return StatusEligibleL3, nil
		case percent >= 60:
			return StatusPass, nil
		}
		return StatusFail, nil
	case 3:
		if percent > 80 {
			return StatusPass, nil
		}
		return StatusFail, nil
	case 4:
		if percent >= 60 {
			return StatusPass, nil
		}
		return StatusFail, nil
	}
	return "", util.ErrInvalidLevel
}

// AchievedLevel 评分结果对应的实际等级：Pass 记为测评等级，
// Eligible for L3 记为 2，Fail 记为基线 1。
func AchievedLevel(level int, status string) int {
	switch status {
	case StatusPass:
		return level
	case StatusEligibleL3:
		return 2
	}
	return BaselineLevel
}

// Percent 四舍五入到整数，total 为 0 时报错
func Percent(correct, total int) (int, error) {
	if total <= 0 {
		return 0, util.ErrNoQuestions
	}
	return int(math.Round(100 * float64(correct) / float64(total))), nil
}

type GradeResult struct {
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
	Percent       int    `json:"percent"`
	Status        string `json:"status"`
	AchievedLevel int    `json:"achieved_level"`
}

// ScoreAnswers 按字母精确比较计分，题库中不存在的题目计为错误
func ScoreAnswers(level int, answers []model.AnswerSlot, bank map[string]model.Question) (GradeResult, error) {
	correct := 0
	for _, a := range answers {
		q, ok := bank[a.QuestionID]
		if ok && a.SelectedLetter == q.CorrectOption {
			correct++
		}
	}

	percent, err := Percent(correct, len(answers))
	if err != nil {
		return GradeResult{}, err
	}
	status, err := GradeStatus(level, percent)
	if err != nil {
		return GradeResult{}, err
	}
	return GradeResult{
		Score:         correct,
		MaxScore:      len(answers),
		Percent:       percent,
		Status:        status,
		AchievedLevel: AchievedLevel(level, status),
	}, nil
}

var retestFlagPattern = regexp.MustCompile(`^retest_(\d+)$`)

// NextRetestFlag submitted -> retest_1, retest_N -> retest_N+1，其余拒绝
func NextRetestFlag(current string) (string, error) {
	if current == model.FlagSubmitted {
		return model.RetestFlagPrefix + "1", nil
	}
	m := retestFlagPattern.FindStringSubmatch(current)
	if m == nil {
		return "", &util.StateConflictError{CurrentFlag: current}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", &util.StateConflictError{CurrentFlag: current}
	}
	return fmt.Sprintf("%s%d", model.RetestFlagPrefix, n+1), nil
}

// IsRetestFlag 表示已授权重测
func IsRetestFlag(flag string) bool {
	return retestFlagPattern.MatchString(flag)
}
