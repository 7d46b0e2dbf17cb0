package util

import (
	"strconv"
	"strings"
)

// ParseLevel 解析被测等级，只接受 2、3、4（0、1 级不测评）
func ParseLevel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, NewValidationError("level", "level is required")
	}
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewValidationError("level", "level must be an integer")
	}
	if !IsAssessedLevel(level) {
		return 0, ErrInvalidLevel
	}
	return level, nil
}

func IsAssessedLevel(level int) bool {
	return level >= MinAssessedLevel && level <= MaxAssessedLevel
}

// ParseCount 解析题目数量，非法或非正数时返回默认值
func ParseCount(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
