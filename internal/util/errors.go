package util

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrEmployeeIDTaken     = errors.New("employee id already exists")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillCodeTaken      = errors.New("skill code already exists")
	ErrRoleNotFound        = errors.New("role not found")
	ErrRoleExists          = errors.New("role already exists")
	ErrQuestionExists      = errors.New("question already exists")
	ErrNoQuestions         = errors.New("no questions to grade")
	ErrInvalidLevel        = errors.New("level must be 2, 3 or 4")
	ErrRetestNotAuthorized = errors.New("test already submitted; a retest must be authorized first")
	ErrUnavailable         = errors.New("store temporarily unavailable")
)

// ValidationError 输入校验失败（400）
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StateConflictError 重测授权时状态标记不允许迁移（409）
type StateConflictError struct {
	CurrentFlag string
	Reason      string
}

func (e *StateConflictError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("cannot allow retest: current status flag is %q", e.CurrentFlag)
}
