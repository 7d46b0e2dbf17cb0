package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	FlagSubmitted    = "submitted"
	RetestFlagPrefix = "retest_"

	// MaxAnswerSlots 一次作答最多 10 题
	MaxAnswerSlots = 10
)

// AnswerSlot 一道题的作答快照
type AnswerSlot struct {
	QuestionID     string   `json:"question_id"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	SelectedLetter string   `json:"selected_letter"`
}

// Submission 一次测验作答，只追加；重测授权只改 StatusFlag
// swagger:model Submission
type Submission struct {
	ID               uint                            `gorm:"primaryKey;autoIncrement" json:"-"`
	AttemptID        string                          `gorm:"size:36;uniqueIndex;not null" json:"attempt_id"`
	EmployeeID       string                          `gorm:"size:64;index:idx_submission_triple,priority:1;not null" json:"employee_id"`
	EmployeeName     string                          `gorm:"size:255" json:"employee_name"`
	EmployeePosition string                          `gorm:"size:255" json:"employee_position"`
	Skill            string                          `gorm:"size:32;index:idx_submission_triple,priority:2;not null" json:"skill"`
	SkillName        string                          `gorm:"size:255" json:"skill_name"`
	Level            int                             `gorm:"index:idx_submission_triple,priority:3;not null" json:"level"`
	Answers          datatypes.JSONSlice[AnswerSlot] `json:"answers"`
	StatusFlag       string                          `gorm:"size:32;not null;default:'submitted'" json:"status_flag"`
	CreatedAt        time.Time                       `json:"timestamp"`
	UpdatedAt        time.Time                       `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ScoreLog 评分审计记录，只追加
// swagger:model ScoreLog
type ScoreLog struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	AttemptID        string    `gorm:"size:36;index" json:"attempt_id"`
	EmployeeID       string    `gorm:"size:64;index;not null" json:"employee_id"`
	EmployeeName     string    `gorm:"size:255" json:"employee_name"`
	EmployeePosition string    `gorm:"size:255" json:"employee_position"`
	Skill            string    `gorm:"size:32;index;not null" json:"skill"`
	SkillName        string    `gorm:"size:255" json:"skill_name"`
	Level            int       `gorm:"not null" json:"level"`
	Score            int       `json:"score"`
	MaxScore         int       `json:"max_score"`
	Percent          int       `json:"percent"`
	Status           string    `gorm:"size:32;not null" json:"status"`
	AchievedLevel    int       `json:"achieved_level"`
	CreatedAt        time.Time `json:"timestamp"`
}

func (ScoreLog) TableName() string {
	return "score_logs"
}
