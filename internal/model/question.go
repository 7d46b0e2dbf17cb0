package model

import "strings"

const (
	DifficultyBasic   = "basic"
	DifficultyAdvance = "advance"
)

// DifficultyForLevel 难度由等级推导：4 级为 advance，其余为 basic
func DifficultyForLevel(level int) string {
	if level == 4 {
		return DifficultyAdvance
	}
	return DifficultyBasic
}

// OptionLetters 选项顺序对应 A-D
var OptionLetters = []string{"A", "B", "C", "D"}

// swagger:model Question
type Question struct {
	BaseModel
	QuestionID     string `gorm:"size:64;uniqueIndex;not null" json:"question_id"`
	SkillID        string `gorm:"size:32;index;not null" json:"skill_id"`
	Difficulty     string `gorm:"size:16;index;not null" json:"difficulty"`
	QuestionNumber string `gorm:"size:32" json:"question_number"`
	QuestionText   string `gorm:"type:text;not null" json:"question_text"`
	OptionA        string `gorm:"type:text" json:"option_a"`
	OptionB        string `gorm:"type:text" json:"option_b"`
	OptionC        string `gorm:"type:text" json:"option_c"`
	OptionD        string `gorm:"type:text" json:"option_d"`
	CorrectOption  string `gorm:"size:4;not null" json:"correct_option"`
}

func (Question) TableName() string {
	return "questions"
}

func (q Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// LetterFor 把选项文本映射为字母，找不到返回空串
func (q Question) LetterFor(option string) string {
	for i, opt := range q.Options() {
		if opt != "" && opt == option {
			return OptionLetters[i]
		}
	}
	return ""
}

// QuestionView 发给作答端的题目，不含正确答案
type QuestionView struct {
	QuestionID     string   `json:"question_id"`
	SkillID        string   `json:"skill_id"`
	Difficulty     string   `json:"difficulty"`
	QuestionNumber string   `json:"question_number"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
}

func (q Question) View() QuestionView {
	return QuestionView{
		QuestionID:     q.QuestionID,
		SkillID:        q.SkillID,
		Difficulty:     q.Difficulty,
		QuestionNumber: q.QuestionNumber,
		QuestionText:   q.QuestionText,
		Options:        q.Options(),
	}
}

// NormalizeSkillCode 技能代码比较前去空格并小写
func NormalizeSkillCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
