package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindMatching 技能代码和难度均做去空格、不区分大小写匹配
func (r *QuestionRepository) FindMatching(ctx context.Context, skillCode, difficulty string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Where("LOWER(TRIM(skill_id)) = ? AND LOWER(TRIM(difficulty)) = ?",
			model.NormalizeSkillCode(skillCode),
			strings.ToLower(strings.TrimSpace(difficulty))).
		Order("id asc").
		Find(&qs).Error
	return qs, err
}

// FindByQuestionIDs 返回 question_id -> 题目
func (r *QuestionRepository) FindByQuestionIDs(ctx context.Context, ids []string) (map[string]model.Question, error) {
	out := make(map[string]model.Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var qs []model.Question
	if err := r.DB.WithContext(ctx).Where("question_id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, err
	}
	for _, q := range qs {
		out[q.QuestionID] = q
	}
	return out, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	err := r.DB.WithContext(ctx).Create(q).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", util.ErrQuestionExists, q.QuestionID)
	}
	return err
}

// Upsert 按 question_id 覆盖题目内容（批量导入）
func (r *QuestionRepository) Upsert(ctx context.Context, qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"skill_id", "difficulty", "question_number", "question_text",
			"option_a", "option_b", "option_c", "option_d", "correct_option", "updated_at",
		}),
	}).CreateInBatches(qs, 100).Error
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Question{}).Count(&n).Error
	return n, err
}
