package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// QuestionImportConfig 工作簿列布局：
// A question_id, B skill_id, C difficulty, D question_number, E question_text,
// F-I option A-D, J correct_option
type QuestionImportConfig struct {
	SheetName string
	StartRow  int
}

func DefaultQuestionImportConfig() QuestionImportConfig {
	return QuestionImportConfig{
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

type QuestionImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Imported       int      `json:"imported"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

type QuestionImportService struct {
	QuestionRepo *repository.QuestionRepository
	Runtime      *Runtime
}

func NewQuestionImportService(questionRepo *repository.QuestionRepository, rt *Runtime) *QuestionImportService {
	return &QuestionImportService{QuestionRepo: questionRepo, Runtime: rt}
}

// Import 读取工作簿并按 question_id 覆盖写入；坏行记录错误后跳过
func (s *QuestionImportService) Import(ctx context.Context, r io.Reader, cfg QuestionImportConfig) (*QuestionImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, util.NewValidationError("file", fmt.Sprintf("failed to open workbook: %v", err))
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, util.NewValidationError("sheet", fmt.Sprintf("failed to get rows: %v", err))
	}
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}

	result := &QuestionImportResult{Errors: make([]string, 0)}
	batch := make([]model.Question, 0, len(rows))
	seen := make(map[string]int)

	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		q, err := questionFromRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		// 同一工作簿内重复的题号以最后一行为准
		if idx, ok := seen[q.QuestionID]; ok {
			batch[idx] = q
			result.Skipped++
			continue
		}
		seen[q.QuestionID] = len(batch)
		batch = append(batch, q)
	}

	err = s.Runtime.do(ctx, "question.upsert", func(ctx context.Context) error {
		return s.QuestionRepo.Upsert(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	result.Imported = len(batch)

	logger.Log.Info("Question workbook imported",
		zap.String("sheet", sheet),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func questionFromRow(row []string) (model.Question, error) {
	q := model.Question{
		QuestionID:     cell(row, 0),
		SkillID:        cell(row, 1),
		Difficulty:     cell(row, 2),
		QuestionNumber: cell(row, 3),
		QuestionText:   cell(row, 4),
		OptionA:        cell(row, 5),
		OptionB:        cell(row, 6),
		OptionC:        cell(row, 7),
		OptionD:        cell(row, 8),
		CorrectOption:  cell(row, 9),
	}
	// 正确答案也可能写成选项原文
	if letter := q.LetterFor(q.CorrectOption); letter != "" && len(q.CorrectOption) > 1 {
		q.CorrectOption = letter
	}
	if err := normalizeQuestion(&q); err != nil {
		return q, err
	}
	return q, nil
}
