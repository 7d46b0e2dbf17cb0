package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/pkg/database"
	"skill_matrix_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var importQuestionsCmd = &cobra.Command{
	Use:   "import-questions",
	Short: "Import the question bank from an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		sheet, _ := cmd.Flags().GetString("sheet")
		startRow, _ := cmd.Flags().GetInt("start-row")
		if file == "" {
			return fmt.Errorf("--file is required")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer closeDB(db)

		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		svc := service.NewQuestionImportService(repository.NewQuestionRepository(db), service.NewRuntime(cfg))
		res, err := svc.Import(context.Background(), f, service.QuestionImportConfig{SheetName: sheet, StartRow: startRow})
		if err != nil {
			return fmt.Errorf("import questions: %w", err)
		}

		fmt.Printf("processed %d, imported %d, skipped %d\n", res.TotalProcessed, res.Imported, res.Skipped)
		for _, e := range res.Errors {
			fmt.Println("  " + e)
		}
		return nil
	},
}

var importLegacyCmd = &cobra.Command{
	Use:   "import-legacy",
	Short: "Import employees, skills and competency maps from legacy JSON exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		employees, _ := cmd.Flags().GetString("employees")
		skills, _ := cmd.Flags().GetString("skills")
		maps, _ := cmd.Flags().GetString("competency-map")
		if employees == "" && skills == "" && maps == "" {
			return fmt.Errorf("at least one of --employees, --skills, --competency-map is required")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer closeDB(db)

		svc := service.NewLegacyImportService(
			repository.NewEmployeeRepository(db),
			repository.NewSkillRepository(db),
			repository.NewCompetencyMapRepository(db),
			service.NewRuntime(cfg),
		)
		ctx := context.Background()

		// 先导入技能和岗位，员工缺省技能时依赖岗位能力表推导
		steps := []struct {
			name string
			path string
			run  func(context.Context, io.Reader) (*service.LegacyImportResult, error)
		}{
			{"skills", skills, svc.ImportSkills},
			{"competency maps", maps, svc.ImportCompetencyMaps},
			{"employees", employees, svc.ImportEmployees},
		}
		for _, step := range steps {
			if step.path == "" {
				continue
			}
			res, err := importFile(ctx, step.path, step.run)
			if err != nil {
				return fmt.Errorf("import %s: %w", step.name, err)
			}
			fmt.Printf("%s: created %d, skipped %d\n", step.name, res.Created, res.Skipped)
			for _, e := range res.Errors {
				fmt.Println("  " + e)
			}
		}
		return nil
	},
}

func importFile(ctx context.Context, path string, run func(context.Context, io.Reader) (*service.LegacyImportResult, error)) (*service.LegacyImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return run(ctx, f)
}

func init() {
	importQuestionsCmd.Flags().String("file", "", "xlsx 工作簿路径")
	importQuestionsCmd.Flags().String("sheet", "Sheet1", "工作表名")
	importQuestionsCmd.Flags().Int("start-row", 2, "数据起始行（1 开始）")

	importLegacyCmd.Flags().String("employees", "", "员工 JSON 导出文件")
	importLegacyCmd.Flags().String("skills", "", "技能 JSON 导出文件")
	importLegacyCmd.Flags().String("competency-map", "", "岗位能力表 JSON 导出文件")
}
