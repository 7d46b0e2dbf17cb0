package cmd

import (
	"fmt"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillmatrix",
	Short: "Employee skill assessment backend",
	Long:  "skillmatrix 提供员工技能测评服务：员工档案、岗位能力表、题库抽题、评分和重测授权。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs", "配置目录（包含 config.yaml）")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importQuestionsCmd)
	rootCmd.AddCommand(importLegacyCmd)
}

// loadConfig 读取配置并初始化日志，所有子命令共用
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.InitLogger(cfg)
	return cfg, nil
}
