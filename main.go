// @title Skill Matrix 后端 API
// @version 1.0
// @description 员工技能测评后端：员工档案、岗位能力表、题库抽题、评分和重测授权。

// @contact.name API支持

// @host localhost:8080
// @BasePath /api

package main

import (
	"os"

	"skill_matrix_backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
