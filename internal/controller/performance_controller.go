package controller

import (
	"strings"

	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PerformanceController struct {
	PerformanceService *service.PerformanceService
}

func NewPerformanceController(performanceService *service.PerformanceService) *PerformanceController {
	return &PerformanceController{PerformanceService: performanceService}
}

// @Summary 评分日志
// @Tags 绩效
// @Produce json
// @Param employee_id query string false "员工编号"
// @Param skill query string false "技能代码或名称"
// @Success 200 {array} model.ScoreLog
// @Router /performance/employee_assessment_results/all [get]
func (c *PerformanceController) Results(ctx *gin.Context) {
	logs, err := c.PerformanceService.Results(ctx.Request.Context(), repository.ScoreLogFilter{
		EmployeeID: strings.TrimSpace(ctx.Query("employee_id")),
		Skill:      strings.TrimSpace(ctx.Query("skill")),
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// @Summary 员工技能差距汇总
// @Tags 绩效
// @Produce json
// @Param id path string true "员工编号"
// @Success 200 {object} service.EmployeeSummary
// @Failure 404 {object} util.Response
// @Router /performance/employee/{id}/summary [get]
func (c *PerformanceController) Summary(ctx *gin.Context) {
	sum, err := c.PerformanceService.Summary(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sum)
}
