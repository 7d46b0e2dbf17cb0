package controller

import (
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RetestController struct {
	RetestService *service.RetestService
}

func NewRetestController(retestService *service.RetestService) *RetestController {
	return &RetestController{RetestService: retestService}
}

// @Summary 授权重测
// @Description 把最近一次作答的状态从 submitted 推进到 retest_1，或从 retest_N 推进到 retest_N+1
// @Tags 测验
// @Accept json
// @Produce json
// @Param body body service.RetestRequest true "员工、技能、等级"
// @Success 200 {object} service.RetestResult
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /retest-allow [post]
func (c *RetestController) Allow(ctx *gin.Context) {
	var req service.RetestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.RetestService.Allow(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
