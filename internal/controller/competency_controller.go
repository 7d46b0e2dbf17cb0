package controller

import (
	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CompetencyController struct {
	CompetencyService *service.CompetencyService
}

func NewCompetencyController(competencyService *service.CompetencyService) *CompetencyController {
	return &CompetencyController{CompetencyService: competencyService}
}

// @Summary 岗位能力表
// @Tags 岗位能力
// @Produce json
// @Success 200 {array} model.CompetencyMap
// @Router /competency_map [get]
func (c *CompetencyController) List(ctx *gin.Context) {
	maps, err := c.CompetencyService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, maps)
}

// @Summary 新增岗位
// @Tags 岗位能力
// @Accept json
// @Produce json
// @Param map body object true "{Role, Skills: {技能: 等级}}"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /competency_map [post]
func (c *CompetencyController) Create(ctx *gin.Context) {
	var p model.CompetencyPayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		util.BadRequest(ctx, "Role and Skills are required.")
		return
	}
	m, err := c.CompetencyService.Create(ctx.Request.Context(), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"success": true, "map": m})
}

// @Summary 更新岗位技能要求
// @Tags 岗位能力
// @Accept json
// @Produce json
// @Param role path string true "岗位"
// @Param map body object true "{Skills: {技能: 等级}}"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.Response
// @Router /competency_map/{role} [put]
func (c *CompetencyController) Update(ctx *gin.Context) {
	var p model.CompetencyPayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	m, err := c.CompetencyService.UpdateSkills(ctx.Request.Context(), ctx.Param("role"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true, "map": m})
}

// @Summary 删除岗位
// @Tags 岗位能力
// @Produce json
// @Param role path string true "岗位"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.Response
// @Router /competency_map/{role} [delete]
func (c *CompetencyController) Delete(ctx *gin.Context) {
	if err := c.CompetencyService.Delete(ctx.Request.Context(), ctx.Param("role")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}

// @Summary 岗位名称列表
// @Tags 岗位能力
// @Produce json
// @Success 200 {array} string
// @Router /roles [get]
func (c *CompetencyController) Roles(ctx *gin.Context) {
	roles, err := c.CompetencyService.Roles(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, roles)
}

// @Summary 岗位-技能要求扁平视图
// @Tags 岗位能力
// @Produce json
// @Success 200 {array} service.RoleCompetency
// @Router /role_competencies [get]
func (c *CompetencyController) RoleCompetencies(ctx *gin.Context) {
	rows, err := c.CompetencyService.RoleCompetencies(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
