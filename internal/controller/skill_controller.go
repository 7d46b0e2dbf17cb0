package controller

import (
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

type CreateSkillRequest struct {
	Name string `json:"name"`
}

// @Summary 技能列表
// @Tags 技能
// @Produce json
// @Success 200 {array} model.Skill
// @Router /skills [get]
func (c *SkillController) List(ctx *gin.Context) {
	skills, err := c.SkillService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// @Summary 按代码获取技能
// @Tags 技能
// @Produce json
// @Param code path string true "技能代码，如 sk01"
// @Success 200 {object} model.Skill
// @Failure 404 {object} util.Response
// @Router /skills/{code} [get]
func (c *SkillController) Get(ctx *gin.Context) {
	skill, err := c.SkillService.Get(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// @Summary 新增技能
// @Description 代码按 sk01、sk02… 自动分配
// @Tags 技能
// @Accept json
// @Produce json
// @Param skill body CreateSkillRequest true "技能名称"
// @Success 201 {object} model.Skill
// @Failure 400 {object} util.Response
// @Router /skills [post]
func (c *SkillController) Create(ctx *gin.Context) {
	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Skill name is required.")
		return
	}
	skill, err := c.SkillService.Create(ctx.Request.Context(), req.Name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}
