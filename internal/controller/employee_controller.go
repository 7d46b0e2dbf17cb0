package controller

import (
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EmployeeController struct {
	EmployeeService *service.EmployeeService
}

func NewEmployeeController(employeeService *service.EmployeeService) *EmployeeController {
	return &EmployeeController{EmployeeService: employeeService}
}

// @Summary 员工列表
// @Tags 员工
// @Produce json
// @Success 200 {array} model.Employee
// @Router /employees [get]
func (c *EmployeeController) List(ctx *gin.Context) {
	employees, err := c.EmployeeService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, employees)
}

// @Summary 按编号获取员工
// @Description 编号可以是字符串或数字形式，"007" 与 "7" 等价
// @Tags 员工
// @Produce json
// @Param id path string true "员工编号"
// @Success 200 {object} model.Employee
// @Failure 404 {object} util.Response
// @Router /employee/{id} [get]
func (c *EmployeeController) Get(ctx *gin.Context) {
	emp, err := c.EmployeeService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, emp)
}

// @Summary 按邮箱获取员工
// @Tags 员工
// @Produce json
// @Param email path string true "邮箱，不区分大小写"
// @Success 200 {object} model.Employee
// @Failure 404 {object} util.Response
// @Router /employee-by-email/{email} [get]
func (c *EmployeeController) GetByEmail(ctx *gin.Context) {
	emp, err := c.EmployeeService.GetByEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, emp)
}

// @Summary 按邮箱获取员工编号
// @Tags 员工
// @Produce json
// @Param email path string true "邮箱"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.Response
// @Router /employee-id-by-email/{email} [get]
func (c *EmployeeController) IDByEmail(ctx *gin.Context) {
	id, err := c.EmployeeService.IDByEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"employee_id": id})
}

// @Summary 有邮箱的员工
// @Tags 员工
// @Produce json
// @Success 200 {array} model.Employee
// @Router /employee-emails [get]
func (c *EmployeeController) Emails(ctx *gin.Context) {
	employees, err := c.EmployeeService.WithEmail(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, employees)
}

// @Summary 新增员工
// @Description 编号由服务端分配；未提供 skills 时按岗位能力表推导
// @Tags 员工
// @Accept json
// @Produce json
// @Param employee body object true "员工信息，兼容 Employee/name、Roles/roles 等字段名"
// @Success 201 {object} model.Employee
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /employee_skills_levels [post]
func (c *EmployeeController) Create(ctx *gin.Context) {
	var p model.EmployeePayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	emp, err := c.EmployeeService.Create(ctx.Request.Context(), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, emp)
}

// @Summary 更新员工
// @Description Roles 必须为数组；name/email 非空时替换，Skills 为数组时替换
// @Tags 员工
// @Accept json
// @Produce json
// @Param id path string true "员工编号"
// @Param employee body object true "更新内容"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /employee/{id} [put]
func (c *EmployeeController) Update(ctx *gin.Context) {
	var p model.EmployeePayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	emp, err := c.EmployeeService.Update(ctx.Request.Context(), ctx.Param("id"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Employee updated", "employee": emp})
}

// @Summary 删除员工
// @Tags 员工
// @Produce json
// @Param id path string true "员工编号"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.Response
// @Router /employee/{id} [delete]
func (c *EmployeeController) Delete(ctx *gin.Context) {
	emp, err := c.EmployeeService.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Employee deleted", "employee": emp})
}

// @Summary 员工岗位
// @Tags 员工
// @Produce json
// @Param id query string false "员工编号"
// @Param name query string false "员工姓名，不区分大小写"
// @Success 200 {object} service.EmployeeRolesView
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /employee/roles [get]
func (c *EmployeeController) Roles(ctx *gin.Context) {
	view, err := c.EmployeeService.Roles(ctx.Request.Context(),
		strings.TrimSpace(ctx.Query("id")),
		strings.TrimSpace(ctx.Query("name")),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 员工技能
// @Tags 员工
// @Produce json
// @Param id path string true "员工编号"
// @Success 200 {object} service.EmployeeSkillsView
// @Failure 404 {object} util.Response
// @Router /employee/skills/{id} [get]
func (c *EmployeeController) Skills(ctx *gin.Context) {
	view, err := c.EmployeeService.Skills(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 所有员工的技能
// @Tags 员工
// @Produce json
// @Success 200 {array} service.EmployeeSkillsView
// @Router /employee-skills [get]
func (c *EmployeeController) AllSkills(ctx *gin.Context) {
	views, err := c.EmployeeService.AllSkills(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, views)
}
