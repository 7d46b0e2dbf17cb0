package controller

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MCQController struct {
	QuizService   *service.QuizService
	ImportService *service.QuestionImportService
}

func NewMCQController(quizService *service.QuizService, importService *service.QuestionImportService) *MCQController {
	return &MCQController{QuizService: quizService, ImportService: importService}
}

// @Summary 随机抽题
// @Description 按技能代码和等级抽取题目，不返回正确答案。4 级为 advance，其余为 basic
// @Tags 测验
// @Produce json
// @Param skill_id query string true "技能代码"
// @Param level query int true "等级 2/3/4"
// @Param count query int false "题目数量，默认 10"
// @Success 200 {object} map[string][]model.QuestionView
// @Failure 400 {object} util.Response
// @Router /mcq/questions [get]
func (c *MCQController) Questions(ctx *gin.Context) {
	level, err := util.ParseLevel(ctx.Query("level"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	// 0 交给服务层取默认值
	count := util.ParseCount(ctx.Query("count"), 0, 0)

	questions, err := c.QuizService.Questions(ctx.Request.Context(), ctx.Query("skill_id"), level, count)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions})
}

type CreateQuestionRequest struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SkillID        string `json:"skill_id" binding:"required,skillcode"`
	Difficulty     string `json:"difficulty" binding:"required,oneof=basic advance"`
	QuestionNumber string `json:"question_number"`
	QuestionText   string `json:"question_text" binding:"required"`
	OptionA        string `json:"option_a" binding:"required"`
	OptionB        string `json:"option_b" binding:"required"`
	OptionC        string `json:"option_c"`
	OptionD        string `json:"option_d"`
	CorrectOption  string `json:"correct_option" binding:"required,oneof=A B C D"`
}

// @Summary 新增题目
// @Tags 测验
// @Accept json
// @Produce json
// @Param question body CreateQuestionRequest true "题目"
// @Success 201 {object} model.Question
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /mcq/questions [post]
func (c *MCQController) CreateQuestion(ctx *gin.Context) {
	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q := &model.Question{
		QuestionID:     req.QuestionID,
		SkillID:        req.SkillID,
		Difficulty:     req.Difficulty,
		QuestionNumber: req.QuestionNumber,
		QuestionText:   req.QuestionText,
		OptionA:        req.OptionA,
		OptionB:        req.OptionB,
		OptionC:        req.OptionC,
		OptionD:        req.OptionD,
		CorrectOption:  req.CorrectOption,
	}
	if err := c.QuizService.AddQuestion(ctx.Request.Context(), q); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary 导入题库工作簿
// @Description 列顺序：question_id, skill_id, difficulty, question_number, question_text, A, B, C, D, correct_option
// @Tags 测验
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx 工作簿"
// @Param sheet formData string false "工作表名，默认 Sheet1"
// @Param start_row formData int false "起始行，默认 2"
// @Success 200 {object} service.QuestionImportResult
// @Failure 400 {object} util.Response
// @Router /mcq/questions/import [post]
func (c *MCQController) ImportQuestions(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > util.MaxWorkbookSize {
		util.Error(ctx, http.StatusRequestEntityTooLarge, "workbook too large")
		return
	}
	if !util.IsWorkbook(fileHeader.Filename) {
		util.BadRequest(ctx, "unsupported file extension "+filepath.Ext(fileHeader.Filename))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	if _, err := util.ValidateMimeType(file, []string{util.MimeZip, util.MimeXLSX}); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	cfg := service.DefaultQuestionImportConfig()
	if sheet := strings.TrimSpace(ctx.PostForm("sheet")); sheet != "" {
		cfg.SheetName = sheet
	}
	if n, err := strconv.Atoi(ctx.PostForm("start_row")); err == nil && n > 0 {
		cfg.StartRow = n
	}

	result, err := c.ImportService.Import(ctx.Request.Context(), file, cfg)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交作答
// @Description 评分后在同一事务中写入作答记录和评分日志
// @Tags 测验
// @Accept json
// @Produce json
// @Param answers body service.SubmitRequest true "最多 10 道题的作答"
// @Success 200 {object} service.SubmitResult
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /mcq/submit-answers [post]
func (c *MCQController) SubmitAnswers(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.QuizService.Submit(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 作答记录
// @Tags 测验
// @Produce json
// @Param employee_id query string false "员工编号"
// @Param skill query string false "技能代码或名称"
// @Param level query int false "等级"
// @Success 200 {object} map[string][]service.SubmittedAnswers
// @Router /mcq/submitted-answers [get]
func (c *MCQController) SubmittedAnswers(ctx *gin.Context) {
	f := repository.SubmissionFilter{
		EmployeeID: strings.TrimSpace(ctx.Query("employee_id")),
		Skill:      strings.TrimSpace(ctx.Query("skill")),
	}
	if lv := strings.TrimSpace(ctx.Query("level")); lv != "" {
		level, err := util.ParseLevel(lv)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		f.Level = level
	}
	subs, err := c.QuizService.SubmittedAnswers(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"submissions": subs})
}

type EligibilityQuery struct {
	EmployeeID string `form:"employee_id" binding:"required"`
	Skill      string `form:"skill" binding:"required"`
	Level      int    `form:"level" binding:"required,assesslevel"`
}

// @Summary 是否允许作答
// @Tags 测验
// @Produce json
// @Param employee_id query string true "员工编号"
// @Param skill query string true "技能代码或名称"
// @Param level query int true "等级"
// @Success 200 {object} service.Eligibility
// @Failure 400 {object} util.Response
// @Router /mcq/eligibility [get]
func (c *MCQController) Eligibility(ctx *gin.Context) {
	var q EligibilityQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	e, err := c.QuizService.Eligibility(ctx.Request.Context(), q.EmployeeID, q.Skill, q.Level)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}
