package app

import (
	"skill_matrix_backend/docs"
	"skill_matrix_backend/internal/middleware"
	"skill_matrix_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	a.registerEmployeeRoutes(api, c)
	a.registerCompetencyRoutes(api, c)
	a.registerAssessmentRoutes(api, c)
}

func (a *App) registerEmployeeRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/employees", c.employee.List)
	api.GET("/employee_skills_levels", c.employee.List)
	api.POST("/employee_skills_levels", c.employee.Create)

	employee := api.Group("/employee")
	{
		employee.GET("/roles", c.employee.Roles)
		employee.GET("/skills/:id", c.employee.Skills)
		employee.GET("/:id", c.employee.Get)
		employee.GET("/:id/skills", c.employee.Skills)
		employee.PUT("/:id", c.employee.Update)
		employee.DELETE("/:id", c.employee.Delete)
	}

	api.GET("/employee-by-email/:email", c.employee.GetByEmail)
	api.GET("/employee-id-by-email/:email", c.employee.IDByEmail)
	api.GET("/employee-emails", c.employee.Emails)
	api.GET("/employee-skills", c.employee.AllSkills)
}

func (a *App) registerCompetencyRoutes(api *gin.RouterGroup, c *controllers) {
	skills := api.Group("/skills")
	{
		skills.GET("", c.skill.List)
		skills.POST("", c.skill.Create)
		skills.GET("/:code", c.skill.Get)
	}

	competency := api.Group("/competency_map")
	{
		competency.GET("", c.competency.List)
		competency.POST("", c.competency.Create)
		competency.PUT("/:role", c.competency.Update)
		competency.DELETE("/:role", c.competency.Delete)
	}

	api.GET("/roles", c.competency.Roles)
	api.GET("/role_competencies", c.competency.RoleCompetencies)
}

func (a *App) registerAssessmentRoutes(api *gin.RouterGroup, c *controllers) {
	mcq := api.Group("/mcq")
	{
		// 题目每次随机抽取，禁止缓存
		mcq.GET("/questions", middleware.NoCache(), c.mcq.Questions)
		mcq.POST("/questions", c.mcq.CreateQuestion)
		mcq.POST("/questions/import", c.mcq.ImportQuestions)
		mcq.POST("/submit-answers", c.mcq.SubmitAnswers)
		mcq.GET("/submitted-answers", c.mcq.SubmittedAnswers)
		mcq.GET("/eligibility", c.mcq.Eligibility)
	}

	api.POST("/retest-allow", c.retest.Allow)

	performance := api.Group("/performance")
	{
		performance.GET("/employee_assessment_results/all", c.performance.Results)
		performance.GET("/employee/:id/summary", c.performance.Summary)
	}
}
