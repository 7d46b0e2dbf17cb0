package middleware

import (
	"regexp"
	"strings"

	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var skillCodeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// RegisterValidators 注册请求绑定用的自定义校验标签
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("skillcode", validateSkillCode); err != nil {
		return err
	}
	return v.RegisterValidation("assesslevel", validateAssessLevel)
}

func validateSkillCode(fl validator.FieldLevel) bool {
	return skillCodeRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateAssessLevel(fl validator.FieldLevel) bool {
	return util.IsAssessedLevel(int(fl.Field().Int()))
}
