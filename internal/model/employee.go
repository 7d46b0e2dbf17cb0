package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// SkillLevel 员工在某技能上的要求等级
type SkillLevel struct {
	Skill string `json:"skill"`
	Level int    `json:"level"`
}

func (s *SkillLevel) UnmarshalJSON(b []byte) error {
	var raw struct {
		Skill string  `json:"skill"`
		Level FlexInt `json:"level"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Skill = strings.TrimSpace(raw.Skill)
	s.Level = int(raw.Level)
	return nil
}

// swagger:model Employee
type Employee struct {
	BaseModel
	EmployeeID string                          `gorm:"size:64;uniqueIndex;not null" json:"employee_id"`
	Name       string                          `gorm:"size:255;not null" json:"name"`
	Department string                          `gorm:"size:255" json:"department"`
	Roles      datatypes.JSONSlice[string]     `json:"roles"`
	Skills     datatypes.JSONSlice[SkillLevel] `json:"skills"`
	Email      string                          `gorm:"size:255;uniqueIndex;not null" json:"email"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeePayload 员工写入请求。
// 历史数据字段名不统一，这里统一吸收别名：
// Employee/name, Department/department/designation, Roles/roles, Skills/skills。
type EmployeePayload struct {
	EmployeeID string
	Name       string
	Department string
	Email      string
	Roles      []string
	Skills     []SkillLevel

	// RolesSet 表示请求中带了数组类型的 roles
	RolesSet bool
	// SkillsSet 表示请求中带了数组类型的 skills
	SkillsSet bool
}

func (p *EmployeePayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = EmployeePayload{}

	if v, ok := firstKey(raw, "employee_id", "employeeId", "emp_id"); ok {
		var id FlexString
		if err := json.Unmarshal(v, &id); err != nil {
			return fmt.Errorf("employee_id: %w", err)
		}
		p.EmployeeID = NormalizeEmployeeID(string(id))
	}

	p.Name = stringField(raw, "name", "Employee", "employee_name")
	p.Department = stringField(raw, "department", "Department", "designation")
	p.Email = NormalizeEmail(stringField(raw, "email", "Email"))

	if v, ok := firstKey(raw, "roles", "Roles"); ok && isArray(v) {
		var roles []string
		if err := json.Unmarshal(v, &roles); err != nil {
			return fmt.Errorf("roles: %w", err)
		}
		p.Roles = cleanRoles(roles)
		p.RolesSet = true
	}

	if v, ok := firstKey(raw, "skills", "Skills"); ok && isArray(v) {
		var skills []SkillLevel
		if err := json.Unmarshal(v, &skills); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		p.Skills = skills
		p.SkillsSet = true
	}

	return nil
}

func cleanRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
