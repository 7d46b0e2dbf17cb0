package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// swagger:model Skill
type Skill struct {
	BaseModel
	Code string `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:255;index;not null" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

// CompetencyMap 岗位 -> 技能要求等级
// swagger:model CompetencyMap
type CompetencyMap struct {
	BaseModel
	Role   string                             `gorm:"size:255;uniqueIndex;not null" json:"role"`
	Skills datatypes.JSONType[map[string]int] `json:"skills"`
}

func (CompetencyMap) TableName() string {
	return "competency_maps"
}

// RequiredSkills 返回非 nil 的技能要求
func (m CompetencyMap) RequiredSkills() map[string]int {
	if s := m.Skills.Data(); s != nil {
		return s
	}
	return map[string]int{}
}

// CompetencyPayload 兼容 {Role, Skills} 与 {role, skills}
type CompetencyPayload struct {
	Role   string
	Skills map[string]int
	// SkillsSet 表示 skills 是一个对象
	SkillsSet bool
}

func (p *CompetencyPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = CompetencyPayload{}
	p.Role = stringField(raw, "role", "Role")

	v, ok := firstKey(raw, "skills", "Skills")
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(string(v))
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var levels map[string]FlexInt
	if err := json.Unmarshal(v, &levels); err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	p.Skills = make(map[string]int, len(levels))
	for name, lvl := range levels {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p.Skills[name] = int(lvl)
	}
	p.SkillsSet = true
	return nil
}
