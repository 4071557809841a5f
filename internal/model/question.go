package model

// swagger:model Question
type Question struct {
	BaseModel
	CompetencyID uint           `gorm:"index;not null" json:"competencyId"`
	Prompt       string         `gorm:"type:text;not null" json:"prompt"`
	Order        int            `gorm:"default:0" json:"order"`
	Options      []AnswerOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	Key          *AnswerKey     `gorm:"foreignKey:QuestionID" json:"key,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
