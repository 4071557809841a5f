package model

// AnswerOption is one selectable choice of a question.
// swagger:model AnswerOption
type AnswerOption struct {
	BaseModel
	QuestionID uint `gorm:"index;not null" json:"questionId"`
	// Label is the display letter ("A", "B", ...), Text the option body.
	Label string `gorm:"size:5;not null" json:"label"`
	Text  string `gorm:"type:text;not null" json:"text"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}
