package model

// AnswerKey designates the correct option of a question. The unique
// index on QuestionID enforces at most one active key per question.
// swagger:model AnswerKey
type AnswerKey struct {
	BaseModel
	QuestionID     uint `gorm:"uniqueIndex;not null" json:"questionId"`
	AnswerOptionID uint `gorm:"not null" json:"answerOptionId"`
}

func (AnswerKey) TableName() string {
	return "answer_keys"
}
