package model

import "time"

// Result is the audit record of a completed attempt. It is written
// exactly once by the exam service and never updated; the composite
// unique index is what makes a duplicate final submission fail at the
// storage layer instead of racing an in-memory check.
// swagger:model Result
type Result struct {
	BaseModel
	StudentID     uint           `gorm:"uniqueIndex:idx_results_attempt;not null" json:"studentId"`
	CompetencyID  uint           `gorm:"uniqueIndex:idx_results_attempt;not null" json:"competencyId"`
	AttemptNumber int            `gorm:"uniqueIndex:idx_results_attempt;default:1" json:"attemptNumber"`
	Score         int            `gorm:"not null" json:"score"`
	CompletedAt   time.Time      `gorm:"not null" json:"completedAt"`
	Answers       []ResultAnswer `gorm:"foreignKey:ResultID" json:"answers,omitempty"`

	Student    *User       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Competency *Competency `gorm:"foreignKey:CompetencyID" json:"competency,omitempty"`
}

func (Result) TableName() string {
	return "results"
}

// ResultAnswer snapshots one graded selection. Prompt and option text
// are copied at grading time so the record stays readable after the
// curriculum changes.
// swagger:model ResultAnswer
type ResultAnswer struct {
	BaseModel
	ResultID       uint   `gorm:"index;not null" json:"resultId"`
	QuestionID     uint   `gorm:"not null" json:"questionId"`
	Prompt         string `gorm:"type:text" json:"prompt"`
	AnswerOptionID uint   `gorm:"not null" json:"answerOptionId"`
	OptionLabel    string `gorm:"size:5" json:"optionLabel"`
	OptionText     string `gorm:"type:text" json:"optionText"`
	IsCorrect      bool   `gorm:"not null" json:"isCorrect"`
}

func (ResultAnswer) TableName() string {
	return "result_answers"
}
