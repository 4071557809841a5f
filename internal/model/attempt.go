package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// TestAttempt tracks one pass of a student through a competency's
// test, from start to final submission. Answers are held client-side
// while in progress; nothing is persisted until submit, which grades
// the attempt and writes the immutable Result.
// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	StudentID     uint          `gorm:"index:idx_attempts_student_competency;not null" json:"studentId"`
	CompetencyID  uint          `gorm:"index:idx_attempts_student_competency;not null" json:"competencyId"`
	AttemptNumber int           `gorm:"default:1" json:"attemptNumber"`
	Status        AttemptStatus `gorm:"type:varchar(16);default:'in_progress'" json:"status"`
	StartedAt     time.Time     `gorm:"not null" json:"startedAt"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}
