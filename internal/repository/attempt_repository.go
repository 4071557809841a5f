package repository

import (
	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.Where("id = ?", id).First(&attempt).Error
	return &attempt, err
}

// FindInProgress returns the open attempt for the pair, if any.
func (r *AttemptRepository) FindInProgress(studentID, competencyID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.Where("student_id = ? AND competency_id = ? AND status = ?",
		studentID, competencyID, model.AttemptInProgress).
		First(&attempt).Error
	return &attempt, err
}
