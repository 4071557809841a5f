package repository

import (
	"time"

	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// CreateWithAnswers writes the result row, its answer snapshots and
// the attempt's terminal status in one transaction. The composite
// unique index on results makes the insert the arbiter of "exactly
// one result per completed attempt": a concurrent duplicate fails
// with gorm.ErrDuplicatedKey and nothing of the loser commits.
func (r *ResultRepository) CreateWithAnswers(result *model.Result, attemptID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		return tx.Model(&model.TestAttempt{}).
			Where("id = ?", attemptID).
			Updates(map[string]interface{}{
				"status":     model.AttemptCompleted,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *ResultRepository) FindByID(id uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.Preload("Answers").
		Preload("Student").
		Preload("Competency").
		First(&result, id).Error
	return &result, err
}

func (r *ResultRepository) ListByStudent(studentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("student_id = ?", studentID).
		Preload("Competency").
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListByCompetency(competencyID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("competency_id = ?", competencyID).
		Preload("Student").
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) HasCompleted(studentID, competencyID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).
		Where("student_id = ? AND competency_id = ?", studentID, competencyID).
		Count(&count).Error
	return count > 0, err
}

// MaxAttemptNumber returns 0 when the student has no result yet.
func (r *ResultRepository) MaxAttemptNumber(studentID, competencyID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Result{}).
		Where("student_id = ? AND competency_id = ?", studentID, competencyID).
		Select("COALESCE(MAX(attempt_number), 0)").
		Scan(&max).Error
	return max, err
}
