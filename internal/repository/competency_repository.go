package repository

import (
	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type CompetencyRepository struct {
	DB *gorm.DB
}

func NewCompetencyRepository(db *gorm.DB) *CompetencyRepository {
	return &CompetencyRepository{DB: db}
}

func (r *CompetencyRepository) Create(competency *model.Competency) error {
	return r.DB.Create(competency).Error
}

func (r *CompetencyRepository) FindByID(id uint) (*model.Competency, error) {
	var competency model.Competency
	err := r.DB.First(&competency, id).Error
	return &competency, err
}

func (r *CompetencyRepository) FindBySlug(slug string) (*model.Competency, error) {
	var competency model.Competency
	err := r.DB.Where("slug = ?", slug).First(&competency).Error
	return &competency, err
}

// FindBySlugWithQuestions loads the full question tree (options and
// keys) in one go, the shape the exam service grades against.
func (r *CompetencyRepository) FindBySlugWithQuestions(slug string) (*model.Competency, error) {
	var competency model.Competency
	err := r.DB.Where("slug = ?", slug).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order ASC, questions.id ASC")
		}).
		Preload("Questions.Options").
		Preload("Questions.Key").
		First(&competency).Error
	return &competency, err
}

func (r *CompetencyRepository) FindAll() ([]model.Competency, error) {
	var competencies []model.Competency
	err := r.DB.Order("title ASC").Find(&competencies).Error
	return competencies, err
}

func (r *CompetencyRepository) FindByTeacher(teacherID uint) ([]model.Competency, error) {
	var competencies []model.Competency
	err := r.DB.Where("teacher_id = ?", teacherID).Order("title ASC").Find(&competencies).Error
	return competencies, err
}

func (r *CompetencyRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Competency{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CompetencyRepository) Update(competency *model.Competency) error {
	return r.DB.Save(competency).Error
}

// Delete cascades through questions, their options and keys. Result
// policy (reject while results exist) is enforced by the service
// before this is called.
func (r *CompetencyRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("competency_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.AnswerKey{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.AnswerOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("competency_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Competency{}, id).Error
	})
}

func (r *CompetencyRepository) CountResults(id uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).Where("competency_id = ?", id).Count(&count).Error
	return count, err
}
