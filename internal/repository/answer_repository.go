package repository

import (
	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(option *model.AnswerOption) error {
	return r.DB.Create(option).Error
}

func (r *AnswerRepository) FindByID(id uint) (*model.AnswerOption, error) {
	var option model.AnswerOption
	err := r.DB.First(&option, id).Error
	return &option, err
}

func (r *AnswerRepository) ListByQuestion(questionID uint) ([]model.AnswerOption, error) {
	var options []model.AnswerOption
	err := r.DB.Where("question_id = ?", questionID).
		Order("label ASC, id ASC").
		Find(&options).Error
	return options, err
}

func (r *AnswerRepository) Update(option *model.AnswerOption) error {
	return r.DB.Save(option).Error
}

// Delete drops the option and any key pointing at it.
func (r *AnswerRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_option_id = ?", id).Delete(&model.AnswerKey{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.AnswerOption{}, id).Error
	})
}
