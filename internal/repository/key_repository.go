package repository

import (
	"errors"

	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type KeyRepository struct {
	DB *gorm.DB
}

func NewKeyRepository(db *gorm.DB) *KeyRepository {
	return &KeyRepository{DB: db}
}

func (r *KeyRepository) FindByQuestion(questionID uint) (*model.AnswerKey, error) {
	var key model.AnswerKey
	err := r.DB.Where("question_id = ?", questionID).First(&key).Error
	return &key, err
}

// Assign points the question's key at the given option, creating or
// moving it. The unique index on question_id keeps this at one key
// per question.
func (r *KeyRepository) Assign(questionID, answerOptionID uint) (*model.AnswerKey, error) {
	var key model.AnswerKey
	err := r.DB.Where("question_id = ?", questionID).First(&key).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		key = model.AnswerKey{QuestionID: questionID, AnswerOptionID: answerOptionID}
		if err := r.DB.Create(&key).Error; err != nil {
			return nil, err
		}
		return &key, nil
	case err != nil:
		return nil, err
	default:
		key.AnswerOptionID = answerOptionID
		if err := r.DB.Save(&key).Error; err != nil {
			return nil, err
		}
		return &key, nil
	}
}

func (r *KeyRepository) Delete(questionID uint) error {
	return r.DB.Where("question_id = ?", questionID).Delete(&model.AnswerKey{}).Error
}
