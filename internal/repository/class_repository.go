package repository

import (
	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var class model.Class
	err := r.DB.Preload("Students").First(&class, id).Error
	return &class, err
}

func (r *ClassRepository) FindAll() ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Order("name ASC").Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) Update(class *model.Class) error {
	return r.DB.Save(class).Error
}

// Delete removes the class and detaches its students rather than
// deleting their accounts.
func (r *ClassRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("class_id = ?", id).
			Update("class_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Class{}, id).Error
	})
}
