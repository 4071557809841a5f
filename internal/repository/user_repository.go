package repository

import (
	"school_exam_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByRole(role model.UserRole) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", role).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) FindStudentsByClass(classID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ? AND class_id = ?", model.Student, classID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

// UsernameTaken reports whether another user (excluding excludeID, 0
// for none) already holds the username.
func (r *UserRepository) UsernameTaken(username string, excludeID uint) (bool, error) {
	return r.fieldTaken("username", username, excludeID)
}

func (r *UserRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	return r.fieldTaken("email", email, excludeID)
}

func (r *UserRepository) PhoneTaken(phone string, excludeID uint) (bool, error) {
	return r.fieldTaken("phone", phone, excludeID)
}

// fieldTaken runs unscoped: a soft-deleted row still occupies its
// slot in the unique index, so it must count as taken.
func (r *UserRepository) fieldTaken(column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Unscoped().Model(&model.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// UpdateFields persists an allow-listed set of columns. Callers build
// the map explicitly so a request body can never flip fields the
// operation does not own (role in particular).
func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.DB.Delete(&model.User{}, id).Error
}
