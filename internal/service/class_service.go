package service

import (
	"errors"

	"school_exam_backend/internal/model"
	"school_exam_backend/internal/repository"
	"school_exam_backend/internal/util"

	"gorm.io/gorm"
)

type ClassService struct {
	ClassRepo *repository.ClassRepository
}

func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{ClassRepo: classRepo}
}

func (s *ClassService) List() ([]model.Class, error) {
	return s.ClassRepo.FindAll()
}

func (s *ClassService) Get(id uint) (*model.Class, error) {
	class, err := s.ClassRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrClassNotFound
	}
	return class, err
}

func (s *ClassService) Create(name string) (*model.Class, error) {
	class := &model.Class{Name: name}
	if err := s.ClassRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Update(id uint, name string) (*model.Class, error) {
	class, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	class.Name = name
	if err := s.ClassRepo.Update(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.ClassRepo.Delete(id)
}
