package service

import (
	"errors"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	Subjects *repository.SubjectRepository
}

func NewSubjectService(subjects *repository.SubjectRepository) *SubjectService {
	return &SubjectService{Subjects: subjects}
}

func (s *SubjectService) Create(name, description string) (*model.Subject, error) {
	subject := &model.Subject{Name: name, Description: description}
	if err := s.Subjects.Create(subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateName
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) List() ([]model.Subject, error) {
	return s.Subjects.ListWithChapters()
}

func (s *SubjectService) Update(id uint, name, description string) (*model.Subject, error) {
	subject, err := s.Subjects.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	subject.Name = name
	subject.Description = description
	if err := s.Subjects.Update(subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateName
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Delete(id uint) error {
	if _, err := s.Subjects.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return s.Subjects.Delete(id)
}
