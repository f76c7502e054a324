package service

import (
	"errors"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"

	"gorm.io/gorm"
)

type ChapterService struct {
	Chapters *repository.ChapterRepository
	Subjects *repository.SubjectRepository
}

func NewChapterService(chapters *repository.ChapterRepository, subjects *repository.SubjectRepository) *ChapterService {
	return &ChapterService{Chapters: chapters, Subjects: subjects}
}

func (s *ChapterService) Create(subjectID uint, name, description string) (*model.Chapter, error) {
	if _, err := s.Subjects.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	chapter := &model.Chapter{SubjectID: subjectID, Name: name, Description: description}
	if err := s.Chapters.Create(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) List() ([]model.Chapter, error) {
	return s.Chapters.List()
}

func (s *ChapterService) Update(id uint, name, description string) (*model.Chapter, error) {
	chapter, err := s.Chapters.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	chapter.Name = name
	chapter.Description = description
	if err := s.Chapters.Update(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) Delete(id uint) error {
	if _, err := s.Chapters.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChapterNotFound
		}
		return err
	}
	return s.Chapters.Delete(id)
}
