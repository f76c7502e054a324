package repository

import (
	"quizdom_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// List 全量测验，携带章节与科目用于管理端展示。
func (r *QuizRepository) List() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Chapter").Preload("Chapter.Subject").Order("id asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListActive() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Chapter").Preload("Chapter.Subject").
		Where("is_active = ?", true).Order("id asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}
