package service

import (
	"errors"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Questions *repository.QuestionRepository
	Quizzes   *repository.QuizRepository
}

func NewQuestionService(questions *repository.QuestionRepository, quizzes *repository.QuizRepository) *QuestionService {
	return &QuestionService{Questions: questions, Quizzes: quizzes}
}

type QuestionParams struct {
	Tag     string
	Text    string
	OptionA string
	OptionB string
	OptionC string
	OptionD string
	Answer  string
}

// Create 题目归属在创建时确定，ChapterID 从测验谱系冗余。
func (s *QuestionService) Create(quizID uint, params QuestionParams) (*model.Question, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	question := &model.Question{
		QuizID:    quiz.ID,
		ChapterID: quiz.ChapterID,
		Tag:       params.Tag,
		Text:      params.Text,
		OptionA:   params.OptionA,
		OptionB:   params.OptionB,
		OptionC:   params.OptionC,
		OptionD:   params.OptionD,
		Answer:    params.Answer,
	}
	if err := s.Questions.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListByQuiz(quizID uint) ([]model.Question, error) {
	if _, err := s.Quizzes.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.Questions.ListByQuiz(quizID)
}

func (s *QuestionService) Update(id uint, params QuestionParams) (*model.Question, error) {
	question, err := s.Questions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	question.Tag = params.Tag
	question.Text = params.Text
	question.OptionA = params.OptionA
	question.OptionB = params.OptionB
	question.OptionC = params.OptionC
	question.OptionD = params.OptionD
	question.Answer = params.Answer

	if err := s.Questions.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Questions.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.Questions.Delete(id)
}
