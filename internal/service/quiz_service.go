package service

import (
	"errors"
	"fmt"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	Quizzes   *repository.QuizRepository
	Questions *repository.QuestionRepository
	Chapters  *repository.ChapterRepository
	Scores    *repository.ScoreRepository
}

func NewQuizService(quizzes *repository.QuizRepository, questions *repository.QuestionRepository, chapters *repository.ChapterRepository, scores *repository.ScoreRepository) *QuizService {
	return &QuizService{Quizzes: quizzes, Questions: questions, Chapters: chapters, Scores: scores}
}

type QuizParams struct {
	Name          string
	Description   string
	ChapterID     uint
	IsActive      bool
	ReleaseDate   time.Time
	Duration      string
	SingleAttempt bool
}

// QuizSummary 用户侧测验列表的一行
type QuizSummary struct {
	QuizID        uint      `json:"quiz_id"`
	QuizName      string    `json:"quiz_name"`
	Description   string    `json:"quiz_description"`
	ChapterName   string    `json:"chapter_name"`
	SubjectName   string    `json:"subject_name"`
	ReleaseDate   time.Time `json:"quiz_release_date"`
	Duration      string    `json:"quiz_duration"`
	SingleAttempt bool      `json:"single_attempt"`
	AttemptCount  int64     `json:"attempt_count"`
	Attempted     bool      `json:"attempted"`
}

// ListForUser 仅返回已启用的测验，附带全平台作答次数与该用户是否已作答。
func (s *QuizService) ListForUser(userID uint) ([]QuizSummary, error) {
	quizzes, err := s.Quizzes.ListActive()
	if err != nil {
		return nil, err
	}

	attemptedIDs, err := s.Scores.ListAttemptedQuizIDs(userID)
	if err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attempted[id] = true
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		count, err := s.Scores.CountByQuiz(quiz.ID)
		if err != nil {
			return nil, err
		}

		summary := QuizSummary{
			QuizID:        quiz.ID,
			QuizName:      quiz.Name,
			Description:   quiz.Description,
			ReleaseDate:   quiz.ReleaseDate,
			Duration:      quiz.Duration,
			SingleAttempt: quiz.SingleAttempt(),
			AttemptCount:  count,
			Attempted:     attempted[quiz.ID],
		}
		if quiz.Chapter != nil {
			summary.ChapterName = quiz.Chapter.Name
			if quiz.Chapter.Subject != nil {
				summary.SubjectName = quiz.Chapter.Subject.Name
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// AdminQuizRow 管理端测验列表的一行。
type AdminQuizRow struct {
	QuizID        uint      `json:"quiz_id"`
	QuizName      string    `json:"quiz_name"`
	Description   string    `json:"quiz_description"`
	ChapterID     uint      `json:"chapter_id"`
	ChapterName   string    `json:"chapter_name"`
	SubjectName   string    `json:"subject_name"`
	IsActive      bool      `json:"quiz_is_active"`
	ReleaseDate   time.Time `json:"quiz_release_date"`
	Duration      string    `json:"quiz_duration"`
	SingleAttempt bool      `json:"single_attempt"`
	AttemptCount  int64     `json:"attempt_count"`
}

// ListForAdmin 全量测验及作答次数。单次作答且已有人作答的测验
// 标记为停用，提醒管理员该测验已不可再被任何作答过的人开卷。
func (s *QuizService) ListForAdmin() ([]AdminQuizRow, error) {
	quizzes, err := s.Quizzes.List()
	if err != nil {
		return nil, err
	}

	rows := make([]AdminQuizRow, 0, len(quizzes))
	for _, quiz := range quizzes {
		count, err := s.Scores.CountByQuiz(quiz.ID)
		if err != nil {
			return nil, err
		}

		active := quiz.IsActive
		if quiz.SingleAttempt() && count > 0 {
			active = false
		}

		row := AdminQuizRow{
			QuizID:        quiz.ID,
			QuizName:      quiz.Name,
			Description:   quiz.Description,
			ChapterID:     quiz.ChapterID,
			IsActive:      active,
			ReleaseDate:   quiz.ReleaseDate,
			Duration:      quiz.Duration,
			SingleAttempt: quiz.SingleAttempt(),
			AttemptCount:  count,
		}
		if quiz.Chapter != nil {
			row.ChapterName = quiz.Chapter.Name
			if quiz.Chapter.Subject != nil {
				row.SubjectName = quiz.Chapter.Subject.Name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *QuizService) Create(params QuizParams) (*model.Quiz, error) {
	if err := s.validateDuration(params.Duration); err != nil {
		return nil, err
	}

	if _, err := s.Chapters.FindByID(params.ChapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	single := params.SingleAttempt
	quiz := &model.Quiz{
		Name:        params.Name,
		Description: params.Description,
		ChapterID:   params.ChapterID,
		IsActive:    params.IsActive,
		ReleaseDate: params.ReleaseDate,
		Duration:    params.Duration,
		IsAttempted: &single,
	}

	if err := s.Quizzes.Create(quiz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateName
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Update(id uint, params QuizParams) (*model.Quiz, error) {
	if err := s.validateDuration(params.Duration); err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if params.ChapterID != quiz.ChapterID {
		if _, err := s.Chapters.FindByID(params.ChapterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrChapterNotFound
			}
			return nil, err
		}
	}

	single := params.SingleAttempt
	quiz.Name = params.Name
	quiz.Description = params.Description
	quiz.ChapterID = params.ChapterID
	quiz.IsActive = params.IsActive
	quiz.ReleaseDate = params.ReleaseDate
	quiz.Duration = params.Duration
	quiz.IsAttempted = &single

	if err := s.Quizzes.Update(quiz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateName
		}
		return nil, err
	}
	return quiz, nil
}

// Delete 删除测验及其全部题目。已有成绩保留，报表依赖冗余的谱系字段。
func (s *QuizService) Delete(id uint) error {
	if _, err := s.Quizzes.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}

	if err := s.Questions.DeleteByQuiz(id); err != nil {
		return err
	}
	return s.Quizzes.Delete(id)
}

func (s *QuizService) validateDuration(duration string) error {
	seconds, err := util.ParseClockSeconds(duration)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidDuration, err)
	}
	if seconds <= 0 {
		return util.ErrInvalidDuration
	}
	return nil
}
