package service

import (
	"quizdom_backend/internal/repository"
	"time"
)

type ScoreService struct {
	Scores *repository.ScoreRepository
}

func NewScoreService(scores *repository.ScoreRepository) *ScoreService {
	return &ScoreService{Scores: scores}
}

// ScorecardRow 成绩单的一行，谱系名称来自成绩上的冗余外键。
type ScorecardRow struct {
	QuizID       uint      `json:"quiz_id"`
	QuizName     string    `json:"quiz_name"`
	ChapterName  string    `json:"chapter_name"`
	SubjectName  string    `json:"subject_name"`
	Score        int       `json:"score"`
	MaximumScore int       `json:"maximum_score"`
	Percentage   float64   `json:"score_percentage"`
	Date         time.Time `json:"date"`
}

func (s *ScoreService) Scorecard(userID uint) ([]ScorecardRow, error) {
	scores, err := s.Scores.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	rows := make([]ScorecardRow, 0, len(scores))
	for _, score := range scores {
		row := ScorecardRow{
			QuizID:       score.QuizID,
			Score:        score.ScoreOfUser,
			MaximumScore: score.MaximumScore,
			Percentage:   score.Percentage,
			Date:         score.ReleaseDate,
		}
		if score.Quiz != nil {
			row.QuizName = score.Quiz.Name
		}
		if score.Chapter != nil {
			row.ChapterName = score.Chapter.Name
		}
		if score.Subject != nil {
			row.SubjectName = score.Subject.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}
