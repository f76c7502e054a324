package service

import (
	"quizdom_backend/internal/repository"
)

type StatsService struct {
	Scores *repository.ScoreRepository
}

func NewStatsService(scores *repository.ScoreRepository) *StatsService {
	return &StatsService{Scores: scores}
}

// ChartData 前端图表直接消费的标签/数值对
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type StatsResponse struct {
	// AttemptsBySubject 各科目作答次数（饼图）
	AttemptsBySubject ChartData `json:"attempts_by_subject"`
	// BestBySubject 各科目最高百分比（柱状图）
	BestBySubject ChartData `json:"best_by_subject"`
}

// UserStats 某用户的科目维度统计。
func (s *StatsService) UserStats(userID uint) (*StatsResponse, error) {
	return s.buildStats(userID)
}

// PlatformStats 全平台统计，管理端概览使用。
func (s *StatsService) PlatformStats() (*StatsResponse, error) {
	return s.buildStats(0)
}

func (s *StatsService) buildStats(userID uint) (*StatsResponse, error) {
	rows, err := s.Scores.AggregateBySubject(userID)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		AttemptsBySubject: ChartData{Labels: make([]string, 0, len(rows)), Values: make([]float64, 0, len(rows))},
		BestBySubject:     ChartData{Labels: make([]string, 0, len(rows)), Values: make([]float64, 0, len(rows))},
	}
	for _, row := range rows {
		resp.AttemptsBySubject.Labels = append(resp.AttemptsBySubject.Labels, row.SubjectName)
		resp.AttemptsBySubject.Values = append(resp.AttemptsBySubject.Values, float64(row.Attempts))
		resp.BestBySubject.Labels = append(resp.BestBySubject.Labels, row.SubjectName)
		resp.BestBySubject.Values = append(resp.BestBySubject.Values, row.BestPercentage)
	}
	return resp, nil
}
