package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"quizdom_backend/internal/repository"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ExportJob 入队到 Redis 的导出任务。消费方是 job 包的导出 worker。
type ExportJob struct {
	ID          string    `json:"id"`
	UserID      uint      `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

type ExportService struct {
	rdb   *redis.Client
	queue string
}

func NewExportService(rdb *redis.Client, queue string) *ExportService {
	return &ExportService{rdb: rdb, queue: queue}
}

// Enqueue 提交一个异步导出任务并立即返回任务 id。
func (s *ExportService) Enqueue(ctx context.Context, userID uint) (string, error) {
	job := ExportJob{
		ID:          uuid.NewString(),
		UserID:      userID,
		RequestedAt: time.Now(),
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return "", err
	}

	if err := s.rdb.LPush(ctx, s.queue, payload).Err(); err != nil {
		return "", err
	}
	return job.ID, nil
}

// BuildScoreReport 将成绩行编码为 CSV 报表。
func BuildScoreReport(rows []repository.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"quiz_id", "quiz_name", "score", "maximum_score", "date"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.QuizID), 10),
			row.QuizName,
			strconv.Itoa(row.ScoreOfUser),
			strconv.Itoa(row.MaximumScore),
			row.ReleaseDate.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
