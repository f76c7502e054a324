package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/service"
	"quizdom_backend/pkg/logger"
	"quizdom_backend/pkg/mailer"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ExportWorker 消费 Redis 队列里的成绩导出任务：
// 生成 CSV、归档到存储、再作为附件发给用户。
type ExportWorker struct {
	rdb     *redis.Client
	queue   string
	Users   *repository.UserRepository
	Scores  *repository.ScoreRepository
	Storage service.Storage
	Mail    *mailer.Mailer
}

func NewExportWorker(rdb *redis.Client, queue string, users *repository.UserRepository, scores *repository.ScoreRepository, storage service.Storage, mail *mailer.Mailer) *ExportWorker {
	return &ExportWorker{
		rdb:     rdb,
		queue:   queue,
		Users:   users,
		Scores:  scores,
		Storage: storage,
		Mail:    mail,
	}
}

// Start 启动消费循环，ctx 取消后退出。
func (w *ExportWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ExportWorker) loop(ctx context.Context) {
	logger.Log.Info("export worker started", zap.String("queue", w.queue))

	for {
		result, err := w.rdb.BRPop(ctx, 5*time.Second, w.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				logger.Log.Info("export worker stopped")
				return
			}
			logger.Log.Error("export worker: queue read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		// BRPop 返回 [queue, payload]
		var job service.ExportJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			logger.Log.Error("export worker: malformed job payload", zap.Error(err))
			continue
		}

		if err := w.process(ctx, job); err != nil {
			logger.Log.Error("export worker: job failed",
				zap.String("job_id", job.ID),
				zap.Uint("user_id", job.UserID),
				zap.Error(err))
		}
	}
}

func (w *ExportWorker) process(ctx context.Context, job service.ExportJob) error {
	user, err := w.Users.FindByID(job.UserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	rows, err := w.Scores.ListForExport(job.UserID)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}

	report, err := service.BuildScoreReport(rows)
	if err != nil {
		return fmt.Errorf("build csv: %w", err)
	}

	filename := fmt.Sprintf("scores_%d_%s.csv", job.UserID, job.ID)
	location, err := w.Storage.Save(ctx, filename, report, "text/csv")
	if err != nil {
		return fmt.Errorf("store report: %w", err)
	}

	body := fmt.Sprintf("<html><body><p>Hi %s,</p><p>Your quiz score export is attached (%d rows).</p></body></html>",
		user.FullName, len(rows))
	attachment := &mailer.Attachment{
		Filename: filename,
		MIMEType: "text/csv",
		Content:  report,
	}
	if err := w.Mail.Send(user.Email, "Quizdom: your score export", body, attachment); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	logger.Log.Info("export job completed",
		zap.String("job_id", job.ID),
		zap.Uint("user_id", job.UserID),
		zap.String("location", location))
	return nil
}
