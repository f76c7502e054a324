package job

import (
	"quizdom_backend/internal/config"
	"quizdom_backend/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 托管周期任务：每日提醒与每月报告。
// 导出 worker 由 ExportWorker 自行驱动，不走 cron。
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.JobsConfig
	reminder *ReminderJob
	report   *ReportJob
}

func NewScheduler(cfg config.JobsConfig, reminder *ReminderJob, report *ReportJob) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		reminder: reminder,
		report:   report,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddJob(s.cfg.ReminderCron, s.reminder); err != nil {
		return err
	}
	if _, err := s.cron.AddJob(s.cfg.ReportCron, s.report); err != nil {
		return err
	}

	s.cron.Start()
	logger.Log.Info("job scheduler started",
		zap.String("reminder_cron", s.cfg.ReminderCron),
		zap.String("report_cron", s.cfg.ReportCron))
	return nil
}

// Stop 停止调度并等待在途任务结束。
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Log.Info("job scheduler stopped")
}
