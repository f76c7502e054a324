package job

import (
	"bytes"
	"fmt"
	"html/template"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/pkg/logger"
	"quizdom_backend/pkg/mailer"
	"time"

	"go.uber.org/zap"
)

const reportTemplate = `<html>
<body>
<h2>Quizdom activity report for {{.Month}}</h2>
<p>Hi {{.FullName}},</p>
<p>Quizzes taken so far: <b>{{.TotalQuizzes}}</b>, average score: <b>{{printf "%.2f" .AvgPercentage}}%</b>.</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Quiz</th><th>Chapter</th><th>Subject</th><th>Score</th><th>Date</th></tr>
{{range .Rows}}<tr><td>{{.QuizName}}</td><td>{{.ChapterName}}</td><td>{{.SubjectName}}</td><td>{{.Score}}/{{.Maximum}}</td><td>{{.Date}}</td></tr>
{{end}}</table>
</body>
</html>`

// ReportJob 每月活动报告：向每个有成绩的用户发送 HTML 汇总。
type ReportJob struct {
	Users  *repository.UserRepository
	Scores *repository.ScoreRepository
	Mail   *mailer.Mailer

	tmpl *template.Template
}

func NewReportJob(users *repository.UserRepository, scores *repository.ScoreRepository, mail *mailer.Mailer) *ReportJob {
	return &ReportJob{
		Users:  users,
		Scores: scores,
		Mail:   mail,
		tmpl:   template.Must(template.New("report").Parse(reportTemplate)),
	}
}

type reportRow struct {
	QuizName    string
	ChapterName string
	SubjectName string
	Score       int
	Maximum     int
	Date        string
}

// Run 实现 cron.Job。
func (j *ReportJob) Run() {
	users, err := j.Users.ListByRole(model.RoleUser)
	if err != nil {
		logger.Log.Error("report: failed to list users", zap.Error(err))
		return
	}

	month := time.Now().Format("January 2006")
	sent := 0
	for _, user := range users {
		summary, err := j.Scores.SummarizeByUser(user.ID)
		if err != nil {
			logger.Log.Error("report: failed to summarize scores",
				zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}
		if summary.TotalQuizzes == 0 {
			continue
		}

		scores, err := j.Scores.ListByUser(user.ID)
		if err != nil {
			logger.Log.Error("report: failed to list scores",
				zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}

		body, err := j.render(user, month, summary, scores)
		if err != nil {
			logger.Log.Error("report: failed to render mail",
				zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}

		subject := fmt.Sprintf("Quizdom activity report for %s", month)
		if err := j.Mail.Send(user.Email, subject, body, nil); err != nil {
			continue
		}
		sent++
	}

	logger.Log.Info("report job finished", zap.Int("mails_sent", sent))
}

func (j *ReportJob) render(user model.User, month string, summary *repository.MonthlySummary, scores []model.Score) (string, error) {
	rows := make([]reportRow, 0, len(scores))
	for _, score := range scores {
		row := reportRow{
			Score:   score.ScoreOfUser,
			Maximum: score.MaximumScore,
			Date:    score.ReleaseDate.Format("2006-01-02"),
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

	var buf bytes.Buffer
	err := j.tmpl.Execute(&buf, struct {
		FullName      string
		Month         string
		TotalQuizzes  int64
		AvgPercentage float64
		Rows          []reportRow
	}{
		FullName:      user.FullName,
		Month:         month,
		TotalQuizzes:  summary.TotalQuizzes,
		AvgPercentage: summary.AvgPercentage,
		Rows:          rows,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
