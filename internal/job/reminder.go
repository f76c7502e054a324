package job

import (
	"bytes"
	"html/template"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/pkg/logger"
	"quizdom_backend/pkg/mailer"

	"go.uber.org/zap"
)

const reminderTemplate = `<html>
<body>
<p>Hi {{.FullName}},</p>
<p>You still have {{len .Quizzes}} quiz(zes) waiting for you on Quizdom:</p>
<ul>
{{range .Quizzes}}<li>{{.Name}} ({{.Duration}})</li>
{{end}}</ul>
<p>Log in and give them a try!</p>
</body>
</html>`

// ReminderJob 每日提醒：给每个还有未作答测验的用户发一封邮件。
type ReminderJob struct {
	Users   *repository.UserRepository
	Quizzes *repository.QuizRepository
	Scores  *repository.ScoreRepository
	Mail    *mailer.Mailer

	tmpl *template.Template
}

func NewReminderJob(users *repository.UserRepository, quizzes *repository.QuizRepository, scores *repository.ScoreRepository, mail *mailer.Mailer) *ReminderJob {
	return &ReminderJob{
		Users:   users,
		Quizzes: quizzes,
		Scores:  scores,
		Mail:    mail,
		tmpl:    template.Must(template.New("reminder").Parse(reminderTemplate)),
	}
}

// Run 实现 cron.Job。单个用户的失败只记日志，不中断整轮。
func (j *ReminderJob) Run() {
	quizzes, err := j.Quizzes.ListActive()
	if err != nil {
		logger.Log.Error("reminder: failed to list quizzes", zap.Error(err))
		return
	}
	if len(quizzes) == 0 {
		return
	}

	users, err := j.Users.ListByRole(model.RoleUser)
	if err != nil {
		logger.Log.Error("reminder: failed to list users", zap.Error(err))
		return
	}

	sent := 0
	for _, user := range users {
		pending, err := j.pendingQuizzes(user.ID, quizzes)
		if err != nil {
			logger.Log.Error("reminder: failed to resolve pending quizzes",
				zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}
		if len(pending) == 0 {
			continue
		}

		body, err := j.render(user, pending)
		if err != nil {
			logger.Log.Error("reminder: failed to render mail",
				zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}

		if err := j.Mail.Send(user.Email, "Quizdom: quizzes waiting for you", body, nil); err != nil {
			continue
		}
		sent++
	}

	logger.Log.Info("reminder job finished", zap.Int("mails_sent", sent))
}

func (j *ReminderJob) pendingQuizzes(userID uint, quizzes []model.Quiz) ([]model.Quiz, error) {
	attemptedIDs, err := j.Scores.ListAttemptedQuizIDs(userID)
	if err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attempted[id] = true
	}

	var pending []model.Quiz
	for _, quiz := range quizzes {
		if !attempted[quiz.ID] {
			pending = append(pending, quiz)
		}
	}
	return pending, nil
}

func (j *ReminderJob) render(user model.User, quizzes []model.Quiz) (string, error) {
	var buf bytes.Buffer
	err := j.tmpl.Execute(&buf, struct {
		FullName string
		Quizzes  []model.Quiz
	}{FullName: user.FullName, Quizzes: quizzes})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
