package mailer

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"quizdom_backend/internal/config"
	"quizdom_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// Attachment CSV 报表等附件
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

type Mailer struct {
	cfg config.MailConfig
}

func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send 发送 HTML 邮件，attachment 可为 nil。
// Enabled 为 false 时仅记录日志，便于本地与测试环境。
func (m *Mailer) Send(to, subject, htmlBody string, attachment *Attachment) error {
	if !m.cfg.Enabled {
		logger.Log.Info("mail disabled, skipping send",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := m.buildMessage(to, subject, htmlBody, attachment)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		logger.Log.Error("failed to send mail", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

func (m *Mailer) buildMessage(to, subject, htmlBody string, attachment *Attachment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: Quizdom <%s>\r\n", m.cfg.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(htmlBody)
		return b.String()
	}

	const boundary = "quizdom-mail-boundary"
	b.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary))

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString(fmt.Sprintf("Content-Type: %s\r\n", attachment.MIMEType))
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%s\r\n\r\n", attachment.Filename))
	b.WriteString(base64.StdEncoding.EncodeToString(attachment.Content))
	b.WriteString(fmt.Sprintf("\r\n--%s--\r\n", boundary))

	return b.String()
}
