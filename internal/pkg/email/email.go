package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/vbook/vbook_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendPaymentReceipt 发送支付成功回执
func (s *Service) SendPaymentReceipt(to, packageName, amount, expiresAt string) error {
	subject := "支付成功 - VBook 数字图书馆"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">支付成功</h2>
        <p>您好，</p>
        <p>您的 VIP 会员已开通，支付信息如下：</p>
        <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">套餐</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">金额</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s VND</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">有效期至</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
        </table>
        <p>感谢您的支持，祝您阅读愉快！</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, packageName, amount, expiresAt)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
