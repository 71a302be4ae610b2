package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"scholaria/config"
)

// SendEmail sends an HTML email through the configured SMTP relay. When no
// sender is configured the call is a logged no-op.
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.EmailSender == "" {
		log.Printf("Email sending skipped (no EMAIL_SENDER configured): %s", subject)
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Scholaria <%s>\r\n", cfg.EmailSender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", cfg.EmailSender, cfg.Password, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, cfg.EmailSender, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5C6BC0; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SCHOLARIA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Scholaria. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Scholaria"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Scholaria</strong>! Your account has been created.</p>
		<p>You can now browse courses, enroll, and keep up with announcements and materials from your dashboard.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendAnnouncementEmail notifies an enrolled student about a new announcement.
func SendAnnouncementEmail(email, name, courseTitle, announcementTitle string) {
	subject := fmt.Sprintf("New announcement in %s", courseTitle)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A new announcement has been posted in <strong>%s</strong>:</p>
		<div class="info-box">%s</div>
		<p>Login to your dashboard to read the full announcement.</p>
	`, name, courseTitle, announcementTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("New Announcement", body))
}
