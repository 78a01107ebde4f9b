package utils

import (
	"fmt"
	"net/smtp"

	"bughub/models"
)

// Mailer sends the new-report notification over SMTP. A Mailer with no
// sender configured is disabled and sends nothing.
type Mailer struct {
	Host string
	Port string
	From string
	Pass string
	To   string
}

// NewMailer builds a Mailer from SMTP settings.
func NewMailer(host, port, from, pass, to string) *Mailer {
	return &Mailer{Host: host, Port: port, From: from, Pass: pass, To: to}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.From != "" && m.To != ""
}

// SendReportEmail notifies the triage inbox about a new report.
func (m *Mailer) SendReportEmail(report models.Report) error {
	if !m.Enabled() {
		return nil
	}
	msg := BuildReportEmail(report)
	return smtp.SendMail(
		m.Host+":"+m.Port,
		smtp.PlainAuth("", m.From, m.Pass, m.Host),
		m.From,
		[]string{m.To},
		[]byte(msg),
	)
}

// BuildReportEmail formats the plain-text notification message.
func BuildReportEmail(report models.Report) string {
	msg := fmt.Sprintf(`Subject: New Bug Report Submitted

New bug report submitted:

Title: %s
Severity: %s

Description:
%s

Submitted from: %s
Browser: %s
OS: %s
Viewport: %s
`,
		report.Title, report.Severity, report.Description,
		report.Metadata.URL, report.Metadata.Browser, report.Metadata.OS, report.Metadata.Viewport)

	if report.ImageURL != "" {
		msg += fmt.Sprintf("\nScreenshot: %s\n", report.ImageURL)
	}
	if report.VideoURL != "" {
		msg += fmt.Sprintf("\nVideo: %s\n", report.VideoURL)
	}
	return msg
}
