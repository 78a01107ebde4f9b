package utils

import (
	"testing"

	"bughub/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildReportEmail(t *testing.T) {
	report := models.Report{
		Title:       "Broken checkout button",
		Description: "Clicking pay does nothing",
		Severity:    models.SeverityHigh,
		Metadata: models.Metadata{
			URL:      "https://shop.example/cart",
			Browser:  "Firefox",
			OS:       "Linux",
			Viewport: "1920x1080",
		},
		ImageURL: "https://storage.googleapis.com/bughub-attachments/screenshots/a.png",
	}

	msg := BuildReportEmail(report)
	assert.Contains(t, msg, "Subject: New Bug Report Submitted")
	assert.Contains(t, msg, "Title: Broken checkout button")
	assert.Contains(t, msg, "Severity: high")
	assert.Contains(t, msg, "Clicking pay does nothing")
	assert.Contains(t, msg, "Submitted from: https://shop.example/cart")
	assert.Contains(t, msg, "Screenshot: https://storage.googleapis.com/bughub-attachments/screenshots/a.png")
	assert.NotContains(t, msg, "Video:")
}

func TestBuildReportEmailVideo(t *testing.T) {
	report := models.Report{
		Title:    "Flickering sidebar",
		Severity: models.SeverityLow,
		VideoURL: "https://storage.googleapis.com/bughub-attachments/videos/b.mp4",
	}

	msg := BuildReportEmail(report)
	assert.Contains(t, msg, "Video: https://storage.googleapis.com/bughub-attachments/videos/b.mp4")
	assert.NotContains(t, msg, "Screenshot:")
}

func TestMailerDisabled(t *testing.T) {
	var nilMailer *Mailer
	assert.False(t, nilMailer.Enabled())
	assert.NoError(t, nilMailer.SendReportEmail(models.Report{}))

	unconfigured := NewMailer("smtp.gmail.com", "587", "", "", "")
	assert.False(t, unconfigured.Enabled())
	assert.NoError(t, unconfigured.SendReportEmail(models.Report{}))

	configured := NewMailer("smtp.gmail.com", "587", "bot@example.com", "pass", "triage@example.com")
	assert.True(t, configured.Enabled())
}
