package notify

import (
	"bytes"
	"html/template"
	"log"
	"time"
)

const welcomeTemplate = `<html><body>
<h2>Welcome to LexAssist, {{.Name}}!</h2>
<p>Your account has been created. Upload a case document to get started
with AI-assisted analysis, or search past judgments from your dashboard.</p>
<p>&mdash; The LexAssist team</p>
</body></html>`

const statusChangedTemplate = `<html><body>
<h2>Case status updated</h2>
<p>Hello {{.Name}},</p>
<p>The status of your case <strong>{{.CaseID}}</strong> has changed to
<strong>{{.Status}}</strong>.</p>
<p>Log in to your dashboard for details.</p>
</body></html>`

const hearingScheduledTemplate = `<html><body>
<h2>Hearing date updated</h2>
<p>Hello {{.Name}},</p>
<p>The next hearing for your case <strong>{{.CaseID}}</strong> is
scheduled for <strong>{{.HearingDate}}</strong>.</p>
<p>Log in to your dashboard for details.</p>
</body></html>`

var (
	welcomeTmpl          = template.Must(template.New("welcome").Parse(welcomeTemplate))
	statusChangedTmpl    = template.Must(template.New("status_changed").Parse(statusChangedTemplate))
	hearingScheduledTmpl = template.Must(template.New("hearing_scheduled").Parse(hearingScheduledTemplate))
)

func renderTemplate(tmpl *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Failed to render %s email template: %v", tmpl.Name(), err)
		return ""
	}
	return buf.String()
}

// BuildWelcomeEmail creates the welcome email sent once at registration.
func BuildWelcomeEmail(toEmail, name string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "Welcome to LexAssist",
		HTMLBody: renderTemplate(welcomeTmpl, struct {
			Name string
		}{Name: name}),
	}
}

// BuildStatusChangedEmail creates the case status change notification.
func BuildStatusChangedEmail(toEmail, name, caseID, status string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "Your case status has been updated",
		HTMLBody: renderTemplate(statusChangedTmpl, struct {
			Name, CaseID, Status string
		}{Name: name, CaseID: caseID, Status: status}),
	}
}

// BuildHearingScheduledEmail creates the hearing date notification.
func BuildHearingScheduledEmail(toEmail, name, caseID string, hearingDate time.Time) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "Hearing date scheduled for your case",
		HTMLBody: renderTemplate(hearingScheduledTmpl, struct {
			Name, CaseID, HearingDate string
		}{Name: name, CaseID: caseID, HearingDate: hearingDate.Format("02 Jan 2006")}),
	}
}
