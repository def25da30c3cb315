package render

import (
	"bytes"
	"html/template"
	"log"

	"lexassist-backend/models"
)

const landingBody = `
<section class="hero">
  <p>Upload a case document and get an AI-generated summary, related
  judgments and suggested next steps in minutes.</p>
  <a class="cta" href="/#register">Create an account</a>
</section>
<section class="features">
  <ul>
    <li>Document analysis with related-judgment lookup</li>
    <li>Case strengths and weaknesses at a glance</li>
    <li>Track hearings and case status with email updates</li>
  </ul>
</section>`

const caseListTemplate = `
<section id="cases">
{{if not .Cases}}<p class="empty">No cases yet. Upload a document to create your first case.</p>{{end}}
{{range .Cases}}
<article class="case-card">
  <header>
    <span class="case-id">{{.ID}}</span>
    <span class="status">{{.Status}}</span>
    {{if .HearingDate}}<span class="hearing">Next hearing: {{.HearingDate.Format "02 Jan 2006"}}</span>{{end}}
  </header>
  <div class="summary">{{.Summary}}</div>
  {{if .Notes}}
  <ul class="notes">
    {{range .Notes}}<li>{{.Text}} <time>{{.CreatedAt.Format "02 Jan 2006 15:04"}}</time></li>{{end}}
  </ul>
  {{end}}
</article>
{{end}}
</section>`

var caseListTmpl = template.Must(template.New("case_list").Parse(caseListTemplate))

// LandingBody returns the public landing page body.
func LandingBody() string {
	return landingBody
}

// CaseListBody renders the case list fragment for the dashboard.
// User-authored text (summaries, notes) is sanitized first.
func CaseListBody(cases []*models.Case) string {
	sanitized := make([]*models.Case, 0, len(cases))
	for _, c := range cases {
		clean := *c
		clean.Summary = SanitizeUserHTML(c.Summary)
		clean.Facts = SanitizeUserHTML(c.Facts)
		notes := make(models.CaseNotes, 0, len(c.Notes))
		for _, n := range c.Notes {
			n.Text = SanitizeUserHTML(n.Text)
			notes = append(notes, n)
		}
		clean.Notes = notes
		sanitized = append(sanitized, &clean)
	}

	var buf bytes.Buffer
	if err := caseListTmpl.Execute(&buf, struct {
		Cases []*models.Case
	}{Cases: sanitized}); err != nil {
		log.Printf("Failed to render case list: %v", err)
		return "<p>Could not render cases.</p>"
	}
	return buf.String()
}
