package render

import (
	"bytes"
	"html/template"
	"log"

	"lexassist-backend/models"

	"github.com/microcosm-cc/bluemonday"
)

// shellTemplate is the shared document shell. Public pages get the top
// navigation; dashboard pages get the role-aware sidebar.
const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | LexAssist</title>
<link rel="stylesheet" href="/static/app.css">
</head>
<body class="{{if .Dashboard}}layout-dashboard{{else}}layout-public{{end}}">
{{if .Dashboard}}
<aside class="sidebar">
  <div class="brand">LexAssist</div>
  <nav>
    <a href="/dashboard">Dashboard</a>
    <a href="/dashboard#cases">My Cases</a>
    <a href="/dashboard#upload">Upload Document</a>
    <a href="/dashboard#search">Judgment Search</a>
    <a href="/dashboard#chat">Legal Assistant</a>
    {{if .ShowAllCases}}<a href="/dashboard#all-cases">All Cases</a>{{end}}
  </nav>
  {{if .User}}<div class="user-card">{{.User.Name}} <span class="role">{{.User.Role}}</span></div>{{end}}
</aside>
{{else}}
<header class="topnav">
  <div class="brand"><a href="/">LexAssist</a></div>
  <nav>
    <a href="/">Home</a>
    {{if .User}}<a href="/dashboard">Dashboard</a>{{else}}<a href="/#login">Sign In</a>{{end}}
  </nav>
</header>
{{end}}
<main>
<h1>{{.Title}}</h1>
{{.Body}}
</main>
<footer>
  <p>LexAssist &mdash; AI-assisted legal services. Not a substitute for professional legal advice.</p>
</footer>
</body>
</html>`

var shellTmpl = template.Must(template.New("shell").Parse(shellTemplate))

// userContentPolicy sanitizes user-derived text before it is
// interpolated into a page.
var userContentPolicy = bluemonday.UGCPolicy()

type shellData struct {
	Title        string
	Body         template.HTML
	User         *models.User
	Dashboard    bool
	ShowAllCases bool
}

// Page wraps body content in the shared shell and returns the full
// HTML document. The body is trusted template output; user-derived
// fragments inside it must already have passed through SanitizeUserHTML.
func Page(title string, bodyHTML string, user *models.User, dashboard bool) string {
	data := shellData{
		Title:     title,
		Body:      template.HTML(bodyHTML),
		User:      user,
		Dashboard: dashboard,
	}
	if user != nil && (user.Role == models.RoleLawyer || user.Role == models.RoleAdmin) {
		data.ShowAllCases = true
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		log.Printf("Failed to render page %q: %v", title, err)
		return "<!DOCTYPE html><html><body><p>Page rendering failed.</p></body></html>"
	}
	return buf.String()
}

// SanitizeUserHTML strips unsafe markup from user-derived content.
func SanitizeUserHTML(s string) string {
	return userContentPolicy.Sanitize(s)
}
