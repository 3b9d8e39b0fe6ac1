package mailer

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const contactHTML = `<h3>New message from your portfolio contact form</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Subject:</strong> {{or .Subject "N/A"}}</p>
<hr>
<p><strong>Message:</strong></p>
<p>{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
`

const contactText = `New message from your portfolio contact form

Name: {{.Name}}
Email: {{.Email}}
Subject: {{or .Subject "N/A"}}

{{.Message}}
`

const chatHTML = `<h3>New chat message on your portfolio</h3>
<p><strong>Visitor:</strong> {{.UserID}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $l := .MessageLines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
<hr>
<p><strong>Assistant reply:</strong></p>
<p>{{range $i, $l := .ReplyLines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
`

const chatText = `New chat message on your portfolio

Visitor: {{.UserID}}

Message:
{{.Message}}

Assistant reply:
{{.Reply}}
`

const proposalClientHTML = `<p>Hi there,</p>
<p>Thank you for using the project estimator on my portfolio. Your personalised
estimate for a <strong>{{.ProjectType}}</strong> project is attached as a PDF.</p>
<p><strong>Estimated budget:</strong> {{.Budget}}</p>
<p>I would be glad to walk through the details with you on a complimentary
30-minute consultation. Just reply to this email to set up a time.</p>
<p>Best regards,<br>{{.Owner}}</p>
`

const proposalClientText = `Hi there,

Thank you for using the project estimator on my portfolio. Your personalised
estimate for a {{.ProjectType}} project is attached as a PDF.

Estimated budget: {{.Budget}}

I would be glad to walk through the details with you on a complimentary
30-minute consultation. Just reply to this email to set up a time.

Best regards,
{{.Owner}}
`

const proposalOperatorHTML = `<h3>New project lead</h3>
<p><strong>Client email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Project type:</strong> {{.ProjectType}}</p>
<p><strong>Features:</strong> {{if .Features}}{{.Features}}{{else}}None selected{{end}}</p>
<p><strong>Budget:</strong> {{.Budget}}</p>
<p>The generated estimate is attached.</p>
`

const proposalOperatorText = `New project lead

Client email: {{.Email}}
Project type: {{.ProjectType}}
Features: {{if .Features}}{{.Features}}{{else}}None selected{{end}}
Budget: {{.Budget}}
`

type body struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func newBody(name, html, text string) body {
	return body{
		html: htmltemplate.Must(htmltemplate.New(name).Parse(html)),
		text: texttemplate.Must(texttemplate.New(name).Parse(text)),
	}
}

var (
	contactBody          = newBody("contact", contactHTML, contactText)
	chatBody             = newBody("chat", chatHTML, chatText)
	proposalClientBody   = newBody("proposal-client", proposalClientHTML, proposalClientText)
	proposalOperatorBody = newBody("proposal-operator", proposalOperatorHTML, proposalOperatorText)
)

// render executes both variants against data.
func (b body) render(data any) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := b.html.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := b.text.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
