package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/portfolio-backend/models"
)

// smsLimit keeps a notification within two SMS segments.
const smsLimit = 300

var contactHTML = template.Must(template.New("contact").Parse(`<h2>New contact message</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
{{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
<p>{{.Content}}</p>
{{if .URL}}<p><a href="{{.URL}}">Open in dashboard</a></p>{{end}}`))

// ContactMessage renders the notification for a contact message. adminURL may be empty.
func ContactMessage(c *models.Contact, adminURL string) Message {
	subject := "New contact message from " + c.FullName()
	if c.Subject != nil && *c.Subject != "" {
		subject += ": " + *c.Subject
	}

	data := struct {
		Name, Email, Subject, Content, URL string
	}{c.FullName(), c.Email, deref(c.Subject), c.Content, adminURL}
	var html bytes.Buffer
	if err := contactHTML.Execute(&html, data); err != nil {
		html.Reset()
		html.WriteString(template.HTMLEscapeString(c.Content))
	}

	var text strings.Builder
	fmt.Fprintf(&text, "From: %s <%s>\n", c.FullName(), c.Email)
	if data.Subject != "" {
		fmt.Fprintf(&text, "Subject: %s\n", data.Subject)
	}
	fmt.Fprintf(&text, "\n%s\n", c.Content)
	if adminURL != "" {
		fmt.Fprintf(&text, "\n%s\n", adminURL)
	}

	short := fmt.Sprintf("%s <%s>: %s", c.FullName(), c.Email, c.Content)
	return Message{
		Subject: subject,
		HTML:    html.String(),
		Text:    text.String(),
		Short:   Truncate(short, smsLimit),
	}
}

// Truncate cuts s to at most limit runes, preferring a word boundary, and marks the cut with "...".
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return string([]rune(s)[:limit])
	}
	cut := string([]rune(s)[:limit-3])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}

// BuildContactURL links to a message in the admin dashboard, e.g.
// https://example.com/dashboard/contacts/{id}. It is empty without a base URL.
func BuildContactURL(baseURL, contactID string) string {
	if baseURL == "" || contactID == "" {
		return ""
	}
	return fmt.Sprintf("%s/dashboard/contacts/%s", strings.TrimSuffix(baseURL, "/"), contactID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
