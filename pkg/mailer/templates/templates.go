package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// Template names understood by Render.
const (
	JoinConfirmation = "join_confirmation"
	Welcome          = "welcome"
)

type spec struct {
	subject string
	text    string
	html    string
}

var specs = map[string]spec{
	JoinConfirmation: {
		subject: "You're registered for {{.EventName}}",
		text: "Hi {{.Name}},\n\n" +
			"Your registration for {{.EventName}} is confirmed.\n" +
			"When: {{.EventDate}}\nWhere: {{.EventLocation}}\n\n" +
			"See you there!",
		html: `<html><body>
<p>Hi {{.Name}},</p>
<p>Your registration for <strong>{{.EventName}}</strong> is confirmed.</p>
<p>When: {{.EventDate}}<br>Where: {{.EventLocation}}</p>
<p>See you there!</p>
</body></html>`,
	},
	Welcome: {
		subject: "Welcome to {{.AppName}}",
		text: "Hi {{.Name}},\n\n" +
			"Your account has been created. You can now sign in with {{.Email}}.",
		html: `<html><body>
<p>Hi {{.Name}},</p>
<p>Your account has been created. You can now sign in with <strong>{{.Email}}</strong>.</p>
</body></html>`,
	},
}

// Render produces subject, text, and html bodies for the given template name.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	s, ok := specs[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	if subject, err = renderText(name+":subject", s.subject, data); err != nil {
		return "", "", "", err
	}
	if text, err = renderText(name+":text", s.text, data); err != nil {
		return "", "", "", err
	}
	if html, err = renderHTML(name+":html", s.html, data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

func renderText(name, tpl string, data map[string]any) (string, error) {
	t, err := texttpl.New(name).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(name, tpl string, data map[string]any) (string, error) {
	t, err := htmltpl.New(name).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
