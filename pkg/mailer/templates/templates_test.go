package templates

import (
	"strings"
	"testing"
)

func TestRenderJoinConfirmation(t *testing.T) {
	subject, text, html, err := Render(JoinConfirmation, map[string]any{
		"Name":          "Alice",
		"EventName":     "Demo Day",
		"EventDate":     "01 March 2026, 18:00",
		"EventLocation": "Jakarta",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject != "You're registered for Demo Day" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.Contains(text, "Jakarta") {
		t.Fatalf("expected location in text body: %q", text)
	}
	if !strings.Contains(html, "<strong>Demo Day</strong>") {
		t.Fatalf("expected event name in html body: %q", html)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, map[string]any{
		"AppName": "eventdesk",
		"Name":    "<script>alert(1)</script>",
		"Email":   "a@x.com",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("html body must escape user content")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("nope", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
