package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type ResetCodeData struct {
	Name      string
	Code      string
	ExpiresIn time.Duration
}

var resetCodeHTML = template.Must(template.New("reset_code").Parse(`<p>Hi {{.Name}},</p>
<p>Your ROFL password reset code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.Minutes}} minutes. If you did not ask for a reset you can ignore this email.</p>
`))

// ResetCodeMessage renders the password reset email for to.
func ResetCodeMessage(to string, data ResetCodeData) (Message, error) {
	minutes := int(data.ExpiresIn.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = "there"
	}
	var html bytes.Buffer
	err := resetCodeHTML.Execute(&html, struct {
		Name    string
		Code    string
		Minutes int
	}{Name: name, Code: data.Code, Minutes: minutes})
	if err != nil {
		return Message{}, fmt.Errorf("render reset email: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Your ROFL password reset code",
		Text: fmt.Sprintf("Hi %s,\n\nYour ROFL password reset code is %s.\nIt expires in %d minutes.\n",
			name, data.Code, minutes),
		HTML: html.String(),
	}, nil
}
