package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/lead-management/internal/infra/queue"
)

// Lead fields are user input and must stay escaped.
var newLeadTemplate = template.Must(template.New("new_lead").Parse(`<p>A new lead was registered.</p>
<ul>
  <li><strong>Name:</strong> {{.Name}}</li>
  <li><strong>Phone:</strong> {{.Phone}}</li>
</ul>
{{if .AppURL}}<p><a href="{{.AppURL}}/api/leads/{{.LeadID}}">Open lead #{{.LeadID}}</a></p>{{end}}
`))

func NewEmailSender(host string, port int, user, password, from, to, appURL string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		AppURL:   appURL,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

// NotifyLeadCreated mails the sales inbox about a new lead.
func (s *EmailSender) NotifyLeadCreated(ctx context.Context, leadID int64, lead queue.LeadPayload) error {
	m, err := s.newLeadMessage(leadID, lead)
	if err != nil {
		return err
	}
	if err := s.send(m); err != nil {
		return fmt.Errorf("send email via smtp: %w", err)
	}

	slog.InfoContext(ctx, "new lead email sent", "lead_id", leadID, "to", s.To)
	return nil
}

func (s *EmailSender) newLeadMessage(leadID int64, lead queue.LeadPayload) (*gomail.Message, error) {
	body, err := renderNewLead(NewLeadEmailData{
		LeadID: leadID,
		Name:   lead.Name,
		Phone:  lead.Phone,
		AppURL: s.AppURL,
	})
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", lead.Name))
	m.SetBody("text/html", body)
	return m, nil
}

func renderNewLead(data NewLeadEmailData) (string, error) {
	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return body.String(), nil
}

// LogNotifier stands in for EmailSender when no SMTP server is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyLeadCreated(ctx context.Context, leadID int64, lead queue.LeadPayload) error {
	slog.InfoContext(ctx, "new lead", "lead_id", leadID, "name", lead.Name, "phone", lead.Phone)
	return nil
}
