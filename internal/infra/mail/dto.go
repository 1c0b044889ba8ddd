package mail

import "gopkg.in/gomail.v2"

type NewLeadEmailData struct {
	LeadID int64
	Name   string
	Phone  int64
	AppURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	AppURL   string

	send func(m *gomail.Message) error
}
