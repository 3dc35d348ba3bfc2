package mail

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Config holds SMTP settings.
type Config struct {
	Enable   bool
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	NotifyTo string
}

// Message is a single email to send.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// SendFunc matches smtp.SendMail so tests can capture outgoing mail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender sends emails via SMTP.
type Sender struct {
	cfg  Config
	send SendFunc
}

func New(cfg Config) *Sender {
	return &Sender{cfg: cfg, send: smtp.SendMail}
}

// WithSendFunc replaces the transport.
func (s *Sender) WithSendFunc(fn SendFunc) *Sender {
	s.send = fn
	return s
}

// Enabled reports whether notifications will actually be sent.
func (s *Sender) Enabled() bool {
	return s != nil && s.cfg.Enable && s.cfg.Host != "" && s.cfg.NotifyTo != ""
}

// Send dispatches an email. A disabled sender drops it silently.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.Enable {
		return nil
	}
	if s.cfg.Host == "" {
		return errors.New("mail host is not configured")
	}
	if len(msg.To) == 0 {
		return errors.New("mail has no recipients")
	}
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(port))

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject)))
	body.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	if msg.ReplyTo != "" {
		body.WriteString(fmt.Sprintf("Reply-To: %s\r\n", sanitizeHeader(msg.ReplyTo)))
	}
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	return s.send(addr, auth, from, msg.To, body.Bytes())
}

// sanitizeHeader strips line breaks so user input cannot add headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

const contactNotifyTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#fff;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:.5rem">
  <div style="max-width:550px;margin:40px auto;padding:20px;border:1px solid rgb(14,165,233);border-radius:.25rem">
    <h1 style="font-size:18px;font-weight:400;margin:0 0 24px">New message from <strong>{{.Name}}</strong></h1>
    <p style="font-size:14px;line-height:24px;margin:0 0 16px">Reply to: <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <div style="background-color:rgb(243,244,246);border-radius:.75rem;padding:.5rem 1rem;font-size:13px;line-height:22px;white-space:pre-wrap">{{.Message}}</div>
    <p style="font-size:10px;line-height:24px;margin:24px 0 0;text-align:center;color:rgb(156,163,175)">Sent by the portfolio contact form at {{.ReceivedAt}}</p>
  </div>
</body>
</html>`

var contactTemplate = template.Must(template.New("contact").Parse(contactNotifyTpl))

// ContactNotifyData is the data for contact form notifications.
type ContactNotifyData struct {
	Name       string
	Email      string
	Message    string
	ReceivedAt string
}

// SendContactNotify tells the site owner about a new contact message.
func (s *Sender) SendContactNotify(data ContactNotifyData) error {
	data.Name = sanitizeHeader(data.Name)
	data.Email = sanitizeHeader(data.Email)
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, data); err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{s.cfg.NotifyTo},
		ReplyTo: data.Email,
		Subject: fmt.Sprintf("New contact message from %s", data.Name),
		HTML:    buf.String(),
	})
}
