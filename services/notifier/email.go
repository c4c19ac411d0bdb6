package notifier

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/pkg/errors"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends the digest by mail through an SMTP relay
type EmailNotifier struct {
	addr     string
	from     string
	to       string
	auth     smtp.Auth
	sendMail sendMailFunc
	now      func() time.Time
}

// NewEmailNotifier creates an email notifier. Authentication is only used
// when username is set.
func NewEmailNotifier(addr, from, to, username, password string) *EmailNotifier {
	var auth smtp.Auth
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &EmailNotifier{
		addr:     addr,
		from:     from,
		to:       to,
		auth:     auth,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
}

// Notify sends one message listing every new listing
func (e *EmailNotifier) Notify(ctx context.Context, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.NewNotification(e.Name(), "context done", err)
	}

	if err := e.sendMail(e.addr, e.auth, e.from, []string{e.to}, e.message(listings)); err != nil {
		return errors.NewNotification(e.Name(), "send mail to "+e.to, err)
	}
	return nil
}

func (e *EmailNotifier) message(listings []listing.Listing) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", e.from)
	fmt.Fprintf(&sb, "To: %s\r\n", e.to)
	fmt.Fprintf(&sb, "Subject: Property monitor: %s\r\n", FormatSubject(listings))
	fmt.Fprintf(&sb, "Date: %s\r\n", e.now().Format(time.RFC1123Z))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(FormatSummary(listings), "\n", "\r\n"))
	return []byte(sb.String())
}

// Name returns the backend name
func (e *EmailNotifier) Name() string {
	return "email"
}
