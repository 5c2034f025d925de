package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))

const receiptSubject = "Your scholarship application payment"

// Sender delivers one RFC 5322 message.
type Sender interface {
	Send(ctx context.Context, to string, msg []byte) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender speaks STARTTLS + PLAIN auth with hard dial and session
// deadlines.
type SMTPSender struct {
	cfg         SMTPConfig
	dialTimeout time.Duration
	deadline    time.Duration
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, dialTimeout: 8 * time.Second, deadline: 15 * time.Second}
}

func (s *SMTPSender) Send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	d := net.Dialer{Timeout: s.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(s.deadline))

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return err
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}

	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

type MailService struct {
	sender   Sender
	from     string
	fromName string
	logger   *slog.Logger
}

func NewMailService(sender Sender, from, fromName string, logger *slog.Logger) *MailService {
	return &MailService{sender: sender, from: from, fromName: fromName, logger: logger}
}

type receiptData struct {
	PaymentID     string
	TransactionID string
	Price         float64
	Applications  int
	Date          string
}

// SendReceipt mails the payer a summary of a recorded payment.
func (s *MailService) SendReceipt(ctx context.Context, p domain.PaymentRecordedEvent) error {
	if p.Email == "" {
		return errors.New("receipt has no recipient")
	}

	body, err := RenderReceipt(p, time.Now())
	if err != nil {
		return err
	}
	msg := s.compose(p.Email, receiptSubject, body)

	s.logger.Info("sending receipt",
		slog.String("paymentId", p.PaymentID),
		slog.String("to", utils.MaskEmail(p.Email)),
	)
	if err := s.sender.Send(ctx, p.Email, msg); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	s.logger.Info("receipt sent", slog.String("paymentId", p.PaymentID))
	return nil
}

func RenderReceipt(p domain.PaymentRecordedEvent, at time.Time) (string, error) {
	var buf bytes.Buffer
	err := receiptTemplate.Execute(&buf, receiptData{
		PaymentID:     p.PaymentID,
		TransactionID: p.TransactionID,
		Price:         p.Price,
		Applications:  len(p.SubmitIDs),
		Date:          at.UTC().Format("2006-01-02 15:04 MST"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) compose(to, subject, htmlBody string) []byte {
	from := s.from
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.from)
	}
	return []byte(strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n"))
}
