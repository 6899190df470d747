package service

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/i18n"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"

	"github.com/sony/gobreaker"
)

var (
	// ErrEmailServiceDisabled 邮件服务未启用
	ErrEmailServiceDisabled = errors.New("email service disabled")
	// ErrEmailServiceNotConfigured SMTP 参数不完整
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
)

// EmailService 邮件发送服务，SMTP 调用经熔断器保护
type EmailService struct {
	cfg     *config.EmailConfig
	breaker *gobreaker.CircuitBreaker
	send    func(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnw("circuit_breaker_state_changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	if cfg != nil && cfg.UseSSL {
		s.send = sendMailWithSSL
	} else {
		s.send = sendMailPlain
	}
	return s
}

// Enabled 是否已启用并配置
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && s.cfg.Host != "" && s.cfg.Port != 0 && s.cfg.From != ""
}

// SendOrderConfirmation 下单确认邮件
func (s *EmailService) SendOrderConfirmation(order *models.Order, locale string) error {
	if order == nil {
		return nil
	}
	subject := i18n.Sprintf(locale, "mail.order_subject", order.OrderNumber)
	body := i18n.Sprintf(locale, "mail.order_body", order.CustomerName, order.OrderNumber, order.Total.String(), order.PaymentMethod)
	return s.sendTextEmail(order.CustomerEmail, subject, body)
}

// SendOrderStatus 订单状态变更邮件
func (s *EmailService) SendOrderStatus(order *models.Order, locale string) error {
	if order == nil {
		return nil
	}
	subject := i18n.Sprintf(locale, "mail.status_subject", order.OrderNumber)
	body := i18n.Sprintf(locale, "mail.status_body", order.CustomerName, order.OrderNumber, order.OrderStatus, order.PaymentStatus)
	if code := strings.TrimSpace(order.TrackingCode); code != "" {
		body += "\n" + i18n.Sprintf(locale, "mail.tracking_line", code)
	}
	return s.sendTextEmail(order.CustomerEmail, subject, body)
}

// SendNewsletterWelcome 订阅欢迎邮件
func (s *EmailService) SendNewsletterWelcome(email, locale string) error {
	return s.sendTextEmail(email, i18n.T(locale, "mail.welcome_subject"), i18n.T(locale, "mail.welcome_body"))
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	_, err := executeWithBreaker(s.breaker, func() (struct{}, error) {
		return struct{}{}, s.send(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	})
	return err
}

func executeWithBreaker[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return *new(T), err
	}
	return res.(T), nil
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()
	return deliverSMTP(client, auth, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	return deliverSMTP(client, auth, from, to, msg)
}

func deliverSMTP(client *smtp.Client, auth smtp.Auth, from string, to []string, msg []byte) error {
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
