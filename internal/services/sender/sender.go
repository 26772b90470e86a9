// Package sender реализует воркер, отправляющий администратору письма
// о высокоприоритетных уведомлениях из широковещательной очереди.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/lib/smtp"
	"github.com/investwisepro/admin-console/internal/models"
)

// Service отправляет письма через SMTP транспорт.
type Service struct {
	transport  smtp.TransportInterface
	adminEmail string
	log        *slog.Logger
}

// New создает новый Service.
func New(transport smtp.TransportInterface, adminEmail string, log *slog.Logger) *Service {
	return &Service{
		transport:  transport,
		adminEmail: adminEmail,
		log:        log,
	}
}

// HandleMessage обрабатывает сообщение из широковещательной очереди.
// Письмо отправляется только для высокоприоритетных уведомлений,
// остальные подтверждаются без отправки.
func (s *Service) HandleMessage(body []byte) error {
	const op = "services.sender.HandleMessage"

	var msg models.BroadcastMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		// нечитаемое сообщение не вернётся в очередь исправным
		s.log.Error("failed to decode broadcast message", sl.Op(op), sl.Err(err))
		return nil
	}
	if msg.Type != "new_notification" || msg.Notification.Priority != models.PriorityHigh {
		return nil
	}

	if err := s.sendEmail(msg.Notification); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("notification email sent",
		slog.String("id", msg.Notification.ID), slog.String("type", msg.Notification.Type))
	return nil
}

// sendEmail отправляет письмо об уведомлении на адрес администратора.
func (s *Service) sendEmail(n models.Notification) error {
	const op = "services.sender.sendEmail"

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Warn("failed to close smtp client", sl.Op(op), sl.Err(err))
		}
	}()

	from := s.transport.GetSMTPUser()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Rcpt(s.adminEmail); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := w.Write(buildEmail(from, s.adminEmail, n)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return client.Quit()
}

// buildEmail собирает письмо с заголовками в формате RFC 5322.
func buildEmail(from, to string, n models.Notification) []byte {
	subject := fmt.Sprintf("[InvestWise Pro] %s alert", n.Type)
	body := fmt.Sprintf(
		"Priority: %s\r\nTime: %s\r\n\r\n%s\r\n",
		n.Priority, n.Timestamp.Format(time.RFC1123Z), n.Message,
	)
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		from, to, subject, body,
	))
}
