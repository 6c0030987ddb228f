package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/workhive/backend/internal/domain"
)

// publishMail hands a message to the mail worker through the email queue.
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(ctx, "", "email_queue", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
