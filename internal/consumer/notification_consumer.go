package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/pkg/badge"
	"github.com/Eursukkul/event-registration-service/pkg/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// NotificationConsumer turns queued ticket notifications into badge emails
// and records the delivery outcome on the registrant. Delivery failure is
// state, never an error surfaced to the request that queued the message.
type NotificationConsumer struct {
	registrants repository.RegistrantRepository
	mail        mailer.Mailer
	badges      badge.Renderer
	log         zerolog.Logger
}

func NewNotificationConsumer(registrants repository.RegistrantRepository, mail mailer.Mailer, badges badge.Renderer, log zerolog.Logger) *NotificationConsumer {
	return &NotificationConsumer{
		registrants: registrants,
		mail:        mail,
		badges:      badges,
		log:         log,
	}
}

// Start listens for messages until the channel closes.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		nc.log.Info().Msg("notification channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var n models.TicketNotification
	if err := json.Unmarshal(msg.Body, &n); err != nil {
		nc.log.Error().Err(err).Msg("unparseable notification, dropping")
		msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := nc.deliver(ctx, n); err != nil {
		nc.log.Warn().Err(err).Str("registrant", n.EntityID).Msg("ticket mail delivery failed")
		if ferr := nc.registrants.MarkEmailFailed(ctx, n.EntityID, time.Now()); ferr != nil {
			nc.log.Error().Err(ferr).Str("registrant", n.EntityID).Msg("could not record delivery failure")
		}
		// Failure is recorded as state; requeueing would retry forever
		// against a dead mailbox.
		msg.Ack(false)
		return
	}

	if err := nc.registrants.MarkEmailSent(ctx, n.EntityID, time.Now()); err != nil {
		nc.log.Error().Err(err).Str("registrant", n.EntityID).Msg("could not record delivery success")
	}
	msg.Ack(false)
}

func (nc *NotificationConsumer) deliver(ctx context.Context, n models.TicketNotification) error {
	role, ok := models.ParseRole(n.EntityType)
	if !ok {
		return fmt.Errorf("notification for unknown entity type %q", n.EntityType)
	}

	reg, err := nc.registrants.FindByID(ctx, role, n.EntityID)
	if err != nil {
		return fmt.Errorf("load registrant: %w", err)
	}

	msg := mailer.Message{
		To:      n.Email,
		Subject: fmt.Sprintf("Your %s ticket: %s", n.Category, n.TicketCode),
		Text: fmt.Sprintf(
			"Your ticket code is %s (category: %s). Present the attached badge at the venue.",
			n.TicketCode, n.Category,
		),
	}

	if artifact, rerr := nc.badges.Render(ctx, n.EntityType, reg, badge.ModeBadge); rerr == nil {
		msg.Attachments = append(msg.Attachments, mailer.Attachment{
			Filename:    "badge.html",
			ContentType: "text/html",
			Content:     artifact,
		})
	} else {
		nc.log.Warn().Err(rerr).Str("registrant", n.EntityID).Msg("badge render failed, sending mail without attachment")
	}

	return nc.mail.Send(ctx, msg)
}
