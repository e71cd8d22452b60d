package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sushihentaime/folio/internal/common"
	"github.com/sushihentaime/folio/internal/newsletterservice"
	"golang.org/x/exp/rand"
)

const subscriberTemplate = "subscriber_notification.html"

// NewMailService tells recipient (the site owner) about each new newsletter subscriber.
func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, recipient string, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:    logger,
		recipient: recipient,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *MailService) SendSubscriberNotifications() {
	msgs, err := s.mb.Consume(common.SubscriberNotifierTag, common.SiteExchange, common.SubscribedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var sub newsletterservice.Subscriber
				err := json.Unmarshal(msg.Body, &sub)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				payload := subscriberData{Email: sub.Email, FirstName: sub.FirstName}

				// using exponential backoff with jitter
				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.recipient, payload, subscriberTemplate)
					if err == nil {
						s.logger.Info("subscriber notification sent", slog.String("subscriber", sub.Email))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying subscriber notification", slog.String("subscriber", sub.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send subscriber notification", slog.String("subscriber", sub.Email))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendSubscriberNotifications due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) Close() {
	s.cancel()
}
