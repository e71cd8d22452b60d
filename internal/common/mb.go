package common

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

// ConsumerTag names a consumer on its queue. It plays no part in routing.
type ConsumerTag string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(tag ConsumerTag, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error)
}

const (
	SiteExchange Exchange = "site_exchange"

	PageViewKey     BindingKey = "analytics.page_view"
	SiteEventKey    BindingKey = "analytics.event"
	SubscribedKey   BindingKey = "newsletter.subscribed"
	AnalyticsQueue  Queue      = "analytics_queue"
	SubscribedQueue Queue      = "newsletter_subscribed_queue"

	AnalyticsCollectorTag ConsumerTag = "analytics_collector"
	SubscriberNotifierTag ConsumerTag = "subscriber_notifier"
)

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the connection and channel of the message broker.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	return mb.conn.Close()
}

// SetupSiteExchange declares the topic exchange and binds the analytics queue to every
// analytics.* key and the subscriber queue to newsletter.subscribed.
func SetupSiteExchange(mb *MessageBroker) error {
	err := mb.ch.ExchangeDeclare(string(SiteExchange), "topic", true, false, false, false, nil)
	if err != nil {
		return err
	}

	bindings := []struct {
		queue Queue
		key   string
	}{
		{AnalyticsQueue, "analytics.#"},
		{SubscribedQueue, string(SubscribedKey)},
	}

	for _, b := range bindings {
		_, err = mb.ch.QueueDeclare(string(b.queue), true, false, false, false, nil)
		if err != nil {
			return err
		}

		err = mb.ch.QueueBind(string(b.queue), b.key, string(SiteExchange), false, nil)
		if err != nil {
			return err
		}
	}

	return nil
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

// Consume reads queue as tag. The queue must already be bound (see SetupSiteExchange).
func (mb *MessageBroker) Consume(tag ConsumerTag, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), string(tag), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}
