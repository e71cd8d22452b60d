package analyticsservice

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/folio/internal/common"
)

type MockMessageProducer struct {
	mock.Mock
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(msg, key, exchange)
	return args.Error(0)
}

// MockMessageConsumer hands out a channel the test feeds directly and remembers who asked.
type MockMessageConsumer struct {
	Deliveries chan amqp.Delivery

	mu    sync.Mutex
	tag   common.ConsumerTag
	queue common.Queue
}

func (m *MockMessageConsumer) Consume(tag common.ConsumerTag, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tag, m.queue = tag, queue
	return m.Deliveries, nil
}

func (m *MockMessageConsumer) Consumer() (common.ConsumerTag, common.Queue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tag, m.queue
}

// RecordingTracker keeps every event in memory.
type RecordingTracker struct {
	mu     sync.Mutex
	events []Event
}

func (r *RecordingTracker) Track(ctx context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *RecordingTracker) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
