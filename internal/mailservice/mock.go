package mailservice

import (
	"bytes"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/folio/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

// MockMailer records every send and fails the first failures calls.
type MockMailer struct {
	mu         sync.Mutex
	failures   int
	recipients []string
	payloads   []any
	sent       chan struct{}
}

func NewMockMailer(failures int) *MockMailer {
	return &MockMailer{failures: failures, sent: make(chan struct{}, 16)}
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return ErrNoRecipient
	}
	m.recipients = append(m.recipients, recipient)
	m.payloads = append(m.payloads, data)
	m.sent <- struct{}{}
	return nil
}

func (m *MockMailer) Sent() ([]string, []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recipients...), append([]any(nil), m.payloads...)
}

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *MockLogger) Error(msg string, args ...any) { l.record(msg) }
func (l *MockLogger) Info(msg string, args ...any)  { l.record(msg) }

func (l *MockLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *MockLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// MockMessageConsumer hands out Deliveries to whoever consumes the subscriber queue.
type MockMessageConsumer struct {
	mock.Mock
	Deliveries chan amqp.Delivery
}

func (m *MockMessageConsumer) Consume(tag common.ConsumerTag, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(tag, exchange, queue)
	return m.Deliveries, args.Error(0)
}
