package analyticsservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

const (
	EventPageView         = "page_view"
	EventBlogView         = "blog_view"
	EventNewsletterSignup = "newsletter_signup"
)

type Event struct {
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Label    string    `json:"label,omitempty"`
	Value    *int64    `json:"value,omitempty"`
	Path     string    `json:"path,omitempty"`
	Title    string    `json:"title,omitempty"`
	Time     time.Time `json:"time"`
}

// Tracker records visitor activity. Implementations must not block the caller for long
// and must never fail it.
type Tracker interface {
	Track(ctx context.Context, e Event)
}

type TrackerLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// BrokerTracker publishes each event to the site exchange from a background goroutine.
type BrokerTracker struct {
	mb      common.MessageProducer
	logger  TrackerLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

type NopTracker struct{}

// Collector consumes the analytics queue and keeps running totals in memory.
type Collector struct {
	mb     common.MessageConsumer
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	stats Stats
	done  chan struct{}
}

type Stats struct {
	PageViews map[string]int `json:"page_views"`
	Events    map[string]int `json:"events"`
}
