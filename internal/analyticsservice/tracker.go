package analyticsservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

func NewBrokerTracker(mb common.MessageProducer, logger TrackerLogger) *BrokerTracker {
	return &BrokerTracker{mb: mb, logger: logger, timeout: 5 * time.Second}
}

// Track returns immediately. The publish runs detached from ctx so a finished request does
// not cancel it.
func (t *BrokerTracker) Track(ctx context.Context, e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	key := common.SiteEventKey
	if e.Name == EventPageView {
		key = common.PageViewKey
	}

	msg, err := json.Marshal(e)
	if err != nil {
		t.logger.Error("could not marshal analytics event", slog.String("error", err.Error()))
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		err := t.mb.Publish(ctx, msg, key, common.SiteExchange)
		if err != nil {
			t.logger.Error("could not publish analytics event", slog.String("event", e.Name), slog.String("error", err.Error()))
		}
	}()
}

// Close waits for publishes already in flight.
func (t *BrokerTracker) Close() {
	t.wg.Wait()
}

func (NopTracker) Track(ctx context.Context, e Event) {}

func PageView(path, title string) Event {
	return Event{Name: EventPageView, Path: path, Title: title}
}

func BlogView(title string, id int64) Event {
	return Event{Name: EventBlogView, Category: "content", Label: title, Value: &id, Path: "/blog/" + strconv.FormatInt(id, 10)}
}

func NewsletterSignup() Event {
	return Event{Name: EventNewsletterSignup, Category: "engagement", Label: "footer_form"}
}
