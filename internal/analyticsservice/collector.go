package analyticsservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"

	"github.com/sushihentaime/folio/internal/common"
)

func NewCollector(mb common.MessageConsumer, logger *slog.Logger) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		mb:     mb,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		stats:  Stats{PageViews: map[string]int{}, Events: map[string]int{}},
		done:   make(chan struct{}),
	}
}

// Run consumes analytics messages until Close is called or the delivery channel closes.
func (c *Collector) Run() {
	defer close(c.done)

	msgs, err := c.mb.Consume(common.AnalyticsCollectorTag, common.SiteExchange, common.AnalyticsQueue)
	if err != nil {
		c.logger.Error("could not consume analytics", slog.String("error", err.Error()))
		return
	}

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			var e Event
			if err := json.Unmarshal(msg.Body, &e); err != nil {
				c.logger.Error("could not unmarshal analytics event", slog.String("error", err.Error()))
				msg.Ack(false)
				continue
			}

			c.record(e)
			msg.Ack(false)

		case <-c.ctx.Done():
			c.logger.Info("stopping analytics collector due to context cancellation")
			return
		}
	}
}

func (c *Collector) record(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Events[e.Name]++
	if e.Name == EventPageView && e.Path != "" {
		c.stats.PageViews[e.Path]++
	}
}

// Stats returns a snapshot of the totals.
func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		PageViews: maps.Clone(c.stats.PageViews),
		Events:    maps.Clone(c.stats.Events),
	}
}

// Close stops Run and waits for it to return. Run must have been started.
func (c *Collector) Close() {
	c.cancel()
	<-c.done
}
