package analyticsservice

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/folio/internal/common"
)

func TestTrackerToCollector_RabbitMQ(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rabbitmq integration test in short mode")
	}

	mb, err := common.NewMessageBroker(common.TestRabbitMQ(t))
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, common.SetupSiteExchange(mb))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	collector := NewCollector(mb, logger)
	go collector.Run()
	t.Cleanup(collector.Close)

	tracker := NewBrokerTracker(mb, logger)
	ctx := context.Background()
	tracker.Track(ctx, PageView("/research", "Research"))
	tracker.Track(ctx, PageView("/research", "Research"))
	tracker.Track(ctx, BlogView("The Art of Finding Meaning in the Cosmos", 1))
	tracker.Track(ctx, NewsletterSignup())
	tracker.Close()

	require.Eventually(t, func() bool {
		s := collector.Stats()
		return s.Events[EventPageView] == 2 && s.Events[EventBlogView] == 1 && s.Events[EventNewsletterSignup] == 1
	}, 10*time.Second, 100*time.Millisecond)

	assert.Equal(t, map[string]int{"/research": 2}, collector.Stats().PageViews)
}
