package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/folio/internal/adminservice"
	"github.com/sushihentaime/folio/internal/analyticsservice"
	"github.com/sushihentaime/folio/internal/common"
	"github.com/sushihentaime/folio/internal/mailservice"
	"github.com/sushihentaime/folio/internal/newsletterservice"
	"github.com/sushihentaime/folio/internal/postservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	postService *postservice.PostService
	gate        *adminservice.Gate
	newsletter  *newsletterservice.NewsletterService
	tracker     analyticsservice.Tracker
	// collector and mailService are nil when the site runs without a broker.
	collector   *analyticsservice.Collector
	mailService *mailservice.MailService
	broker      *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = ".env"
	}

	err := run(logger, configFile)
	if err != nil {
		logger.Error("exiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the application and serves until shutdown. Resources opened along the way are
// released before it returns, on success and on error alike.
func run(logger *slog.Logger, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Environment == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		tracker: analyticsservice.NopTracker{},
	}

	var store postservice.PostStore
	switch cfg.Store {
	case "postgres":
		m, err := common.MigrateUp(cfg.dsn())
		if err != nil {
			return fmt.Errorf("failed to migrate the database: %w", err)
		}
		m.Close()

		db, err := common.NewDB(cfg.dsn(), 10, 5, 15*time.Minute)
		if err != nil {
			return fmt.Errorf("failed to connect to the database: %w", err)
		}
		defer common.CloseDB(db)

		store = postservice.NewPostModel(db)
	default:
		store = postservice.NewMemoryStore(postservice.SamplePosts()...)
	}
	app.postService = postservice.NewPostService(store)

	app.gate, err = adminservice.NewGate(cfg.AdminSecret, cfg.AdminSessionTTL)
	if err != nil {
		return fmt.Errorf("failed to set up the admin gate: %w", err)
	}

	var producer common.MessageProducer
	if cfg.MQHost != "" {
		broker, err := common.NewMessageBroker(cfg.brokerURI())
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupSiteExchange(broker)
		if err != nil {
			return fmt.Errorf("failed to setup the site exchange: %w", err)
		}

		tracker := analyticsservice.NewBrokerTracker(broker, logger)
		defer tracker.Close()

		app.broker = broker
		app.tracker = tracker
		app.collector = analyticsservice.NewCollector(broker, logger)
		app.mailService = mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, cfg.NotifyEmail, logger)
		producer = broker

		go app.collector.Run()
		defer app.collector.Close()

		if cfg.NotifyEmail != "" {
			app.mailService.SendSubscriberNotifications()
			defer app.mailService.Close()
		}
	} else {
		logger.Info("no message broker configured; analytics and subscriber notifications are disabled")
	}

	app.newsletter = newsletterservice.NewNewsletterService(cfg.ConvertKitURL, cfg.ConvertKitKey, cfg.ConvertKitFormID, producer, logger)

	return app.serve(cfg.Port)
}
