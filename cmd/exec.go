package cmd

import (
	"log"
	"log/slog"
	"net/http"

	"lummy/config"
	"lummy/internal/chain"
	"lummy/internal/handlers"
	"lummy/internal/services"
	"lummy/monitoring"
	"lummy/security"
	"lummy/utils"

	_ "lummy/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize Redis. Without it the feed serves the fallback set.
	redisClient, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("Redis unavailable, event source and throttling disabled", "error", err)
	} else {
		defer redisClient.Close()
	}

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)
	notifier := services.NewPubNubNotifier(pn, cfg.FeedChannel)

	// Initialize services
	feed := newEventsFeed(cfg, redisClient, notifier)
	organizerService := services.NewOrganizerService(services.NewPocketBaseOrganizerStore(app), notifier)

	// Initialize handlers
	eventsHandler := handlers.NewEventsHandler(feed)
	organizerHandler := handlers.NewOrganizerHandler(organizerService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	app.RootCmd.AddCommand(newEventsCommand(feed))

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		api := e.Router.Group("/api/v1")
		if redisClient != nil {
			api.BindFunc(security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute).Middleware())
		}

		// Events feed
		api.GET("/events", eventsHandler.ListEvents)

		// Organizer applications
		api.POST("/organizer-requests", organizerHandler.SubmitRequest)

		// Admin endpoints
		api.GET("/admin/organizer-requests", organizerHandler.ListRequests)
		api.GET("/admin/organizer-requests/stats", organizerHandler.Stats)
		api.POST("/admin/organizer-requests/{id}/status", organizerHandler.UpdateStatus)
		api.POST("/admin/organizer-requests/{id}/message", organizerHandler.SendMessage)

		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient == nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  "redis not connected",
				})
			}
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

func newEventsFeed(cfg *config.Config, redisClient *redis.Client, notifier services.FeedNotifier) *services.EventsFeed {
	return &services.EventsFeed{
		Source:      newEventSource(cfg, redisClient),
		Breaker:     utils.NewCircuitBreaker("event-source", cfg.Breaker),
		Monitor:     monitoring.NewMonitor(),
		Notifier:    notifier,
		MaxLookups:  cfg.MaxEventLookups,
		ReadTimeout: cfg.SourceReadTimeout,
	}
}

// newEventSource returns nil when no read channel is configured, which the
// reader reports as provider not available.
func newEventSource(cfg *config.Config, redisClient *redis.Client) chain.Source {
	switch cfg.EventSource {
	case config.SourceRedis:
		if redisClient == nil {
			return nil
		}
		return chain.NewRedisSource(redisClient, cfg.EventIndexKey)
	case config.SourceHTTP:
		return chain.NewHTTPSource(cfg.EventGatewayURL)
	default:
		return nil
	}
}
