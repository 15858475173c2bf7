// Package classification Hotspot Events Service.
//
// Create, find and get reminded of events happening around you
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//    Version: 0.1.0
//    License: TODO
//    Contact: <hello@hotspot.events> https://github.com/hotspot-events/hotspot
//
//    Consumes:
//      - application/json
//
//    Produces:
//      - application/json
//
//    SecurityDefinitions:
//      oauth2:
//        type: oauth2
//        tokenUrl: /tokens
//        refreshUrl: /refresh
//        flow: password
// swagger:meta
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-mail/mail"
	"github.com/hotspot-events/hotspot/internal/handler"
	"github.com/hotspot-events/hotspot/internal/log"
	"github.com/hotspot-events/hotspot/internal/middleware"
	"github.com/hotspot-events/hotspot/internal/server"
	"github.com/hotspot-events/hotspot/pkg/config"
	"github.com/hotspot-events/hotspot/pkg/countdown"
	"github.com/hotspot-events/hotspot/pkg/event"
	"github.com/hotspot-events/hotspot/pkg/geocode"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/navigation"
	"github.com/hotspot-events/hotspot/pkg/notification"
	"github.com/hotspot-events/hotspot/pkg/profile"
	"github.com/hotspot-events/hotspot/pkg/reminder"
	"github.com/hotspot-events/hotspot/pkg/session"
	"github.com/hotspot-events/hotspot/pkg/storage"
	"github.com/hotspot-events/hotspot/pkg/token"
	"github.com/hotspot-events/hotspot/pkg/tracing"
	"github.com/hotspot-events/hotspot/pkg/user"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

type eventNotifier interface {
	EventCreated(ctx context.Context, recipient string, event model.Event) error
	EventReminder(ctx context.Context, recipient string, event model.Event) error
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup("hotspot", cfg.Tracing.JaegerEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to flush traces", "error", err)
		}
	}()

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redis, err := storage.NewRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer redis.Close()

	privateKey, err := cfg.Authentication.Keys.GetPrivateKey()
	if err != nil {
		return err
	}

	refreshTokenLifetime := time.Duration(cfg.Authentication.RefreshTokenExpirationSeconds) * time.Second
	sessionStore := session.NewStore(redis, refreshTokenLifetime)

	tokenService := token.NewService(
		logger,
		token.NewRepository(redis),
		privateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)
	userService := user.NewService(user.NewRepository(db))
	authentication := middleware.NewAuthentication(logger, &privateKey.PublicKey, userService, middleware.NewRegistration(cfg.BasePath))

	geocodeService := geocode.NewService(
		logger,
		geocode.NewClient(cfg.Geocoder.URL, cfg.Geocoder.UserAgent),
		geocode.NewRedisCache(logger, redis, cfg.Geocoder.CacheTTL()),
	)

	nav, err := navigation.Load()
	if err != nil {
		return err
	}
	broker := navigation.NewBroker()

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	mailer := notification.NewService(logger, dialer, cfg.SMTP.From, cfg.UIURL, cfg.Location())

	g, ctx := errgroup.WithContext(ctx)

	var notifier eventNotifier = mailer
	if cfg.RabbitMq.Enabled() {
		connection, err := amqp.Dial(cfg.RabbitMq.GetUrl())
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %v", err)
		}
		defer connection.Close()

		notifier, err = newPublisher(connection)
		if err != nil {
			return err
		}

		consumer, err := newConsumer(logger, connection, mailer)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return consumer.Consume(ctx)
		})
	}

	eventService := event.NewService(logger, cfg, event.NewRepository(db), notifier, broker, geocodeService)
	draftService := event.NewDraftService(logger, sessionStore, geocodeService, eventService)

	dispatcher := reminder.NewDispatcher(logger, eventService, notifier, reminder.WithWindow(cfg.Reminder.Window()))
	scheduler, err := reminder.NewScheduler(logger, cfg.Reminder.Cron, dispatcher)
	if err != nil {
		return err
	}
	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	r := server.GetEngine(logger, cfg.BasePath)
	api := r.Group(cfg.BasePath)
	user.Routes(api, authentication, user.NewHandler(cfg, userService, tokenService, sessionStore))
	navigation.Routes(api, authentication, navigation.NewHandler(logger, nav, broker))
	event.Routes(api, authentication, event.NewHandler(eventService, draftService, cfg.Location()))
	countdown.Routes(api, authentication, countdown.NewHandler(eventService, cfg.Location()))
	geocode.Routes(api, authentication, geocode.NewHandler(geocodeService))
	profile.Routes(api, authentication, profile.NewHandler(profile.NewService(sessionStore)))
	notification.Routes(api, authentication, notification.NewHandler(notifier))

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.InfoContext(ctx, "Listening", "addr", srv.Addr, "basePath", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(log.New(log.NewPrettyJSONHandler(os.Stdout, &log.PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		},
		PrettyPrint: cfg.LogPretty,
	})))
}

func newPublisher(connection *amqp.Connection) (*notification.Publisher, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publisher channel: %v", err)
	}
	return notification.NewPublisher(channel)
}

func newConsumer(logger *slog.Logger, connection *amqp.Connection, mailer *notification.Service) (*notification.Consumer, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consumer channel: %v", err)
	}
	return notification.NewConsumer(logger, channel, mailer)
}
