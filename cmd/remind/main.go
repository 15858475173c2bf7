// Command remind sends a single round of event reminders and exits.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-mail/mail"
	"github.com/hotspot-events/hotspot/internal/log"
	"github.com/hotspot-events/hotspot/pkg/config"
	"github.com/hotspot-events/hotspot/pkg/event"
	"github.com/hotspot-events/hotspot/pkg/navigation"
	"github.com/hotspot-events/hotspot/pkg/notification"
	"github.com/hotspot-events/hotspot/pkg/reminder"
	"github.com/hotspot-events/hotspot/pkg/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// a missing .env is fine, the environment may be set some other way
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "remind",
		Usage: "Email the creators of events starting soon.",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "window", Usage: "Remind of events starting within this duration from now. Defaults to REMINDER_WINDOW_HOURS."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Log the reminders which would be sent without sending them."},
		},
		Action: remind,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Reminding failed", "error", err)
		os.Exit(1)
	}
}

func remind(c *cli.Context) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := slog.New(log.New(log.NewPrettyJSONHandler(os.Stdout, &log.PrettyJSONHandlerOptions{
		PrettyPrint: cfg.LogPretty,
	})))

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	mailer := notification.NewService(logger, dialer, cfg.SMTP.From, cfg.UIURL, cfg.Location())

	// reminding never creates events or looks up places so no alerts are broadcast and no locator is needed
	eventService := event.NewService(logger, cfg, event.NewRepository(db), mailer, navigation.NewBroker(), nil)

	window := cfg.Reminder.Window()
	if c.IsSet("window") {
		window = c.Duration("window")
	}
	if window <= 0 {
		return fmt.Errorf("window must be positive, got %s", window)
	}

	dispatcher := reminder.NewDispatcher(logger, eventService, mailer, reminder.WithWindow(window), reminder.WithDryRun(c.Bool("dry-run")))

	start := time.Now()
	result, err := dispatcher.Dispatch(c.Context)
	if err != nil {
		return err
	}

	logger.InfoContext(c.Context, "Reminding done", "sent", result.Sent, "skipped", result.Skipped, "failed", result.Failed, "took", time.Since(start))
	return nil
}
