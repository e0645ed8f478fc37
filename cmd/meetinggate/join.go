package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"meetinggate/config"
	"meetinggate/internal/adapters/conference"
	"meetinggate/internal/adapters/eventapi"
	"meetinggate/internal/adapters/localstore"
	"meetinggate/internal/delivery/cli"
	"meetinggate/internal/i18n"
	"meetinggate/internal/notify"
	"meetinggate/internal/services"
)

func runJoin(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	translator, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}
	surface := notify.NewSurface(notify.NewConsoleNotifier(os.Stderr), translator, notify.Style(cfg.ErrorStyle), cfg.ErrorClearAfter)
	defer surface.Close()

	store, err := localstore.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	client := eventapi.NewClient(cfg.EventAPIURL, &http.Client{Timeout: cfg.HTTPTimeout}, eventapi.WithTokenSource(store.Token))

	joiner, err := conference.NewJoiner(cfg.ConferenceURL, os.Stdout, logger)
	if err != nil {
		return err
	}
	validity, err := services.NewPatternValidity(cfg.RoomPattern)
	if err != nil {
		return fmt.Errorf("ROOM_PATTERN: %w", err)
	}

	workflow := services.NewJoinWorkflow(client, client, client, store, joiner, surface, logger, services.WorkflowOptions{
		Validator:      services.NewRoomValidator(cfg.ForbiddenChars),
		TemporalGate:   services.TemporalGate{Enabled: cfg.TemporalGate},
		RequireSession: cfg.RequireSession,
		Validity:       validity,
	})
	defer workflow.Close()

	logger.Debug("welcome page ready",
		"event_api", cfg.EventAPIURL,
		"locale", translator.Locale().String(),
		"require_session", cfg.RequireSession,
		"temporal_gate", cfg.TemporalGate)

	_, err = cli.NewWelcome(workflow, translator, os.Stdin, os.Stderr, logger).Run(ctx, strings.Join(args, " "))
	return err
}
