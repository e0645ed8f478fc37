// Package cli is the terminal rendition of the welcome page.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"meetinggate/internal/domain"
	"meetinggate/internal/i18n"
	"meetinggate/internal/services"
)

// ErrAborted is returned when input ends before a conference was joined.
var ErrAborted = errors.New("welcome page aborted")

// Workflow is the part of services.JoinWorkflow the prompt drives.
type Workflow interface {
	Submit(ctx context.Context, raw string) (services.Outcome, error)
	Login(ctx context.Context, username, password string) (services.Outcome, error)
}

// Welcome prompts for a room and, when required, credentials, until the
// workflow reaches StateJoining or input ends.
type Welcome struct {
	workflow   Workflow
	translator domain.Translator
	in         *bufio.Reader
	out        io.Writer
	logger     *slog.Logger
	suggest    func() string
}

// NewWelcome returns a prompt reading from in and writing prompts to out.
func NewWelcome(workflow Workflow, translator domain.Translator, in io.Reader, out io.Writer, logger *slog.Logger) *Welcome {
	return &Welcome{
		workflow:   workflow,
		translator: translator,
		in:         bufio.NewReader(in),
		out:        out,
		logger:     logger,
		suggest:    suggestRoom,
	}
}

func suggestRoom() string {
	name, err := services.GenerateRoomName()
	if err != nil {
		return ""
	}
	return name
}

// Run drives the workflow. A non-empty room is submitted before prompting.
func (w *Welcome) Run(ctx context.Context, room string) (services.Outcome, error) {
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return services.Outcome{}, err
		}
		raw := room
		if !first || strings.TrimSpace(room) == "" {
			line, err := w.prompt(i18n.KeyEnterRoom, w.suggest())
			if err != nil {
				return services.Outcome{}, err
			}
			raw = line
		}
		first = false

		out, err := w.workflow.Submit(ctx, raw)
		if err != nil && out.State != services.StateAwaitingAuth {
			w.logger.DebugContext(ctx, "submit rejected", "state", out.State.String(), "err", err)
			continue
		}
		if out.State == services.StateAwaitingAuth {
			out, err = w.login(ctx, out.Room)
			if err != nil {
				if errors.Is(err, ErrAborted) || ctx.Err() != nil {
					return out, err
				}
				continue
			}
		}
		if out.State == services.StateJoining {
			fmt.Fprintln(w.out, w.translator.Translate(i18n.KeyJoining, out.Room))
			return out, nil
		}
	}
}

// login prompts for credentials until the workflow leaves StateAwaitingAuth.
func (w *Welcome) login(ctx context.Context, room string) (services.Outcome, error) {
	fmt.Fprintln(w.out, w.translator.Translate(i18n.KeyLoginPrompt, room))
	for {
		username, err := w.prompt(i18n.KeyUsername)
		if err != nil {
			return services.Outcome{}, err
		}
		password, err := w.prompt(i18n.KeyPassword)
		if err != nil {
			return services.Outcome{}, err
		}
		out, err := w.workflow.Login(ctx, username, password)
		if err == nil {
			return out, nil
		}
		if out.State != services.StateAwaitingAuth {
			return out, err
		}
		w.logger.DebugContext(ctx, "login rejected", "err", err)
	}
}

func (w *Welcome) prompt(key string, args ...any) (string, error) {
	fmt.Fprint(w.out, w.translator.Translate(key, args...))
	line, err := w.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w.out)
			return "", ErrAborted
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
