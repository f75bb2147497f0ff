// Package screen is the terminal front end of the counter. It reads one key
// command per line, dispatches it against the store and redraws the screen.
package screen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/weegigs/wee-counter-go/counter"
	"github.com/weegigs/wee-counter-go/we"
)

const tracerName = "wee-counter/screen"

// History lists the events recorded for the session.
type History interface {
	History(ctx context.Context) ([]we.RecordedEvent, error)
}

// Recorder is told about operations that left the store unchanged.
type Recorder interface {
	Ignored(operation counter.Operation)
}

type Settings struct {
	BannerTTL time.Duration
}

type Screen struct {
	store      *counter.Store
	history    History
	recorder   Recorder
	log        zerolog.Logger
	out        io.Writer
	dispatcher we.Dispatcher[*Screen]

	dialog *dialog
	banner *banner
	notes  []string
	done   bool
}

type ignoreAll struct{}

func (ignoreAll) Ignored(counter.Operation) {}

// New builds a screen drawing to out. history and recorder may be nil.
func New(store *counter.Store, history History, recorder Recorder, log zerolog.Logger, out io.Writer, settings Settings) *Screen {
	log = log.With().Str("component", "screen").Logger()
	if recorder == nil {
		recorder = ignoreAll{}
	}

	return &Screen{
		store:      store,
		history:    history,
		recorder:   recorder,
		log:        log,
		out:        out,
		dispatcher: &we.RoutedDispatcher[*Screen]{Handlers: handlers()},
		dialog:     newDialog(log),
		banner:     newBanner(settings.BannerTTL),
	}
}

// Done reports whether the user asked to quit.
func (s *Screen) Done() bool {
	return s.done
}

// Run draws the screen and handles input until quit, end of input or ctx is
// cancelled. Cancellation does not wait for the next line.
func (s *Screen) Run(ctx context.Context, in io.Reader) error {
	if err := s.Render(); err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	lines, failed := readLines(in, stop)

	for !s.done {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return errors.Wrap(<-failed, "failed to read input")
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			s.Input(ctx, line)

			if err := s.Render(); err != nil {
				return err
			}
		}
	}

	return nil
}

// readLines scans in until it ends or stop is closed. The scan error, nil at
// end of input, is sent on failed before lines is closed.
func readLines(in io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	failed := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}

		failed <- scanner.Err()
	}()

	return lines, failed
}

// Input handles one line of input. Unknown or failing commands are reported
// on the next render rather than returned.
func (s *Screen) Input(ctx context.Context, line string) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "input")
	defer span.End()

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	command, ok := ParseCommand(line)
	if !ok {
		s.notes = []string{fmt.Sprintf("unknown command %q", line)}
		span.SetAttributes(attribute.String("input", line))
		s.log.Debug().Str("input", line).Msg("unknown command")
		return
	}

	if err := s.Handle(ctx, command); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.notes = []string{err.Error()}
		s.log.Error().Err(err).Str("command", we.CommandNameOf(command).String()).Msg("command failed")
	}
}

// Handle dispatches a command. While the reset prompt is showing only its
// answers and Quit are accepted.
func (s *Screen) Handle(ctx context.Context, command we.Command) error {
	name := we.CommandNameOf(command)

	if s.dialog.confirming() && !answersDialog(command) {
		s.log.Debug().Str("command", name.String()).Msg("ignored while confirming reset")
		return nil
	}

	before := s.store.Read()
	if err := s.dispatcher.Dispatch(ctx, s, command); err != nil {
		return err
	}

	after := s.store.Read()
	s.log.Debug().
		Str("command", name.String()).
		Int("before", before.Counter).
		Int("after", after.Counter).
		Str("dialog", s.dialog.machine.Current()).
		Msg("handled")

	return nil
}

func answersDialog(command we.Command) bool {
	switch command.(type) {
	case ConfirmReset, CancelReset, Quit:
		return true
	default:
		return false
	}
}

func control(key string, label string, enabled bool) string {
	if enabled {
		return fmt.Sprintf("[%s] %s", key, label)
	}

	return fmt.Sprintf(" %s  %s (disabled)", key, label)
}

// Render draws the current state. Notes from the last command are shown once.
func (s *Screen) Render() error {
	state := s.store.Read()

	var b strings.Builder
	b.WriteString("\nCounter App\n\n")
	fmt.Fprintf(&b, "    %d / %d\n\n", state.Counter, state.MaxCount)

	if message, ok := s.banner.current(); ok {
		fmt.Fprintf(&b, "  ! %s\n\n", message)
	}

	fmt.Fprintf(&b, "  %s   %s   %s\n",
		control("-", "Decrement", state.CanDecrement()),
		control("+", "Increment", true),
		control("r", "Reset", state.CanReset()),
	)

	if s.dialog.confirming() {
		b.WriteString("\n  Reset Counter\n")
		b.WriteString("  Are you sure you want to reset the counter?\n")
		b.WriteString("  [y] Yes   [n] Cancel\n")
	}

	for _, note := range s.notes {
		fmt.Fprintf(&b, "\n%s", note)
	}
	if len(s.notes) > 0 {
		b.WriteString("\n")
	}
	s.notes = nil

	b.WriteString("\n> ")

	_, err := io.WriteString(s.out, b.String())
	return errors.Wrap(err, "failed to draw screen")
}
