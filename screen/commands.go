package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/weegigs/wee-counter-go/counter"
	"github.com/weegigs/wee-counter-go/we"
)

type Increment struct{}

type Decrement struct{}

// RequestReset opens the confirmation prompt.
type RequestReset struct{}

type ConfirmReset struct{}

type CancelReset struct{}

type ShowHistory struct{}

type Quit struct{}

var keys = map[string]we.Command{
	"+":       Increment{},
	"inc":     Increment{},
	"-":       Decrement{},
	"dec":     Decrement{},
	"r":       RequestReset{},
	"reset":   RequestReset{},
	"y":       ConfirmReset{},
	"yes":     ConfirmReset{},
	"n":       CancelReset{},
	"no":      CancelReset{},
	"cancel":  CancelReset{},
	"h":       ShowHistory{},
	"history": ShowHistory{},
	"q":       Quit{},
	"quit":    Quit{},
}

// ParseCommand maps one line of input onto a screen command.
func ParseCommand(line string) (we.Command, bool) {
	command, ok := keys[strings.ToLower(strings.TrimSpace(line))]
	return command, ok
}

func handlers() we.CommandHandlers[*Screen] {
	handlers := we.CommandHandlers[*Screen]{}

	we.Register(handlers, we.CommandHandlerFunction[*Screen, Increment](increment))
	we.Register(handlers, we.CommandHandlerFunction[*Screen, Decrement](decrement))
	we.Register(handlers, we.CommandHandlerFunction[*Screen, RequestReset](requestReset))
	we.Register(handlers, we.CommandHandlerFunction[*Screen, ConfirmReset](confirmReset))
	we.Register(handlers, we.CommandHandlerFunction[*Screen, CancelReset](cancelReset))
	we.Register(handlers, we.CommandHandlerFunction[*Screen, ShowHistory](showHistory))
	we.Register(handlers, we.CommandHandlerFunction[*Screen, Quit](quit))

	return handlers
}

func increment(_ context.Context, _ Increment, s *Screen) error {
	if s.store.Increment() {
		return nil
	}

	s.recorder.Ignored(counter.OperationIncrement)
	s.banner.show(fmt.Sprintf("Maximum count reached (%d)", s.store.Read().MaxCount))
	return nil
}

func decrement(_ context.Context, _ Decrement, s *Screen) error {
	if !s.store.Read().CanDecrement() {
		s.recorder.Ignored(counter.OperationDecrement)
		return nil
	}

	s.store.Decrement()
	s.banner.dismiss()
	return nil
}

func requestReset(ctx context.Context, _ RequestReset, s *Screen) error {
	if !s.store.Read().CanReset() {
		s.recorder.Ignored(counter.OperationReset)
		return nil
	}

	return s.dialog.open(ctx)
}

func confirmReset(ctx context.Context, _ ConfirmReset, s *Screen) error {
	if !s.dialog.confirming() {
		return nil
	}

	if err := s.dialog.confirm(ctx); err != nil {
		return err
	}

	s.store.Reset()
	s.banner.dismiss()
	return nil
}

func cancelReset(ctx context.Context, _ CancelReset, s *Screen) error {
	if !s.dialog.confirming() {
		return nil
	}

	return s.dialog.cancel(ctx)
}

func showHistory(ctx context.Context, _ ShowHistory, s *Screen) error {
	if s.history == nil {
		s.notes = []string{"history is not recorded"}
		return nil
	}

	events, err := s.history.History(ctx)
	if err != nil {
		return err
	}

	notes := make([]string, 0, len(events)+1)
	notes = append(notes, fmt.Sprintf("History (%d events)", len(events)))
	for _, event := range events {
		sequence, err := event.Revision.Sequence()
		if err != nil {
			return err
		}

		notes = append(notes, fmt.Sprintf("  %3d  %s  %-20s %s", sequence, event.Timestamp, event.EventType, event.Data.Data))
	}

	s.notes = notes
	return nil
}

func quit(_ context.Context, _ Quit, s *Screen) error {
	s.done = true
	return nil
}
