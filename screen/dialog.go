package screen

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

const (
	dialogIdle       = "idle"
	dialogConfirming = "confirming"

	eventOpen    = "open"
	eventConfirm = "confirm"
	eventCancel  = "cancel"
)

// dialog is the reset confirmation prompt. It only tracks whether the prompt
// is showing; resetting the store is left to the caller.
type dialog struct {
	machine *fsm.FSM
}

func newDialog(log zerolog.Logger) *dialog {
	machine := fsm.NewFSM(
		dialogIdle,
		fsm.Events{
			{Name: eventOpen, Src: []string{dialogIdle}, Dst: dialogConfirming},
			{Name: eventConfirm, Src: []string{dialogConfirming}, Dst: dialogIdle},
			{Name: eventCancel, Src: []string{dialogConfirming}, Dst: dialogIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debug().Str("event", e.Event).Str("from", e.Src).Str("to", e.Dst).Msg("reset dialog")
			},
		},
	)

	return &dialog{machine: machine}
}

func (d *dialog) confirming() bool {
	return d.machine.Current() == dialogConfirming
}

func (d *dialog) open(ctx context.Context) error {
	if !d.machine.Can(eventOpen) {
		return nil
	}

	return d.machine.Event(ctx, eventOpen)
}

func (d *dialog) confirm(ctx context.Context) error {
	return d.machine.Event(ctx, eventConfirm)
}

func (d *dialog) cancel(ctx context.Context) error {
	return d.machine.Event(ctx, eventCancel)
}
