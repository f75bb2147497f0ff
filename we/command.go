package we

import (
	"context"
	"fmt"
)

type CommandName string

func (name CommandName) String() string {
	return string(name)
}

type Command any

func CommandNameOf(command Command) CommandName {
	return CommandName(NameOf(command))
}

// CommandHandler executes a command against a subject S, typically the
// component that owns the state the command acts on.
type CommandHandler[S any] interface {
	HandleCommand(ctx context.Context, cmd Command, subject S) error
}

type CommandHandlerFunction[S any, C any] func(ctx context.Context, cmd C, subject S) error

func (f CommandHandlerFunction[S, C]) HandleCommand(ctx context.Context, cmd Command, subject S) error {
	command, ok := cmd.(C)
	if !ok {
		return UnexpectedCommand(cmd)
	}

	return f(ctx, command, subject)
}

type UnexpectedCommandError struct {
	Command CommandName
}

func (e UnexpectedCommandError) Error() string {
	return fmt.Sprintf("unexpected command %s", e.Command)
}

func UnexpectedCommand(command Command) error {
	return UnexpectedCommandError{Command: CommandNameOf(command)}
}
