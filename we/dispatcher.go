package we

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type CommandHandlers[S any] map[CommandName]CommandHandler[S]

// Register adds the handler for commands of type C under its derived name.
func Register[S any, C any](handlers CommandHandlers[S], handler CommandHandlerFunction[S, C]) {
	var command C
	name := CommandNameOf(command)
	if handlers[name] != nil {
		panic(fmt.Sprintf("multiple handlers registered for command %s", name))
	}

	handlers[name] = handler
}

type Dispatcher[S any] interface {
	Dispatch(ctx context.Context, subject S, command Command) error
}

type RoutedDispatcher[S any] struct {
	Handlers CommandHandlers[S]
}

func (d *RoutedDispatcher[S]) Dispatch(ctx context.Context, subject S, command Command) error {
	commandName := CommandNameOf(command)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("dispatch %s", commandName))
	defer span.End()

	handler := d.Handlers[commandName]
	if handler == nil {
		err := CommandNotFound(commandName)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := handler.HandleCommand(ctx, command, subject); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func CommandNotFound(command CommandName) CommandNotFoundError {
	return CommandNotFoundError{Command: command}
}

type CommandNotFoundError struct {
	Command CommandName
}

func (e CommandNotFoundError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Command)
}
