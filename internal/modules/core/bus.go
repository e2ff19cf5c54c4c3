package core

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/eskrenkovic/mediator-go"
)

// CommandBus hands commands over to whatever handles them. A nil error only
// means the command was accepted by the bus.
type CommandBus interface {
	Dispatch(ctx context.Context, command any) error
}

type dispatchFunc func(ctx context.Context, command any) error

var _ CommandBus = (*MediatorBus)(nil)

// MediatorBus dispatches commands through the mediator. The mediator needs the
// static command type, so every command type has to be routed with Route first.
type MediatorBus struct {
	mu     sync.RWMutex
	routes map[reflect.Type]dispatchFunc
}

func NewMediatorBus() *MediatorBus {
	return &MediatorBus{routes: make(map[reflect.Type]dispatchFunc)}
}

// Route registers the mediator route for TCommand. Handlers of routed commands
// respond with Unit.
func Route[TCommand any](b *MediatorBus) {
	var command TCommand

	b.mu.Lock()
	defer b.mu.Unlock()

	b.routes[reflect.TypeOf(command)] = func(ctx context.Context, c any) error {
		typed, ok := c.(TCommand)
		if !ok {
			return fmt.Errorf("unexpected command type '%T'", c)
		}

		_, err := mediator.Send[TCommand, Unit](ctx, typed)
		return err
	}
}

func (b *MediatorBus) Dispatch(ctx context.Context, command any) error {
	b.mu.RLock()
	dispatch, found := b.routes[reflect.TypeOf(command)]
	b.mu.RUnlock()

	if !found {
		return fmt.Errorf("no route registered for command type '%T'", command)
	}

	return dispatch(ctx, command)
}
