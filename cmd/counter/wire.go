//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
)

func initialise(ctx context.Context) (*App, func(), error) {
	panic(wire.Build(Providers))
}
