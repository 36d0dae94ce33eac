//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/sevigo/gitdocify/internal/app"
)

func InitializeApp(configFile string) (*app.App, error) {
	wire.Build(AppSet)
	return &app.App{}, nil
}
