//go:build wireinject
// +build wireinject

package di

import (
	"CryptoVision/pkg/config"
	"CryptoVision/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideBytesCache,

		ProvideSnapshotFetcher,
		ProvideHistoricalFetcher,
		ProvidePredictionRunner,

		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
