//go:build wireinject
// +build wireinject

package di

import (
	"artfolio/internal"
	"artfolio/internal/controllers"
	"artfolio/internal/providers"
	"artfolio/internal/services"
	"artfolio/internal/storage"
	"artfolio/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		provideLogger,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewGateway,
		storage.NewPersister,
		storage.NewBackupCompressor,
		provideFileManager,
		storage.NewScheduler,
		wire.Bind(new(services.StateWriter), new(*storage.Persister)),
		wire.Bind(new(providers.PendingWritesCounter), new(*storage.Persister)),

		services.NewIdentityService,
		services.NewSocialGraphService,
		services.NewPreferenceService,
		services.NewCatalogService,
		services.NewCounterpartyResolver,
		services.NewConversationService,
		services.NewSessionService,

		controllers.NewSessionController,
		controllers.NewConversationController,
		controllers.NewSocialController,
		controllers.NewPreferenceController,
		controllers.NewArtworkController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
