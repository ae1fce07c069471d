package di

import (
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"artfolio/internal/storage/interfaces"
	"artfolio/internal/structures"
)

// provideLogger closes the log files after every other cleanup has run.
func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

// provideFileManager releases the backup encoder and decoder on shutdown.
func provideFileManager(compressor interfaces.CompressorInterface, gateway storage.KeyValueGateway, logger providers.Logger) (*storage.FileManager, func()) {
	fm := storage.NewFileManager(compressor, gateway, logger)
	return fm, fm.Close
}
