package providers

import (
	"artfolio/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "pebble")
	v.SetDefault("storage.queueSize", 256)
	v.SetDefault("persistence.backupCron", "*/15 * * * *")
	v.SetDefault("webServer.rateLimit.burst", 20)

	v.BindEnv("logger.level", "ARTFOLIO_LOG_LEVEL")
	v.BindEnv("storage.driver", "ARTFOLIO_STORAGE_DRIVER")
	v.BindEnv("storage.path", "ARTFOLIO_STORAGE_PATH")
	v.BindEnv("persistence.backupPath", "ARTFOLIO_BACKUP_PATH")
	v.BindEnv("persistence.backupCron", "ARTFOLIO_BACKUP_CRON")
	v.BindEnv("cache.enabled", "ARTFOLIO_CACHE_ENABLED")
	v.BindEnv("cache.size", "ARTFOLIO_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Artfolio"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
