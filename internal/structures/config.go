package structures

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Server struct {
	Host      string          `mapstructure:"host" validate:"required"`
	Port      int             `mapstructure:"port" validate:"required|uint|min:1"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver" validate:"required|in:pebble,memory"`
	Path      string `mapstructure:"path"`
	QueueSize int    `mapstructure:"queueSize"`
}

type Persistence struct {
	BackupPath string `mapstructure:"backupPath" validate:"required|unixPath"`
	BackupCron string `mapstructure:"backupCron" validate:"required"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `mapstructure:"mode" validate:"required|uint"`
	Dir   string `mapstructure:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Size    int  `mapstructure:"size"`
	TTL     int  `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	AppName     string        `mapstructure:"-"`
	Debug       bool          `mapstructure:"-"`
	Path        string        `mapstructure:"-"`
	WebServer   Server        `mapstructure:"webServer"`
	Storage     StorageConfig `mapstructure:"storage"`
	Persistence Persistence   `mapstructure:"persistence"`
	Logger      LoggerConfig  `mapstructure:"logger"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
}
