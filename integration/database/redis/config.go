package redis

import "time"

// Config holds Redis connection settings loaded from the environment.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`

	// Touch log settings used by TouchRecorder.
	TouchKey    string        `env:"REDIS_UTM_TOUCH_KEY" envDefault:"utm:touches"`
	TouchMaxLen int64         `env:"REDIS_UTM_TOUCH_MAX_LEN" envDefault:"10000"`
	TouchTTL    time.Duration `env:"REDIS_UTM_TOUCH_TTL" envDefault:"0s"`
}
