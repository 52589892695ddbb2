// Package redis connects to Redis and keeps an attribution log of UTM touches.
//
// Connect creates a go-redis client, validates the URL scheme (redis:// or
// rediss://) and pings the server, retrying with exponential backoff until
// RetryAttempts is exhausted or ConnectTimeout elapses. Healthcheck returns a
// ping function suitable for readiness probes.
//
// # Configuration
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//		TouchKey       string        `env:"REDIS_UTM_TOUCH_KEY" envDefault:"utm:touches"`
//		TouchMaxLen    int64         `env:"REDIS_UTM_TOUCH_MAX_LEN" envDefault:"10000"`
//		TouchTTL       time.Duration `env:"REDIS_UTM_TOUCH_TTL" envDefault:"0s"`
//	}
//
// # Touch log
//
// TouchRecorder implements utm.Recorder. Every campaign hit that rewrites the
// UTM cookie is pushed as JSON onto a list, newest first, and the list is
// trimmed to TouchMaxLen in the same transaction.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	rec := redis.NewTouchRecorderFromConfig(client, cfg)
//	mw := middleware.UTM(utm.WithRecorder(rec))
//
//	latest, err := rec.Recent(ctx, 20)
//
// # Error Handling
//
//   - ErrFailedToParseRedisConnString: the connection URL is malformed
//   - ErrRedisNotReady: Redis did not answer within the retry budget
//   - ErrEmptyConnectionURL: no connection URL is provided
//   - ErrHealthcheckFailed: the health check ping failed
//   - ErrFailedToRecordTouch, ErrFailedToReadTouches: touch log I/O failed
//
// All errors wrap the underlying go-redis error and can be checked with errors.Is.
package redis
