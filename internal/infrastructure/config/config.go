package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret is the fallback signing secret used when JWT_SECRET is not
// set. It is deliberately insecure and exists so a development checkout runs
// without any configuration; production must supply its own secret.
const DevJWTSecret = "dev-insecure-jwt-secret-change-in-production"

type Config struct {
	Port       string        `env:"PORT,        default=3001"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=168h"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	StorePath  string        `env:"STORE_PATH,  default=data/users.json"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=http://localhost:8080"`
	BcryptCost int           `env:"BCRYPT_COST, default=12"`

	Throttle ThrottleConfig
	Redis    RedisConfig
}

// ThrottleConfig controls the optional Redis-backed failed-login limiter.
// Disabled by default so the service runs as a single process with no
// external dependencies.
type ThrottleConfig struct {
	Enabled     bool          `env:"THROTTLE_ENABLED,      default=false"`
	MaxFailures int           `env:"THROTTLE_MAX_FAILURES, default=10"`
	Window      time.Duration `env:"THROTTLE_WINDOW,       default=15m"`
}

type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
// The service must start even with no environment at all, so a missing JWT
// secret falls back to the insecure development default with a loud warning.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
		log.Warn().Msg("JWT_SECRET not set, using insecure development secret")
	}

	return &cfg
}
