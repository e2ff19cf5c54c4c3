package config

import (
	"fmt"
	"path"
	"time"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/env"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	PortEnv            = "PORT"
	DatabaseUrlEnv     = "DATABASE_URL"
	RootPathEnv        = "ROOT_PATH"
	AuthTokenSecretEnv = "AUTH_TOKEN_SECRET"
	LogLevelEnv        = "LOG_LEVEL"
	ShutdownTimeoutEnv = "SHUTDOWN_TIMEOUT"
)

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	AuthTokenSecret []byte
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment. Missing required keys
// are reported as an error instead of a panic.
func Load() (config Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to load configuration: %v", r)
		}
	}()

	logLevel, err := zapcore.ParseLevel(env.GetStringOrDefault(LogLevelEnv, "info"))
	if err != nil {
		return Config{}, err
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := loggerConfig.Build()
	if err != nil {
		return Config{}, err
	}

	shutdownTimeout, err := env.GetDurationOrDefault(ShutdownTimeoutEnv, 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	secret := env.MustGetString(AuthTokenSecretEnv)
	if secret == "" {
		return Config{}, fmt.Errorf("%s must not be empty", AuthTokenSecretEnv)
	}

	rootPath := env.MustGetString(RootPathEnv)

	return Config{
		Logger:          logger,
		Port:            env.MustGetInt(PortEnv),
		DatabaseURL:     env.MustGetString(DatabaseUrlEnv),
		MigrationsPath:  path.Join(rootPath, "db", "migrations"),
		AuthTokenSecret: []byte(secret),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}
