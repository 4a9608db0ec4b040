package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/shop_api/pkg/config"
	pkgdb "github.com/Skotchmaster/shop_api/pkg/db"
	"github.com/Skotchmaster/shop_api/pkg/tokens"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret []byte
	JWTTTL    time.Duration

	KafkaBrokers []string
	CORSOrigins  []string
}

// Load reads the environment, optionally seeded from envFile.
func Load(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("warning: could not load %s: %v", envFile, err)
		}
	}

	return &Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "shop"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    pkgcfg.EnvDefault("DB_DRIVER", pkgdb.DriverSQLite),
		DatabaseURL: pkgcfg.EnvDefault("DATABASE_URL", "products.db"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:    pkgcfg.EnvDurationDefault("JWT_TTL", tokens.DefaultTTL),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
		CORSOrigins:  pkgcfg.CSV(os.Getenv("CORS_ORIGINS")),
	}
}

// Validate refuses to start without a signing secret; there is no built-in fallback.
func (c *Config) Validate() error {
	if err := pkgcfg.RequireNonEmptyBytes(c.JWTSecret, "JWT_SECRET"); err != nil {
		return err
	}
	switch c.DBDriver {
	case pkgdb.DriverSQLite, pkgdb.DriverPostgres:
	default:
		return errors.New("DB_DRIVER must be sqlite or postgres")
	}
	return pkgcfg.RequireNonEmpty(c.DatabaseURL, "DATABASE_URL")
}
