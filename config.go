package userstore

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Config describes where the user collection lives. The defaults address a
// local MongoDB on port 27018.
type Config struct {
	Backend string `env:"USERSTORE_BACKEND" envDefault:"mongo"`

	// MongoURI overrides MongoHost, MongoPort, MongoUsername and MongoPassword
	// when set. Credentials then come from the URI alone.
	MongoURI      string `env:"USERSTORE_MONGO_URI"`
	MongoHost     string `env:"USERSTORE_MONGO_HOST"     envDefault:"localhost"`
	MongoPort     int    `env:"USERSTORE_MONGO_PORT"     envDefault:"27018"`
	MongoUsername string `env:"USERSTORE_MONGO_USERNAME" envDefault:"mongoadmin"`
	MongoPassword string `env:"USERSTORE_MONGO_PASSWORD" envDefault:"bdung"`

	Database   string `env:"USERSTORE_DATABASE"   envDefault:"my_database"`
	Collection string `env:"USERSTORE_COLLECTION" envDefault:"users"`

	SQLiteDSN string `env:"USERSTORE_SQLITE_DSN" envDefault:"file:userstore.db?cache=shared&mode=rwc"`

	ConnectTimeout time.Duration `env:"USERSTORE_CONNECT_TIMEOUT" envDefault:"10s"`
	LogLevel       slog.Level    `env:"USERSTORE_LOG_LEVEL"       envDefault:"info"`
}

// DefaultConfig returns the defaults without reading the environment.
func DefaultConfig() Config {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	if err != nil {
		// The defaults are constants; failing to parse them is a programming error.
		panic(fmt.Sprintf("userstore: invalid default config: %v", err))
	}
	return cfg
}

// LoadConfig reads the configuration from USERSTORE_* environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// MongoAddress returns the connection URI of the MongoDB server.
func (c Config) MongoAddress() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return "mongodb://" + net.JoinHostPort(c.MongoHost, strconv.Itoa(c.MongoPort))
}
