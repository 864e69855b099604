package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
	Seed         SeedConfig
}

// Load reads .env files when present and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		// missing files are fine; the environment may already be populated
		_ = godotenv.Load(envFiles...)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FISHING_APP_ENV" required:"true"`
	Port         string `envconfig:"FISHING_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FISHING_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FISHING_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FISHING_DB_DSN"`

	Host     string `envconfig:"FISHING_DB_HOST"`
	Port     int    `envconfig:"FISHING_DB_PORT" default:"5432"`
	User     string `envconfig:"FISHING_DB_USER"`
	Password string `envconfig:"FISHING_DB_PASSWORD"`
	Name     string `envconfig:"FISHING_DB_NAME"`
	SSLMode  string `envconfig:"FISHING_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FISHING_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FISHING_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FISHING_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FISHING_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SlowQueryThreshold logs statements slower than this at warn; 0 disables.
	SlowQueryThreshold time.Duration `envconfig:"FISHING_DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FISHING_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FISHING_REDIS_ADDR"`
	Password     string        `envconfig:"FISHING_REDIS_PASSWORD"`
	DB           int           `envconfig:"FISHING_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FISHING_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FISHING_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FISHING_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FISHING_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FISHING_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FISHING_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FISHING_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FISHING_JWT_EXPIRATION_MINUTES" default:"10080"`
	RefreshTokenTTLMinutes int    `envconfig:"FISHING_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FISHING_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FISHING_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FISHING_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FISHING_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FISHING_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	Origins []string `envconfig:"FISHING_CORS_ORIGINS" default:"http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FISHING_AUTO_MIGRATE" default:"false"`
}

type SeedConfig struct {
	AdminEmail       string `envconfig:"FISHING_SEED_ADMIN_EMAIL" default:"admin@fishing.local"`
	AdminPassword    string `envconfig:"FISHING_SEED_ADMIN_PASSWORD"`
	AdminDisplayName string `envconfig:"FISHING_SEED_ADMIN_DISPLAY_NAME" default:"admin"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range legacyDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
