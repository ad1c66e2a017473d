package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Google        GoogleConfig
	Payment       PaymentConfig
	Storage       StorageConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
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
	Env          string `envconfig:"ELECTROSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"ELECTROSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ELECTROSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ELECTROSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ELECTROSTORE_DB_DSN"`
	Driver string `envconfig:"ELECTROSTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ELECTROSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"ELECTROSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ELECTROSTORE_DB_USER"`
	LegacyPassword string `envconfig:"ELECTROSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ELECTROSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ELECTROSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ELECTROSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ELECTROSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ELECTROSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ELECTROSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ELECTROSTORE_REDIS_URL"`
	Address      string        `envconfig:"ELECTROSTORE_REDIS_ADDRESS"`
	Password     string        `envconfig:"ELECTROSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELECTROSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELECTROSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ELECTROSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ELECTROSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELECTROSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELECTROSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ELECTROSTORE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ELECTROSTORE_JWT_ISSUER" default:"electrostore"`
	ExpirationMinutes      int    `envconfig:"ELECTROSTORE_JWT_EXPIRATION_MINUTES" default:"300"`
	RefreshTokenTTLMinutes int    `envconfig:"ELECTROSTORE_REFRESH_TOKEN_TTL_MINUTES" default:"7200"`
}

// AccessTokenTTL returns the bearer token validity window (5h by default).
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token validity window (5 days by default).
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ELECTROSTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ELECTROSTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ELECTROSTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ELECTROSTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ELECTROSTORE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"ELECTROSTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"ELECTROSTORE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"ELECTROSTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type GoogleConfig struct {
	ClientID string `envconfig:"ELECTROSTORE_GOOGLE_CLIENT_ID"`
	// DefaultPassword is the placeholder credential assigned to accounts
	// provisioned through Google login so they can also use the password flow.
	DefaultPassword string `envconfig:"ELECTROSTORE_GOOGLE_DEFAULT_PASSWORD"`
}

type PaymentConfig struct {
	BaseURL  string        `envconfig:"ELECTROSTORE_PAYMENT_BASE_URL" default:"https://api.razorpay.com/v1"`
	KeyID    string        `envconfig:"ELECTROSTORE_PAYMENT_KEY_ID"`
	Secret   string        `envconfig:"ELECTROSTORE_PAYMENT_SECRET"`
	Currency string        `envconfig:"ELECTROSTORE_PAYMENT_CURRENCY" default:"INR"`
	Timeout  time.Duration `envconfig:"ELECTROSTORE_PAYMENT_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	BaseDir          string `envconfig:"ELECTROSTORE_STORAGE_DIR" default:"data/uploads"`
	UserImageDir     string `envconfig:"ELECTROSTORE_USER_IMAGE_DIR" default:"images/users"`
	ProductImageDir  string `envconfig:"ELECTROSTORE_PRODUCT_IMAGE_DIR" default:"images/products"`
	CategoryImageDir string `envconfig:"ELECTROSTORE_CATEGORY_IMAGE_DIR" default:"images/categories"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ELECTROSTORE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
