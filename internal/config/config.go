package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureJWTSecret is the signing key used when JWT_SECRET is unset outside
// production. Tokens signed with it can be forged by anyone who reads this file.
const InsecureJWTSecret = "devsecret"

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET must be set in production")
)

// Config holds environment-driven configuration.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string

	JWTSecret string
	// InsecureSecret is true when JWTSecret fell back to InsecureJWTSecret.
	InsecureSecret bool
	TokenTTL       time.Duration

	AdminUsername string
	AdminPassword string

	DBMaxOpenConns   int
	DBConnectTimeout time.Duration
	DBRetryInterval  time.Duration

	StrictCategoryRefs bool

	Upload UploadConfig
}

// UploadConfig selects and configures the asset store backend.
type UploadConfig struct {
	// Backend is "s3" or "local". Empty means s3 when a bucket is configured.
	Backend       string
	Folder        string
	Dir           string
	MaxBytes      int64
	PublicBaseURL string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "4000")
	v.SetDefault("TOKEN_TTL", 7*24*time.Hour)
	v.SetDefault("ADMIN_USERNAME", "gumtreeply")
	v.SetDefault("ADMIN_PASSWORD", "gumtre#001")
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_RETRY_INTERVAL", 5*time.Second)
	v.SetDefault("PRODUCT_STRICT_CATEGORY", false)
	v.SetDefault("UPLOAD_FOLDER", "gumtree")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("S3_REGION", "us-east-1")

	cfg := Config{
		Env:                v.GetString("APP_ENV"),
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		TokenTTL:           v.GetDuration("TOKEN_TTL"),
		AdminUsername:      v.GetString("ADMIN_USERNAME"),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBConnectTimeout:   v.GetDuration("DB_CONNECT_TIMEOUT"),
		DBRetryInterval:    v.GetDuration("DB_RETRY_INTERVAL"),
		StrictCategoryRefs: v.GetBool("PRODUCT_STRICT_CATEGORY"),
		Upload: UploadConfig{
			Backend:       strings.ToLower(v.GetString("UPLOAD_BACKEND")),
			Folder:        v.GetString("UPLOAD_FOLDER"),
			Dir:           v.GetString("UPLOAD_DIR"),
			MaxBytes:      v.GetInt64("UPLOAD_MAX_BYTES"),
			PublicBaseURL: v.GetString("PUBLIC_BASE_URL"),
			S3Bucket:      v.GetString("S3_BUCKET"),
			S3Region:      v.GetString("S3_REGION"),
			S3Endpoint:    v.GetString("S3_ENDPOINT"),
			S3AccessKey:   v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:   v.GetString("S3_SECRET_KEY"),
		},
	}

	if cfg.Upload.Backend == "" {
		if cfg.Upload.S3Bucket != "" {
			cfg.Upload.Backend = "s3"
		} else {
			cfg.Upload.Backend = "local"
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = InsecureJWTSecret
		cfg.InsecureSecret = true
	}

	return cfg, nil
}

// Validate checks settings that are only required by the server process.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
