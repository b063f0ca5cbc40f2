package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the review API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	JWTSecret           string
	TokenTTL            time.Duration
	RedisURL            string
	StatsCacheTTL       time.Duration
	StorageBackend      string
	UploadDir           string
	MaxUploadSizeMB     int
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Classroom Review API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3001")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("stats.cache_ttl", "30s")
	v.SetDefault("storage.backend", "local")
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("cloudinary.folder", "classroom/submissions")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("stats.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		JWTSecret:           v.GetString("jwt.secret"),
		TokenTTL:            tokenTTL,
		RedisURL:            v.GetString("redis.url"),
		StatsCacheTTL:       cacheTTL,
		StorageBackend:      strings.ToLower(v.GetString("storage.backend")),
		UploadDir:           v.GetString("upload.dir"),
		MaxUploadSizeMB:     v.GetInt("upload.max_mb"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxUploadSizeMB <= 0 {
		cfg.MaxUploadSizeMB = 10
	}

	return cfg, nil
}
