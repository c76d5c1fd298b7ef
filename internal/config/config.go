package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the marketplace API service.
type Config struct {
	Addr           string   `env:"ADDR,default=:8080"`
	DBDSN          string   `env:"DB_DSN,required"`
	JWTSigningKey  string   `env:"JWT_SIGNING_KEY,required"`
	GoogleClientID string   `env:"GOOGLE_OAUTH2_CLIENT_ID,required"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
	NATSURL        string   `env:"NATS_URL"`
	MediaBucket    string   `env:"S3_BUCKET"`
	OTLPEndpoint   string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// AccessTokenTTL deliberately defaults to minutes, not the seconds-scale
	// lifetime some earlier deployments shipped with.
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL,default=168h"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
