package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	// DB
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"30"`
	// Admin bootstrap
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@sweetshop.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"Admin123!"`
	AdminName     string `envconfig:"ADMIN_NAME" default:"Admin User"`
	// Network
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	// Messaging (optional; events are skipped when unset)
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"sweetshop"`
	// Tracing (optional)
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

func (c App) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireMin) * time.Minute
}

// CORSOrigins splits the comma-separated ALLOWED_ORIGINS list.
func (c App) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
