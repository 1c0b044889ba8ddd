package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	DBAutoMigrate  bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	// HTTP
	HTTPAddr           string   `envconfig:"HTTP_ADDR" default:":8080"`
	AppName            string   `envconfig:"APP_NAME" default:"leadManagementApp"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	PublicURL          string   `envconfig:"PUBLIC_URL"`
	// Broker, optional
	AMQPURL string `envconfig:"AMQP_URL"`
	// Mail, optional
	MailHost   string `envconfig:"MAIL_HOST"`
	MailPort   int    `envconfig:"MAIL_PORT" default:"587"`
	MailUser   string `envconfig:"MAIL_USER"`
	MailPass   string `envconfig:"MAIL_PASS"`
	MailFrom   string `envconfig:"MAIL_FROM"`
	SalesInbox string `envconfig:"SALES_INBOX"`
	// CRM sync, optional
	KommoAPIToken string `envconfig:"KOMMO_API_TOKEN"`
	KommoBaseURL  string `envconfig:"KOMMO_BASE_URL"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	err := envconfig.Process("", &c)
	return c, err
}

func (c App) MailEnabled() bool {
	return c.MailHost != "" && c.SalesInbox != ""
}

func (c App) CRMEnabled() bool {
	return c.KommoAPIToken != "" && c.KommoBaseURL != ""
}

func (c App) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
